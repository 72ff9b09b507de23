package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/apperror"
	"github.com/mitienda/pos-api/pkg/oauth"
	"github.com/mitienda/pos-api/pkg/utils"
)

// TokenPair holds an access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles cashier and admin authentication.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	google     *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, google *oauth.GoogleOAuthService) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, google: google}
}

// Register creates a new user. Only admins reach this path; the handler
// enforces the role check.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*entity.User, error) {
	if role != entity.RoleAdmin && role != entity.RoleCashier {
		return nil, apperror.NewBadRequestError("Unknown role: " + role)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.Active || user.Password == "" {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrUnauthorized
	}
	return s.issueTokens(user)
}

// GoogleAuthURL returns the consent URL for the Google sign-in flow.
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.google.IsConfigured() {
		return "", apperror.NewBadRequestError("Google sign-in is not configured")
	}
	return s.google.GetAuthURL(state), nil
}

// GoogleCallback completes the Google sign-in flow. Only users that already
// exist (seeded or registered by an admin) may sign in this way; a store POS
// must never self-provision cashier accounts from arbitrary Google accounts.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*entity.User, *TokenPair, error) {
	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	info, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		// First Google sign-in: link by verified email.
		if !info.VerifiedEmail {
			return nil, nil, apperror.ErrUnauthorized
		}
		user, err = s.userRepo.GetByEmail(ctx, info.Email)
		if err != nil {
			return nil, nil, err
		}
		if user == nil {
			return nil, nil, apperror.ErrUnauthorized
		}
		user.GoogleID = info.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, nil, err
		}
	}
	if !user.Active {
		return nil, nil, apperror.ErrUnauthorized
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// GetProfile returns the user for an authenticated request.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
