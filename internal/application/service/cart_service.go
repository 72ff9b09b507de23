package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/apperror"
)

// CartStore holds in-progress carts keyed by session. Carts are deliberately
// non-durable: losing one on restart costs a cashier a few scans, while
// persisting them would mean reconciling stale price snapshots.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
}

// NewCartStore creates an empty cart store
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*entity.Cart)}
}

// get returns the cart for a session, creating it if needed.
func (s *CartStore) get(sessionID string) *entity.Cart {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = entity.NewCart(sessionID)
		s.carts[sessionID] = cart
	}
	return cart
}

// CartService manages the per-session cart: adding scanned products, editing
// quantities and producing the running total. It never mutates stock; every
// add re-checks availability against the current snapshot and the authoritative
// check happens again at commit.
type CartService struct {
	store       *CartStore
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(store *CartStore, productRepo repository.ProductRepository) *CartService {
	return &CartService{store: store, productRepo: productRepo}
}

// Get returns a copy of the session's cart.
func (s *CartService) Get(sessionID string) *entity.Cart {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.snapshot(s.store.get(sessionID))
}

// Add puts quantity of a product in the cart in the given unit kind. If a
// line for (product, kind) already exists the quantities merge; the price
// snapshot from the first add is kept. The same product in the other kind is
// a separate line with its own price.
func (s *CartService) Add(ctx context.Context, sessionID string, productID uuid.UUID, kind enum.SaleUnit, quantity int) (*entity.Cart, error) {
	if !kind.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown sale unit kind: " + string(kind))
	}
	if quantity < 1 {
		return nil, apperror.NewInvalidQuantityError(quantity)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}

	if !product.SaleMode.Permits(kind) {
		return nil, apperror.NewUnsupportedSaleKindError(product.Name, string(kind))
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(sessionID)

	newQuantity := quantity
	if line := cart.FindLine(product.ID, kind); line != nil {
		newQuantity += line.Quantity
	}
	if err := product.Stock.Reserve(kind, newQuantity, product.Name); err != nil {
		return nil, err
	}

	if line := cart.FindLine(product.ID, kind); line != nil {
		line.Quantity = newQuantity
		line.Recalculate()
	} else {
		price := product.PriceFor(kind)
		newLine := entity.CartLine{
			ID:          uuid.New(),
			ProductID:   product.ID,
			ProductCode: product.Code,
			ProductName: product.Name,
			Kind:        kind,
			Quantity:    quantity,
			UnitPrice:   price,
		}
		newLine.Recalculate()
		cart.Lines = append(cart.Lines, newLine)
	}

	cart.UpdatedAt = time.Now()
	return s.snapshot(cart), nil
}

// AddByCode resolves a barcode scan and adds the product in the given kind.
func (s *CartService) AddByCode(ctx context.Context, sessionID, code string, kind enum.SaleUnit, quantity int) (*entity.Cart, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.Add(ctx, sessionID, product.ID, kind, quantity)
}

// UpdateQuantity sets a line's quantity, re-checking availability. Zero is
// rejected; removing a line is an explicit Remove.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, apperror.NewInvalidQuantityError(quantity)
	}

	s.store.mu.Lock()
	cart := s.store.get(sessionID)
	line := cart.LineByID(lineID)
	if line == nil {
		s.store.mu.Unlock()
		return nil, apperror.NewNotFoundError("Cart line")
	}
	productID := line.ProductID
	kind := line.Kind
	s.store.mu.Unlock()

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := product.Stock.Reserve(kind, quantity, product.Name); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	// The line may have been removed while the lock was released.
	line = cart.LineByID(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	line.Quantity = quantity
	line.Recalculate()
	cart.UpdatedAt = time.Now()
	return s.snapshot(cart), nil
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(sessionID string, lineID uuid.UUID) (*entity.Cart, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(sessionID)
	if !cart.RemoveLine(lineID) {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	cart.UpdatedAt = time.Now()
	return s.snapshot(cart), nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(sessionID string) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	delete(s.store.carts, sessionID)
}

// snapshot copies the cart so callers cannot mutate stored state outside the
// lock. Must be called with the store lock held.
func (s *CartService) snapshot(cart *entity.Cart) *entity.Cart {
	lines := make([]entity.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return &entity.Cart{
		SessionID: cart.SessionID,
		Lines:     lines,
		UpdatedAt: cart.UpdatedAt,
	}
}
