package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/apperror"
	"github.com/mitienda/pos-api/pkg/utils"
)

// ProductService manages the catalog: creation, pricing, restocks and
// deactivation. Products are never hard-deleted because sale items reference
// their IDs forever.
type ProductService struct {
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, pricing *PricingService) *ProductService {
	return &ProductService{productRepo: productRepo, pricing: pricing}
}

// Create validates and persists a new product, resolving both price tracks.
func (s *ProductService) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.Code == "" || product.Name == "" {
		return nil, apperror.NewBadRequestError("Code and name are required")
	}
	if !product.SaleMode.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown sale mode: " + string(product.SaleMode))
	}
	if product.Stock.UnitsPerBox < 1 {
		return nil, apperror.NewBadRequestError("Units per box must be at least 1")
	}
	if product.Stock.Boxes < 0 || product.Stock.LooseUnits < 0 {
		return nil, apperror.NewBadRequestError("Stock quantities must not be negative")
	}

	existing, err := s.productRepo.GetByCode(ctx, product.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this code already exists")
	}

	if err := s.pricing.ResolveProduct(product); err != nil {
		return nil, err
	}

	product.Slug = utils.Slugify(product.Name)
	product.Active = true
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies catalog changes and rederives the price tracks. Stock
// quantities are not editable here; restocks go through Restock so the
// concurrent-debit invariants hold.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, apply func(*entity.Product) error) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := apply(product); err != nil {
		return nil, err
	}
	if !product.SaleMode.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown sale mode: " + string(product.SaleMode))
	}
	if err := s.pricing.ResolveProduct(product); err != nil {
		return nil, err
	}

	product.Slug = utils.Slugify(product.Name)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Restock credits boxes and loose units to a product.
func (s *ProductService) Restock(ctx context.Context, id uuid.UUID, boxes, looseUnits int) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.CreditStock(ctx, id, boxes, looseUnits); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// Deactivate hides a product from sale without deleting it.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	product.Active = false
	return s.productRepo.Update(ctx, product)
}

// GetByID returns a product by ID.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetByCode resolves a barcode scan.
func (s *ProductService) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// List returns products matching the filter.
func (s *ProductService) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// GetLowStock returns active products at or under their alert level.
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
