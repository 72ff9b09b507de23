package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/pkg/pagination"
)

// ProductFilterParams defines filtering parameters for product listing
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	Inactive   bool // include deactivated products
	SortBy     string
	SortOrder  string
}

// ProductRepository defines the interface for product data access. Stock
// mutations go through the debit/credit operations below, which are the
// optimistic-concurrency boundary for concurrent sales.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByCode is the indexed barcode lookup used by scan events.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)

	// DebitStock removes the given unit count from the product's stock using
	// the loose-first/box-breaking algorithm, retrying on concurrent
	// modification. It returns the exact field-level delta it applied so the
	// caller can compensate on a later failure.
	DebitStock(ctx context.Context, id uuid.UUID, units int) (*entity.StockDelta, error)

	// ApplyStockDelta applies a relative boxes/loose-units adjustment
	// atomically. Used for compensating credits; fails rather than driving
	// either field negative.
	ApplyStockDelta(ctx context.Context, id uuid.UUID, delta entity.StockDelta) error

	// CreditStock adds boxes and loose units (restock/return).
	CreditStock(ctx context.Context, id uuid.UUID, boxes, looseUnits int) error
}
