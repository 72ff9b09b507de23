package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitienda/pos-api/internal/domain/entity"
	domainRepo "github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/apperror"
)

// stockRetryAttempts bounds the optimistic-concurrency retry loop on stock
// debits. Each attempt reloads the row and recomputes the box/loose split.
const stockRetryAttempts = 3

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByCode resolves a barcode scan through the unique index on code.
func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if !params.Inactive {
		query = query.Where("active = ?", true)
	}

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("total_units <= stock_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND total_units <= stock_alert", true).
		Find(&products).Error
	return products, err
}

// DebitStock removes units with the loose-first algorithm under optimistic
// concurrency: the conditional UPDATE only lands if nobody moved the stock
// between the read and the write. Two concurrent sales whose combined demand
// exceeds availability can therefore never both succeed.
func (r *productRepository) DebitStock(ctx context.Context, id uuid.UUID, units int) (*entity.StockDelta, error) {
	for attempt := 0; attempt < stockRetryAttempts; attempt++ {
		var product entity.Product
		err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Product")
		}
		if err != nil {
			return nil, err
		}

		after, err := product.Stock.Debit(units, product.Name)
		if err != nil {
			return nil, err
		}

		result := r.db.WithContext(ctx).Model(&entity.Product{}).
			Where("id = ? AND boxes = ? AND loose_units = ?",
				id, product.Stock.Boxes, product.Stock.LooseUnits).
			Updates(map[string]interface{}{
				"boxes":       after.Boxes,
				"loose_units": after.LooseUnits,
				"total_units": after.TotalUnits(),
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			delta := after.DeltaFrom(product.Stock)
			return &delta, nil
		}
		// A concurrent writer won the race; reload and recompute.
	}

	return nil, apperror.NewConflictError("Stock is being modified concurrently, please retry")
}

// ApplyStockDelta applies a relative adjustment in one conditional UPDATE.
// The guard keeps a compensating credit from driving a field negative when a
// concurrent sale already consumed the surplus being returned.
func (r *productRepository) ApplyStockDelta(ctx context.Context, id uuid.UUID, delta entity.StockDelta) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND boxes + ? >= 0 AND loose_units + ? >= 0",
			id, delta.Boxes, delta.LooseUnits).
		Updates(map[string]interface{}{
			"boxes":       gorm.Expr("boxes + ?", delta.Boxes),
			"loose_units": gorm.Expr("loose_units + ?", delta.LooseUnits),
			"total_units": gorm.Expr("(boxes + ?) * units_per_box + loose_units + ?", delta.Boxes, delta.LooseUnits),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("Stock adjustment would leave negative quantities")
	}
	return nil
}

// CreditStock adds boxes and loose units for restocks and returns.
func (r *productRepository) CreditStock(ctx context.Context, id uuid.UUID, boxes, looseUnits int) error {
	if boxes < 0 || looseUnits < 0 || (boxes == 0 && looseUnits == 0) {
		return apperror.NewBadRequestError("Credit quantities must be non-negative and not both zero")
	}
	return r.ApplyStockDelta(ctx, id, entity.StockDelta{Boxes: boxes, LooseUnits: looseUnits})
}
