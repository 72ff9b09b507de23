package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/apperror"
)

// fakeProductRepo is an in-memory ProductRepository with the same debit and
// compensation semantics as the postgres implementation, plus failure
// injection knobs for the rollback paths.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product

	// failDebitFor makes DebitStock fail for a specific product.
	failDebitFor uuid.UUID
	// failCompensate makes ApplyStockDelta fail for every product.
	failCompensate bool

	debits      []uuid.UUID
	compensated []uuid.UUID
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DebitStock(ctx context.Context, id uuid.UUID, units int) (*entity.StockDelta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failDebitFor == id {
		return nil, errors.New("injected debit failure")
	}

	p, ok := r.products[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	after, err := p.Stock.Debit(units, p.Name)
	if err != nil {
		return nil, err
	}
	delta := after.DeltaFrom(p.Stock)
	p.Stock = after
	r.debits = append(r.debits, id)
	return &delta, nil
}

func (r *fakeProductRepo) ApplyStockDelta(ctx context.Context, id uuid.UUID, delta entity.StockDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCompensate {
		return errors.New("injected compensation failure")
	}

	p, ok := r.products[id]
	if !ok {
		return apperror.NewNotFoundError("Product")
	}
	if p.Stock.Boxes+delta.Boxes < 0 || p.Stock.LooseUnits+delta.LooseUnits < 0 {
		return apperror.NewConflictError("Stock adjustment would leave negative quantities")
	}
	p.Stock.Boxes += delta.Boxes
	p.Stock.LooseUnits += delta.LooseUnits
	r.compensated = append(r.compensated, id)
	return nil
}

func (r *fakeProductRepo) CreditStock(ctx context.Context, id uuid.UUID, boxes, looseUnits int) error {
	return r.ApplyStockDelta(ctx, id, entity.StockDelta{Boxes: boxes, LooseUnits: looseUnits})
}

// fakeSaleRepo is an in-memory SaleRepository with an injectable Create
// failure for exercising the compensation path.
type fakeSaleRepo struct {
	mu         sync.Mutex
	sales      map[uuid.UUID]*entity.Sale
	failCreate bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("injected persistence failure")
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	clone := *sale
	r.sales[sale.ID] = &clone
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListBetween(ctx context.Context, start, end time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if s.Status == enum.SaleStatusCompleted && !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return apperror.NewNotFoundError("Sale")
	}
	s.Status = status
	return nil
}

// testProduct builds a product sold both ways with simple prices.
func testProduct(name, code string, boxes, loose, perBox int) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		Slug:      code,
		UnitPrice: decimal.NewFromInt(1500),
		BoxPrice:  decimal.NewFromInt(12500),
		SaleMode:  enum.SaleModeBoth,
		Stock:     entity.Stock{Boxes: boxes, LooseUnits: loose, UnitsPerBox: perBox},
		Active:    true,
	}
}
