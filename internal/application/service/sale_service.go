package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/apperror"
)

var (
	salesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_committed_total",
		Help: "Number of successfully committed sales",
	})
	saleCommitFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sale_commit_failures_total",
		Help: "Number of failed sale commits by reason",
	}, []string{"reason"})
	saleRollbackFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sale_rollback_failures_total",
		Help: "Number of compensating stock credits that failed; each one requires manual reconciliation",
	})
)

// CommitInput carries the checkout parameters the cashier confirms.
type CommitInput struct {
	CustomerID      *uuid.UUID
	DiscountPercent decimal.Decimal
	Tax             decimal.Decimal
	PaymentMethod   string
	Notes           string
}

// SaleService turns a cart into a committed sale. Stock is debited product by
// product; any failure unwinds the debits already applied using their exact
// deltas, so a half-committed sale never leaves stock moved.
type SaleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	cartService *CartService
}

// NewSaleService creates a new sale service
func NewSaleService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, cartService *CartService) *SaleService {
	return &SaleService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		cartService: cartService,
	}
}

type appliedDebit struct {
	productID   uuid.UUID
	productName string
	delta       entity.StockDelta
}

// Commit checks out the session's cart. On success the cart is cleared and
// the completed sale returned with its item snapshots.
func (s *SaleService) Commit(ctx context.Context, sessionID string, userID uuid.UUID, input CommitInput) (*entity.Sale, error) {
	cart := s.cartService.Get(sessionID)
	if cart.IsEmpty() {
		saleCommitFailures.WithLabelValues("empty_cart").Inc()
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		saleCommitFailures.WithLabelValues("invalid_discount").Inc()
		return nil, apperror.NewBadRequestError("Discount percent must be between 0 and 100")
	}
	if input.Tax.IsNegative() {
		saleCommitFailures.WithLabelValues("invalid_tax").Inc()
		return nil, apperror.NewBadRequestError("Tax must not be negative")
	}

	// Revalidate every line against current product state before moving any
	// stock. Prices stay frozen from the cart snapshot.
	units := make(map[uuid.UUID]int, len(cart.Lines))
	for i := range cart.Lines {
		line := &cart.Lines[i]
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			saleCommitFailures.WithLabelValues("lookup").Inc()
			return nil, err
		}
		if product == nil || !product.Active {
			saleCommitFailures.WithLabelValues("product_gone").Inc()
			return nil, apperror.NewNotFoundError("Product " + line.ProductName)
		}
		if !product.SaleMode.Permits(line.Kind) {
			saleCommitFailures.WithLabelValues("unsupported_kind").Inc()
			return nil, apperror.NewUnsupportedSaleKindError(product.Name, string(line.Kind))
		}
		if line.Quantity < 1 {
			saleCommitFailures.WithLabelValues("invalid_quantity").Inc()
			return nil, apperror.NewInvalidQuantityError(line.Quantity)
		}
		units[line.ID] = product.Stock.UnitsFor(line.Kind, line.Quantity)
	}

	// Debit sequentially, remembering each applied delta for compensation.
	var applied []appliedDebit
	for i := range cart.Lines {
		line := &cart.Lines[i]
		delta, err := s.productRepo.DebitStock(ctx, line.ProductID, units[line.ID])
		if err != nil {
			saleCommitFailures.WithLabelValues("debit").Inc()
			if rbErr := s.compensate(ctx, applied); rbErr != nil {
				return nil, rbErr
			}
			return nil, err
		}
		applied = append(applied, appliedDebit{
			productID:   line.ProductID,
			productName: line.ProductName,
			delta:       *delta,
		})
	}

	subtotal := cart.Subtotal()
	sale := &entity.Sale{
		InvoiceNo:       newInvoiceNo(),
		UserID:          userID,
		CustomerID:      input.CustomerID,
		Status:          enum.SaleStatusCompleted,
		Subtotal:        subtotal,
		DiscountPercent: input.DiscountPercent,
		Tax:             input.Tax,
		Total:           entity.ComputeTotal(subtotal, input.DiscountPercent, input.Tax),
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
	}
	for i := range cart.Lines {
		line := &cart.Lines[i]
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			Kind:        line.Kind,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		saleCommitFailures.WithLabelValues("persist").Inc()
		if rbErr := s.compensate(ctx, applied); rbErr != nil {
			return nil, rbErr
		}
		return nil, err
	}

	s.cartService.Clear(sessionID)
	salesCommitted.Inc()
	return sale, nil
}

// compensate credits back the applied debits in reverse order. A failure here
// is the worst case: stock has moved and cannot be restored automatically.
func (s *SaleService) compensate(ctx context.Context, applied []appliedDebit) error {
	for i := len(applied) - 1; i >= 0; i-- {
		d := applied[i]
		if err := s.productRepo.ApplyStockDelta(ctx, d.productID, d.delta.Inverse()); err != nil {
			saleRollbackFailures.Inc()
			log.Printf("CRITICAL: stock rollback failed for product %s: %v", d.productID, err)
			return apperror.NewCommitRollbackFailureError(d.productName, err)
		}
	}
	return nil
}

// GetByID returns the sale with items and relations loaded.
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// List returns sales matching the filter.
func (s *SaleService) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}

// ListBetween returns completed sales inside the window, oldest first.
func (s *SaleService) ListBetween(ctx context.Context, start, end time.Time) ([]entity.Sale, error) {
	return s.saleRepo.ListBetween(ctx, start, end)
}

// Cancel voids a sale and credits every item's stock back in its original
// kind: box lines return as boxes, unit lines as loose units.
func (s *SaleService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return s.transition(ctx, id, enum.SaleStatusCancelled)
}

// Return processes a customer return of a completed sale, restocking items.
func (s *SaleService) Return(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return s.transition(ctx, id, enum.SaleStatusReturned)
}

func (s *SaleService) transition(ctx context.Context, id uuid.UUID, target enum.SaleStatus) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if !sale.Status.CanTransitionTo(target) {
		return nil, apperror.NewConflictError(
			"Sale in status " + string(sale.Status) + " cannot move to " + string(target))
	}

	// Only a completed sale has moved stock that needs restoring.
	if sale.Status == enum.SaleStatusCompleted {
		for i := range sale.Items {
			item := &sale.Items[i]
			boxes, loose := 0, 0
			if item.Kind == enum.SaleUnitBox {
				boxes = item.Quantity
			} else {
				loose = item.Quantity
			}
			if err := s.productRepo.CreditStock(ctx, item.ProductID, boxes, loose); err != nil {
				return nil, apperror.NewCommitRollbackFailureError(item.ProductName, err)
			}
		}
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	sale.Status = target
	return sale, nil
}

// newInvoiceNo builds a short human-readable invoice number. Uniqueness is
// enforced by the database index; eight hex chars keeps collisions rare
// enough for a single store while staying printable on a 32-column receipt.
func newInvoiceNo() string {
	return "POS-" + strings.ToUpper(uuid.New().String()[:8])
}
