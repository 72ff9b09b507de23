package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/pkg/apperror"
)

func newSaleFixture(products ...*entity.Product) (*SaleService, *CartService, *fakeProductRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := newFakeSaleRepo()
	cartSvc := NewCartService(NewCartStore(), productRepo)
	saleSvc := NewSaleService(productRepo, saleRepo, cartSvc)
	return saleSvc, cartSvc, productRepo, saleRepo
}

func TestCommitHappyPath(t *testing.T) {
	ctx := context.Background()
	gaseosa := testProduct("Gaseosa 350ml", "7701234", 5, 10, 30)
	svc, cartSvc, productRepo, _ := newSaleFixture(gaseosa)

	_, err := cartSvc.Add(ctx, "caja-1", gaseosa.ID, enum.SaleUnitUnit, 12)
	require.NoError(t, err)
	_, err = cartSvc.Add(ctx, "caja-1", gaseosa.ID, enum.SaleUnitBox, 1)
	require.NoError(t, err)

	userID := uuid.New()
	sale, err := svc.Commit(ctx, "caja-1", userID, CommitInput{
		DiscountPercent: decimal.NewFromInt(10),
		Tax:             decimal.NewFromInt(500),
		PaymentMethod:   "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, userID, sale.UserID)
	assert.True(t, strings.HasPrefix(sale.InvoiceNo, "POS-"))
	require.Len(t, sale.Items, 2)

	// 12 units at 1500 plus 1 box at 12500.
	expectedSubtotal := decimal.NewFromInt(12*1500 + 12500)
	assert.True(t, sale.Subtotal.Equal(expectedSubtotal), "subtotal %s", sale.Subtotal)

	expectedTotal := entity.ComputeTotal(expectedSubtotal, decimal.NewFromInt(10), decimal.NewFromInt(500))
	assert.True(t, sale.Total.Equal(expectedTotal), "total %s", sale.Total)

	// Started at 5 boxes + 10 loose (160 units); sold 12 units + 1 box (42).
	stored, _ := productRepo.GetByID(ctx, gaseosa.ID)
	assert.Equal(t, 160-42, stored.Stock.TotalUnits())

	// Cart clears only on success.
	assert.True(t, cartSvc.Get("caja-1").IsEmpty())
}

func TestCommitDebitFailureCompensatesEarlierDebits(t *testing.T) {
	ctx := context.Background()
	first := testProduct("Arroz", "7700010", 3, 5, 10)
	second := testProduct("Aceite", "7700011", 2, 0, 12)
	svc, cartSvc, productRepo, saleRepo := newSaleFixture(first, second)

	_, err := cartSvc.Add(ctx, "caja-1", first.ID, enum.SaleUnitUnit, 8)
	require.NoError(t, err)
	_, err = cartSvc.Add(ctx, "caja-1", second.ID, enum.SaleUnitBox, 1)
	require.NoError(t, err)

	productRepo.failDebitFor = second.ID

	_, err = svc.Commit(ctx, "caja-1", uuid.New(), CommitInput{})
	require.Error(t, err)

	// The first product's debit was rolled back exactly.
	stored, _ := productRepo.GetByID(ctx, first.ID)
	assert.Equal(t, 3, stored.Stock.Boxes)
	assert.Equal(t, 5, stored.Stock.LooseUnits)
	assert.Contains(t, productRepo.compensated, first.ID)

	// No sale was recorded and the cart survives for retry.
	assert.Empty(t, saleRepo.sales)
	assert.False(t, cartSvc.Get("caja-1").IsEmpty())
}

func TestCommitPersistFailureCompensatesAllDebits(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Cafe", "7700012", 4, 2, 24)
	svc, cartSvc, productRepo, saleRepo := newSaleFixture(p)

	_, err := cartSvc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 30)
	require.NoError(t, err)

	saleRepo.failCreate = true

	_, err = svc.Commit(ctx, "caja-1", uuid.New(), CommitInput{})
	require.Error(t, err)

	stored, _ := productRepo.GetByID(ctx, p.ID)
	assert.Equal(t, 4, stored.Stock.Boxes)
	assert.Equal(t, 2, stored.Stock.LooseUnits)
}

func TestCommitRollbackFailureSurfacesLoudly(t *testing.T) {
	ctx := context.Background()
	first := testProduct("Arroz", "7700010", 3, 5, 10)
	second := testProduct("Aceite", "7700011", 2, 0, 12)
	svc, cartSvc, productRepo, _ := newSaleFixture(first, second)

	_, err := cartSvc.Add(ctx, "caja-1", first.ID, enum.SaleUnitUnit, 8)
	require.NoError(t, err)
	_, err = cartSvc.Add(ctx, "caja-1", second.ID, enum.SaleUnitBox, 1)
	require.NoError(t, err)

	productRepo.failDebitFor = second.ID
	productRepo.failCompensate = true

	_, err = svc.Commit(ctx, "caja-1", uuid.New(), CommitInput{})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 500, appErr.Code)
	assert.Contains(t, appErr.Message, "rollback failed")
}

func TestCommitEmptyCart(t *testing.T) {
	svc, _, _, _ := newSaleFixture()
	_, err := svc.Commit(context.Background(), "caja-1", uuid.New(), CommitInput{})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCommitRejectsBadDiscount(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Pan", "7700013", 0, 10, 1)
	svc, cartSvc, _, _ := newSaleFixture(p)

	_, err := cartSvc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 1)
	require.NoError(t, err)

	_, err = svc.Commit(ctx, "caja-1", uuid.New(), CommitInput{
		DiscountPercent: decimal.NewFromInt(101),
	})
	assert.Error(t, err)
}

func TestCancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Gaseosa", "7701234", 5, 10, 30)
	svc, cartSvc, productRepo, _ := newSaleFixture(p)

	_, err := cartSvc.Add(ctx, "caja-1", p.ID, enum.SaleUnitBox, 2)
	require.NoError(t, err)

	sale, err := svc.Commit(ctx, "caja-1", uuid.New(), CommitInput{})
	require.NoError(t, err)

	before, _ := productRepo.GetByID(ctx, p.ID)
	require.Equal(t, 3, before.Stock.Boxes)

	cancelled, err := svc.Cancel(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, cancelled.Status)

	after, _ := productRepo.GetByID(ctx, p.ID)
	assert.Equal(t, 5, after.Stock.Boxes)
}

func TestReturnOnlyFromCompleted(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Gaseosa", "7701234", 5, 10, 30)
	svc, cartSvc, _, _ := newSaleFixture(p)

	_, err := cartSvc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 1)
	require.NoError(t, err)

	sale, err := svc.Commit(ctx, "caja-1", uuid.New(), CommitInput{})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, sale.ID)
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = svc.Return(ctx, sale.ID)
	assert.Error(t, err)
}
