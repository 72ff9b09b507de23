package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/pkg/apperror"
)

func newCartService(products ...*entity.Product) (*CartService, *fakeProductRepo) {
	repo := newFakeProductRepo(products...)
	return NewCartService(NewCartStore(), repo), repo
}

func TestCartAddSameProductBothKinds(t *testing.T) {
	ctx := context.Background()
	gaseosa := testProduct("Gaseosa 350ml", "7701234", 5, 10, 30)
	svc, _ := newCartService(gaseosa)

	cart, err := svc.Add(ctx, "caja-1", gaseosa.ID, enum.SaleUnitUnit, 3)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)

	cart, err = svc.Add(ctx, "caja-1", gaseosa.ID, enum.SaleUnitBox, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2, "unit and box lines must stay separate")

	unitLine := cart.FindLine(gaseosa.ID, enum.SaleUnitUnit)
	boxLine := cart.FindLine(gaseosa.ID, enum.SaleUnitBox)
	require.NotNil(t, unitLine)
	require.NotNil(t, boxLine)

	assert.True(t, unitLine.UnitPrice.Equal(decimal.NewFromInt(1500)))
	assert.True(t, boxLine.UnitPrice.Equal(decimal.NewFromInt(12500)))
	assert.True(t, unitLine.LineTotal.Equal(decimal.NewFromInt(4500)))
	assert.True(t, boxLine.LineTotal.Equal(decimal.NewFromInt(25000)))

	expected := decimal.NewFromInt(4500 + 25000)
	assert.True(t, cart.Subtotal().Equal(expected), "subtotal %s", cart.Subtotal())
}

func TestCartAddMergesSameKind(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Arroz 500g", "7705555", 2, 5, 10)
	svc, _ := newCartService(p)

	_, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 2)
	require.NoError(t, err)

	cart, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 3)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.True(t, cart.Lines[0].LineTotal.Equal(decimal.NewFromInt(7500)))
}

func TestCartAddRejectsUnsupportedKind(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Pan", "7700001", 0, 20, 1)
	p.SaleMode = enum.SaleModeUnit
	svc, _ := newCartService(p)

	_, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitBox, 1)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCartAddRejectsInsufficientStock(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Leche", "7700002", 1, 2, 6) // 8 units total
	svc, _ := newCartService(p)

	_, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 9)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestCartAddMergeChecksCombinedQuantity(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Leche", "7700002", 0, 6, 6)
	svc, _ := newCartService(p)

	_, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 4)
	require.NoError(t, err)

	// 4 already in the cart, 6 available: adding 3 more must fail.
	_, err = svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 3)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestCartAddRejectsInvalidQuantity(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Leche", "7700002", 1, 2, 6)
	svc, _ := newCartService(p)

	_, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 0)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCartUpdateQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Aceite", "7700003", 3, 0, 12)
	svc, _ := newCartService(p)

	cart, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 2)
	require.NoError(t, err)
	lineID := cart.Lines[0].ID

	cart, err = svc.UpdateQuantity(ctx, "caja-1", lineID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, cart.Lines[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, "caja-1", lineID, 100)
	assert.True(t, apperror.IsInsufficientStock(err))

	cart, err = svc.Remove("caja-1", lineID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartPriceSnapshotSurvivesRepricing(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Cafe", "7700004", 2, 0, 24)
	svc, repo := newCartService(p)

	cart, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 1)
	require.NoError(t, err)

	// Reprice the product after the add.
	stored, _ := repo.GetByID(ctx, p.ID)
	stored.UnitPrice = decimal.NewFromInt(9999)
	require.NoError(t, repo.Update(ctx, stored))

	assert.True(t, cart.Lines[0].UnitPrice.Equal(decimal.NewFromInt(1500)),
		"cart keeps the price snapshot from add time")
}

func TestCartSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	p := testProduct("Jabon", "7700005", 4, 0, 6)
	svc, _ := newCartService(p)

	_, err := svc.Add(ctx, "caja-1", p.ID, enum.SaleUnitUnit, 1)
	require.NoError(t, err)

	other := svc.Get("caja-2")
	assert.True(t, other.IsEmpty())
}

func TestCartRemoveUnknownLine(t *testing.T) {
	svc, _ := newCartService()
	_, err := svc.Remove("caja-1", uuid.New())
	assert.Error(t, err)
}
