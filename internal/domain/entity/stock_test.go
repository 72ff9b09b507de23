package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/pkg/apperror"
)

func TestDebitFromLooseOnly(t *testing.T) {
	s := Stock{Boxes: 2, LooseUnits: 10, UnitsPerBox: 30}

	after, err := s.Debit(4, "Gaseosa")
	require.NoError(t, err)

	assert.Equal(t, 2, after.Boxes)
	assert.Equal(t, 6, after.LooseUnits)
}

func TestDebitBreaksBox(t *testing.T) {
	// 3 loose, needs 5: break one box of 10, surplus 8 returns to loose.
	s := Stock{Boxes: 2, LooseUnits: 3, UnitsPerBox: 10}

	after, err := s.Debit(5, "Arroz")
	require.NoError(t, err)

	assert.Equal(t, 1, after.Boxes)
	assert.Equal(t, 8, after.LooseUnits)
	assert.Equal(t, 18, after.TotalUnits())
}

func TestDebitBreaksMultipleBoxes(t *testing.T) {
	s := Stock{Boxes: 3, LooseUnits: 2, UnitsPerBox: 10}

	after, err := s.Debit(25, "Arroz")
	require.NoError(t, err)

	assert.Equal(t, 0, after.Boxes)
	assert.Equal(t, 7, after.LooseUnits)
}

func TestDebitExactTotal(t *testing.T) {
	s := Stock{Boxes: 1, LooseUnits: 5, UnitsPerBox: 10}

	after, err := s.Debit(15, "Cafe")
	require.NoError(t, err)

	assert.Equal(t, 0, after.Boxes)
	assert.Equal(t, 0, after.LooseUnits)
}

func TestDebitInsufficient(t *testing.T) {
	s := Stock{Boxes: 1, LooseUnits: 2, UnitsPerBox: 6}

	_, err := s.Debit(9, "Leche")
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// The receiver snapshot is untouched.
	assert.Equal(t, 1, s.Boxes)
	assert.Equal(t, 2, s.LooseUnits)
}

func TestDebitRejectsNonPositive(t *testing.T) {
	s := Stock{Boxes: 1, LooseUnits: 2, UnitsPerBox: 6}

	_, err := s.Debit(0, "Leche")
	assert.Error(t, err)
	_, err = s.Debit(-3, "Leche")
	assert.Error(t, err)
}

func TestDebitNeverGoesNegative(t *testing.T) {
	cases := []struct {
		stock Stock
		units int
	}{
		{Stock{Boxes: 0, LooseUnits: 0, UnitsPerBox: 10}, 1},
		{Stock{Boxes: 2, LooseUnits: 3, UnitsPerBox: 10}, 1},
		{Stock{Boxes: 2, LooseUnits: 3, UnitsPerBox: 10}, 23},
		{Stock{Boxes: 5, LooseUnits: 0, UnitsPerBox: 1}, 5},
		{Stock{Boxes: 1, LooseUnits: 29, UnitsPerBox: 30}, 59},
	}
	for _, tc := range cases {
		after, err := tc.stock.Debit(tc.units, "x")
		if err != nil {
			continue
		}
		assert.GreaterOrEqual(t, after.Boxes, 0)
		assert.GreaterOrEqual(t, after.LooseUnits, 0)
		assert.Equal(t, tc.stock.TotalUnits()-tc.units, after.TotalUnits())
	}
}

func TestAvailableForBoxCountsLooseCompletion(t *testing.T) {
	// 1 box + 25 loose of 30 per box: 55 units, floor(55/30) = 1 box.
	s := Stock{Boxes: 1, LooseUnits: 25, UnitsPerBox: 30}
	assert.Equal(t, 1, s.AvailableFor(enum.SaleUnitBox))

	// 35 loose alone can fill a box.
	s = Stock{Boxes: 0, LooseUnits: 35, UnitsPerBox: 30}
	assert.Equal(t, 1, s.AvailableFor(enum.SaleUnitBox))

	assert.Equal(t, 35, s.AvailableFor(enum.SaleUnitUnit))
}

func TestReserveChecksWithoutMutating(t *testing.T) {
	s := Stock{Boxes: 2, LooseUnits: 3, UnitsPerBox: 10}

	require.NoError(t, s.Reserve(enum.SaleUnitUnit, 23, "Arroz"))
	assert.Error(t, s.Reserve(enum.SaleUnitUnit, 24, "Arroz"))
	assert.Error(t, s.Reserve(enum.SaleUnitBox, 3, "Arroz"))
	assert.Error(t, s.Reserve(enum.SaleUnitUnit, 0, "Arroz"))

	assert.Equal(t, 2, s.Boxes)
	assert.Equal(t, 3, s.LooseUnits)
}

func TestDeltaAndInverseRestoreExactly(t *testing.T) {
	before := Stock{Boxes: 2, LooseUnits: 3, UnitsPerBox: 10}
	after, err := before.Debit(5, "Arroz")
	require.NoError(t, err)

	delta := after.DeltaFrom(before)
	assert.Equal(t, StockDelta{Boxes: -1, LooseUnits: 5}, delta)

	inv := delta.Inverse()
	restored := Stock{
		Boxes:       after.Boxes + inv.Boxes,
		LooseUnits:  after.LooseUnits + inv.LooseUnits,
		UnitsPerBox: after.UnitsPerBox,
	}
	assert.Equal(t, before, restored)
}

func TestCreditIgnoresNegative(t *testing.T) {
	s := Stock{Boxes: 1, LooseUnits: 1, UnitsPerBox: 10}
	after := s.Credit(-2, -3)
	assert.Equal(t, s, after)

	after = s.Credit(2, 5)
	assert.Equal(t, 3, after.Boxes)
	assert.Equal(t, 6, after.LooseUnits)
}

func TestUnitsFor(t *testing.T) {
	s := Stock{UnitsPerBox: 12}
	assert.Equal(t, 36, s.UnitsFor(enum.SaleUnitBox, 3))
	assert.Equal(t, 3, s.UnitsFor(enum.SaleUnitUnit, 3))
}
