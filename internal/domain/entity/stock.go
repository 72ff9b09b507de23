package entity

import (
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/pkg/apperror"
)

// Stock is a product's dual quantity representation: whole boxes plus loose
// units, with a fixed number of units per box. It is a value object; all
// operations return a new Stock and never leave a negative field.
type Stock struct {
	Boxes       int `gorm:"not null;default:0" json:"boxes"`
	LooseUnits  int `gorm:"not null;default:0" json:"loose_units"`
	UnitsPerBox int `gorm:"not null;default:1" json:"units_per_box"`
}

// TotalUnits derives the total unit count. It is never stored independently
// of its inputs without recomputation.
func (s Stock) TotalUnits() int {
	return s.Boxes*s.UnitsPerBox + s.LooseUnits
}

// AvailableFor returns how much can be sold in the given unit kind.
// Box availability is floor(totalUnits/unitsPerBox): loose units can
// complete a box, matching the debit algorithm below.
func (s Stock) AvailableFor(kind enum.SaleUnit) int {
	if kind == enum.SaleUnitBox {
		if s.UnitsPerBox < 1 {
			return 0
		}
		return s.TotalUnits() / s.UnitsPerBox
	}
	return s.TotalUnits()
}

// Reserve validates that quantity of the given kind could be taken from this
// snapshot. It has no side effects; carts call it as a reservation-free check.
func (s Stock) Reserve(kind enum.SaleUnit, quantity int, productName string) error {
	if quantity < 1 {
		return apperror.NewInvalidQuantityError(quantity)
	}
	if available := s.AvailableFor(kind); quantity > available {
		return apperror.NewInsufficientStockError(productName, quantity, available)
	}
	return nil
}

// UnitsFor converts a quantity in the given kind to loose units.
func (s Stock) UnitsFor(kind enum.SaleUnit, quantity int) int {
	if kind == enum.SaleUnitBox {
		return quantity * s.UnitsPerBox
	}
	return quantity
}

// Debit removes units, consuming loose units first and then breaking whole
// boxes. The surplus from broken boxes returns to the loose count, which is
// how the shelf behaves: boxes are only opened when the loose tray runs out.
func (s Stock) Debit(units int, productName string) (Stock, error) {
	if units < 1 {
		return s, apperror.NewInvalidQuantityError(units)
	}

	if units <= s.LooseUnits {
		s.LooseUnits -= units
		return s, nil
	}

	remaining := units - s.LooseUnits
	boxesNeeded := (remaining + s.UnitsPerBox - 1) / s.UnitsPerBox
	if boxesNeeded > s.Boxes {
		return s, apperror.NewInsufficientStockError(productName, units, s.TotalUnits())
	}

	s.Boxes -= boxesNeeded
	s.LooseUnits = boxesNeeded*s.UnitsPerBox - remaining
	return s, nil
}

// Credit adds boxes and loose units (restock or return).
func (s Stock) Credit(boxes, looseUnits int) Stock {
	if boxes > 0 {
		s.Boxes += boxes
	}
	if looseUnits > 0 {
		s.LooseUnits += looseUnits
	}
	return s
}

// StockDelta is the exact field-level change a debit applied, kept so a
// compensating credit can restore the pre-debit state precisely.
type StockDelta struct {
	Boxes      int
	LooseUnits int
}

// DeltaFrom computes the change from a previous snapshot to this one.
func (s Stock) DeltaFrom(before Stock) StockDelta {
	return StockDelta{
		Boxes:      s.Boxes - before.Boxes,
		LooseUnits: s.LooseUnits - before.LooseUnits,
	}
}

// Inverse returns the compensating delta.
func (d StockDelta) Inverse() StockDelta {
	return StockDelta{Boxes: -d.Boxes, LooseUnits: -d.LooseUnits}
}
