package service

import (
	"github.com/shopspring/decimal"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/pkg/apperror"
)

var oneHundred = decimal.NewFromInt(100)

// PricingService derives the dependent half of a price track. Each track has
// cost, sell price and margin percent, plus a tag naming which of price or
// margin the operator edited last; the other one is always recomputed from
// the cost rather than trusted from input.
type PricingService struct{}

// NewPricingService creates a new pricing service
func NewPricingService() *PricingService {
	return &PricingService{}
}

// PriceFromMargin computes price = cost * (1 + margin/100).
// A zero cost always yields a zero price regardless of margin.
func (s *PricingService) PriceFromMargin(cost, marginPercent decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return cost.Mul(oneHundred.Add(marginPercent)).Div(oneHundred)
}

// MarginFromPrice computes margin = (price - cost) / cost * 100.
// A zero cost yields a zero margin: the division is undefined and the UI
// shows the track as not yet priced.
func (s *PricingService) MarginFromPrice(cost, price decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(oneHundred)
}

// PriceTrack carries one editable price track through a resolve pass.
type PriceTrack struct {
	Cost    decimal.Decimal
	Price   decimal.Decimal
	Margin  decimal.Decimal
	Editing enum.PriceEditing
}

// Resolve recomputes the derived field of a track according to its editing
// tag. With EditingPrice the margin is derived from the price; with
// EditingMargin the price is derived from the margin; with EditingNone the
// price is kept and the margin rederived, which also covers cost changes.
func (s *PricingService) Resolve(t PriceTrack) (PriceTrack, error) {
	if !t.Editing.IsValid() {
		return t, apperror.NewBadRequestError("Unknown price editing tag: " + string(t.Editing))
	}
	if t.Cost.IsNegative() || t.Price.IsNegative() {
		return t, apperror.NewBadRequestError("Cost and price must not be negative")
	}

	switch t.Editing {
	case enum.EditingMargin:
		t.Price = s.PriceFromMargin(t.Cost, t.Margin)
	default:
		t.Margin = s.MarginFromPrice(t.Cost, t.Price)
	}
	return t, nil
}

// ResolveProduct resolves both tracks of a product in place.
func (s *PricingService) ResolveProduct(p *entity.Product) error {
	unit, err := s.Resolve(PriceTrack{
		Cost:    p.UnitCost,
		Price:   p.UnitPrice,
		Margin:  p.UnitMargin,
		Editing: p.UnitEditing,
	})
	if err != nil {
		return err
	}

	box, err := s.Resolve(PriceTrack{
		Cost:    p.BoxCost,
		Price:   p.BoxPrice,
		Margin:  p.BoxMargin,
		Editing: p.BoxEditing,
	})
	if err != nil {
		return err
	}

	p.UnitPrice, p.UnitMargin = unit.Price, unit.Margin
	p.BoxPrice, p.BoxMargin = box.Price, box.Margin
	return nil
}
