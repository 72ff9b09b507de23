package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitienda/pos-api/internal/domain/enum"
)

func TestPriceFromMargin(t *testing.T) {
	s := NewPricingService()

	price := s.PriceFromMargin(decimal.NewFromInt(2000), decimal.NewFromInt(25))
	assert.True(t, price.Equal(decimal.NewFromInt(2500)), "expected 2500, got %s", price)
}

func TestMarginFromPrice(t *testing.T) {
	s := NewPricingService()

	margin := s.MarginFromPrice(decimal.NewFromInt(2000), decimal.NewFromInt(2500))
	assert.True(t, margin.Equal(decimal.NewFromInt(25)), "expected 25, got %s", margin)
}

func TestPricingRoundTrip(t *testing.T) {
	s := NewPricingService()

	cost := decimal.NewFromFloat(1333.33)
	margin := decimal.NewFromFloat(17.5)

	price := s.PriceFromMargin(cost, margin)
	back := s.MarginFromPrice(cost, price)

	diff := back.Sub(margin).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)),
		"round trip drifted: started %s, got back %s", margin, back)
}

func TestPricingZeroCost(t *testing.T) {
	s := NewPricingService()

	assert.True(t, s.PriceFromMargin(decimal.Zero, decimal.NewFromInt(30)).IsZero())
	assert.True(t, s.MarginFromPrice(decimal.Zero, decimal.NewFromInt(500)).IsZero())
}

func TestResolveEditingPrice(t *testing.T) {
	s := NewPricingService()

	track, err := s.Resolve(PriceTrack{
		Cost:    decimal.NewFromInt(1000),
		Price:   decimal.NewFromInt(1300),
		Margin:  decimal.NewFromInt(99), // stale, must be overwritten
		Editing: enum.EditingPrice,
	})
	require.NoError(t, err)

	assert.True(t, track.Price.Equal(decimal.NewFromInt(1300)))
	assert.True(t, track.Margin.Equal(decimal.NewFromInt(30)), "got %s", track.Margin)
}

func TestResolveEditingMargin(t *testing.T) {
	s := NewPricingService()

	track, err := s.Resolve(PriceTrack{
		Cost:    decimal.NewFromInt(1000),
		Price:   decimal.NewFromInt(999), // stale, must be overwritten
		Margin:  decimal.NewFromInt(40),
		Editing: enum.EditingMargin,
	})
	require.NoError(t, err)

	assert.True(t, track.Price.Equal(decimal.NewFromInt(1400)), "got %s", track.Price)
	assert.True(t, track.Margin.Equal(decimal.NewFromInt(40)))
}

func TestResolveRejectsNegative(t *testing.T) {
	s := NewPricingService()

	_, err := s.Resolve(PriceTrack{
		Cost:    decimal.NewFromInt(-5),
		Editing: enum.EditingPrice,
	})
	assert.Error(t, err)
}

func TestResolveRejectsUnknownTag(t *testing.T) {
	s := NewPricingService()

	_, err := s.Resolve(PriceTrack{Editing: enum.PriceEditing("bogus")})
	assert.Error(t, err)
}
