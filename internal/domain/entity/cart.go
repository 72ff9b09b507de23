package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mitienda/pos-api/internal/domain/enum"
)

// CartLine is one line of an in-progress cart. The unit price is a snapshot
// taken at add time; it is not re-queried while the cart lives.
type CartLine struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Kind        enum.SaleUnit   `json:"kind"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Recalculate refreshes the line total after a quantity change.
func (l *CartLine) Recalculate() {
	l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a per-session, non-durable preview of a sale. It never touches
// product stock; availability is only authoritative again at commit time.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, UpdatedAt: time.Now()}
}

// FindLine returns the line for (product, kind), or nil.
func (c *Cart) FindLine(productID uuid.UUID, kind enum.SaleUnit) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Kind == kind {
			return &c.Lines[i]
		}
	}
	return nil
}

// LineByID returns the line with the given ID, or nil.
func (c *Cart) LineByID(lineID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine deletes the line with the given ID. Returns false if absent.
func (c *Cart) RemoveLine(lineID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Subtotal is the sum of all line totals, full precision.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range c.Lines {
		subtotal = subtotal.Add(c.Lines[i].LineTotal)
	}
	return subtotal
}

// Total applies a percentage discount to the subtotal. Tax is an additive
// step owned by the caller, never by the cart.
func (c *Cart) Total(discountPercent decimal.Decimal) decimal.Decimal {
	subtotal := c.Subtotal()
	discount := subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discount)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
