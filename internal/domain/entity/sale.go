package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mitienda/pos-api/internal/domain/enum"
)

// Sale is a committed transaction. Items and amounts are written once at
// commit and never rewritten; only Status transitions afterwards, so
// historical invoices can never change retroactively.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo  string          `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"` // cashier (actor)
	CustomerID *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status     enum.SaleStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"subtotal"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0" json:"discount_percent"`
	Tax             decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"tax"`
	Total           decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"total"`

	PaymentMethod string `gorm:"size:50" json:"payment_method"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ComputeTotal derives total = (subtotal - subtotal*discount/100) + tax.
func ComputeTotal(subtotal, discountPercent, tax decimal.Decimal) decimal.Decimal {
	discount := subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discount).Add(tax)
}

// SaleItem is an immutable line snapshot: the product's name, code and price
// are copied at commit time and stay frozen even if the product changes.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductCode string          `gorm:"size:100;not null" json:"product_code"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Kind        enum.SaleUnit   `gorm:"size:10;not null" json:"kind"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
