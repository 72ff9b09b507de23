package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mitienda/pos-api/internal/domain/enum"
)

// Product represents a product in the inventory. It carries two independent
// price tracks (per-unit and per-box), each with cost, sell price, derived
// margin and an explicit tag for which of price/margin was edited last.
type Product struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code string    `gorm:"size:100;uniqueIndex;not null" json:"code"` // barcode, FindByCode key
	Name string    `gorm:"size:255;not null" json:"name"`
	Slug string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`

	UnitCost    decimal.Decimal   `gorm:"type:decimal(14,4);not null;default:0" json:"unit_cost"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(14,4);not null;default:0" json:"unit_price"`
	UnitMargin  decimal.Decimal   `gorm:"type:decimal(9,4);not null;default:0" json:"unit_margin"`
	UnitEditing enum.PriceEditing `gorm:"size:10;not null;default:'none'" json:"unit_editing"`

	BoxCost    decimal.Decimal   `gorm:"type:decimal(14,4);not null;default:0" json:"box_cost"`
	BoxPrice   decimal.Decimal   `gorm:"type:decimal(14,4);not null;default:0" json:"box_price"`
	BoxMargin  decimal.Decimal   `gorm:"type:decimal(9,4);not null;default:0" json:"box_margin"`
	BoxEditing enum.PriceEditing `gorm:"size:10;not null;default:'none'" json:"box_editing"`

	SaleMode enum.SaleMode `gorm:"size:10;not null;default:'unit'" json:"sale_mode"`

	Stock Stock `gorm:"embedded" json:"stock"`
	// TotalUnits is a derived column kept for low-stock queries; the hooks
	// below recompute it on every save so it can never drift from Stock.
	TotalUnits int `gorm:"not null;default:0" json:"total_units"`
	StockAlert int `gorm:"not null;default:0" json:"stock_alert"`

	// Products are deactivated, never deleted: sales reference them forever.
	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID and derives the total-units column
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.TotalUnits = p.Stock.TotalUnits()
	return nil
}

// BeforeSave recomputes the derived total-units column
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.TotalUnits = p.Stock.TotalUnits()
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceFor returns the snapshot sell price for the given sale-unit kind.
func (p *Product) PriceFor(kind enum.SaleUnit) decimal.Decimal {
	if kind == enum.SaleUnitBox {
		return p.BoxPrice
	}
	return p.UnitPrice
}

// IsLowStock reports whether the derived unit total fell to the alert level.
func (p *Product) IsLowStock() bool {
	return p.Stock.TotalUnits() <= p.StockAlert
}
