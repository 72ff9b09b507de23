package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Kind      string          `json:"kind"` // unit-kind abbreviation, e.g. "und"/"caja"
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is NOT a
// database entity — it is a pure projection of a committed sale, so the same
// sale always yields the same receipt.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	InvoiceNo       string          `json:"invoice_no"`
	Date            string          `json:"date"`
	Cashier         string          `json:"cashier,omitempty"`
	Customer        string          `json:"customer,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Items           []ReceiptItem   `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
}
