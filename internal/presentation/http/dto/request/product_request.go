package request

// CreateProductRequest is the payload for creating a product. Prices come in
// as strings so the decimal values never pass through a float64.
type CreateProductRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`

	SaleMode string `json:"sale_mode" binding:"required,oneof=unit box both"`

	Boxes       int `json:"boxes" binding:"min=0"`
	LooseUnits  int `json:"loose_units" binding:"min=0"`
	UnitsPerBox int `json:"units_per_box" binding:"required,min=1"`
	StockAlert  int `json:"stock_alert" binding:"min=0"`

	UnitCost    string `json:"unit_cost"`
	UnitPrice   string `json:"unit_price"`
	UnitMargin  string `json:"unit_margin"`
	UnitEditing string `json:"unit_editing" binding:"omitempty,oneof=none price margin"`

	BoxCost    string `json:"box_cost"`
	BoxPrice   string `json:"box_price"`
	BoxMargin  string `json:"box_margin"`
	BoxEditing string `json:"box_editing" binding:"omitempty,oneof=none price margin"`
}

// UpdateProductRequest is the payload for updating a product. Stock counts
// are absent on purpose; restocks go through RestockRequest.
type UpdateProductRequest struct {
	Name       string `json:"name"`
	SaleMode   string `json:"sale_mode" binding:"omitempty,oneof=unit box both"`
	StockAlert *int   `json:"stock_alert"`

	UnitCost    *string `json:"unit_cost"`
	UnitPrice   *string `json:"unit_price"`
	UnitMargin  *string `json:"unit_margin"`
	UnitEditing string  `json:"unit_editing" binding:"omitempty,oneof=none price margin"`

	BoxCost    *string `json:"box_cost"`
	BoxPrice   *string `json:"box_price"`
	BoxMargin  *string `json:"box_margin"`
	BoxEditing string  `json:"box_editing" binding:"omitempty,oneof=none price margin"`
}

// RestockRequest is the payload for crediting stock
type RestockRequest struct {
	Boxes      int `json:"boxes" binding:"min=0"`
	LooseUnits int `json:"loose_units" binding:"min=0"`
}

// ProductFilterRequest holds the query parameters for product listing
type ProductFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	LowStock  bool   `form:"low_stock"`
	Inactive  bool   `form:"inactive"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
