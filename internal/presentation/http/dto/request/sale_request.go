package request

// CommitSaleRequest is the payload for checking out the cart
type CommitSaleRequest struct {
	CustomerID      string `json:"customer_id"`
	DiscountPercent string `json:"discount_percent"`
	Tax             string `json:"tax"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

// SaleFilterRequest holds the query parameters for sale listing
type SaleFilterRequest struct {
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=pending completed cancelled returned"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`   // YYYY-MM-DD
}
