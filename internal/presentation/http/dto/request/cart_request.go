package request

// AddToCartRequest is the payload for adding a line to the cart. Either
// product_id or code (barcode scan) must be present.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Kind      string `json:"kind" binding:"required,oneof=unit box"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartLineRequest is the payload for changing a line's quantity
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
