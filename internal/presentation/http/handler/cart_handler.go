package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mitienda/pos-api/internal/application/service"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/internal/presentation/http/dto/request"
	"github.com/mitienda/pos-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the session's current cart
func (h *CartHandler) Get(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart := h.cartService.Get(sessionID)
	response.OK(c, "Cart retrieved successfully", cart)
}

// Add handles adding a product to the cart, by ID or by scanned code
func (h *CartHandler) Add(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	kind := enum.SaleUnit(req.Kind)

	if req.Code != "" {
		cart, err := h.cartService.AddByCode(c.Request.Context(), sessionID, req.Code, kind, req.Quantity)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Product added to cart", cart)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Either product_id or code is required")
		return
	}

	cart, err := h.cartService.Add(c.Request.Context(), sessionID, productID, kind, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product added to cart", cart)
}

// UpdateLine handles changing a cart line's quantity
func (h *CartHandler) UpdateLine(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid cart line ID")
		return
	}

	var req request.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, lineID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart line updated", cart)
}

// RemoveLine handles removing a cart line
func (h *CartHandler) RemoveLine(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid cart line ID")
		return
	}

	cart, err := h.cartService.Remove(sessionID, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart line removed", cart)
}

// Clear empties the session's cart
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.cartService.Clear(sessionID)
	response.NoContent(c)
}
