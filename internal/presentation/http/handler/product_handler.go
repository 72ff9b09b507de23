package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mitienda/pos-api/internal/application/service"
	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/internal/presentation/http/dto/request"
	"github.com/mitienda/pos-api/internal/presentation/http/dto/response"
	"github.com/mitienda/pos-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		LowStock:  filter.LowStock,
		Inactive:  filter.Inactive,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	products, total, err := h.productService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product := &entity.Product{
		Code:     req.Code,
		Name:     req.Name,
		SaleMode: enum.SaleMode(req.SaleMode),
		Stock: entity.Stock{
			Boxes:       req.Boxes,
			LooseUnits:  req.LooseUnits,
			UnitsPerBox: req.UnitsPerBox,
		},
		StockAlert:  req.StockAlert,
		UnitEditing: editingOrNone(req.UnitEditing),
		BoxEditing:  editingOrNone(req.BoxEditing),
	}

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&product.UnitCost, req.UnitCost},
		{&product.UnitPrice, req.UnitPrice},
		{&product.UnitMargin, req.UnitMargin},
		{&product.BoxCost, req.BoxCost},
		{&product.BoxPrice, req.BoxPrice},
		{&product.BoxMargin, req.BoxMargin},
	}
	for _, f := range fields {
		d, err := parseDecimal(f.src)
		if err != nil {
			response.BadRequest(c, "Invalid decimal value: "+err.Error())
			return
		}
		*f.dst = d
	}

	created, err := h.productService.Create(c.Request.Context(), product)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", created)
}

// Get handles getting a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByCode resolves a barcode scan
func (h *ProductHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Product code is required")
		return
	}

	product, err := h.productService.GetByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, func(p *entity.Product) error {
		if req.Name != "" {
			p.Name = req.Name
		}
		if req.SaleMode != "" {
			p.SaleMode = enum.SaleMode(req.SaleMode)
		}
		if req.StockAlert != nil {
			p.StockAlert = *req.StockAlert
		}
		if req.UnitEditing != "" {
			p.UnitEditing = enum.PriceEditing(req.UnitEditing)
		}
		if req.BoxEditing != "" {
			p.BoxEditing = enum.PriceEditing(req.BoxEditing)
		}
		return applyDecimals(p, &req)
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Restock handles crediting stock to a product
func (h *ProductHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Restock(c.Request.Context(), id, req.Boxes, req.LooseUnits)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock credited successfully", product)
}

// Deactivate hides a product from sale
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLowStock handles getting low stock products
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

func editingOrNone(s string) enum.PriceEditing {
	if s == "" {
		return enum.EditingNone
	}
	return enum.PriceEditing(s)
}

func applyDecimals(p *entity.Product, req *request.UpdateProductRequest) error {
	set := func(dst *decimal.Decimal, src *string) error {
		if src == nil {
			return nil
		}
		d, err := parseDecimal(*src)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}

	if err := set(&p.UnitCost, req.UnitCost); err != nil {
		return err
	}
	if err := set(&p.UnitPrice, req.UnitPrice); err != nil {
		return err
	}
	if err := set(&p.UnitMargin, req.UnitMargin); err != nil {
		return err
	}
	if err := set(&p.BoxCost, req.BoxCost); err != nil {
		return err
	}
	if err := set(&p.BoxPrice, req.BoxPrice); err != nil {
		return err
	}
	return set(&p.BoxMargin, req.BoxMargin)
}
