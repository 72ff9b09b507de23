package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mitienda/pos-api/internal/application/service"
	"github.com/mitienda/pos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt rendering and printing requests
type ReceiptHandler struct {
	saleService    *service.SaleService
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(saleService *service.SaleService, receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{saleService: saleService, receiptService: receiptService}
}

// GetText returns the fixed-width plain text rendering of a sale's receipt
func (h *ReceiptHandler) GetText(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt := h.receiptService.Build(sale)
	c.Data(200, "text/plain; charset=utf-8", []byte(h.receiptService.RenderText(receipt)))
}

// GetPDF returns the A4 invoice PDF of a sale
func (h *ReceiptHandler) GetPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.receiptService.RenderPDF(h.receiptService.Build(sale))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+sale.InvoiceNo+".pdf")
	c.Data(200, "application/pdf", data)
}

// Print sends the receipt to the configured thermal printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.receiptService.Print(h.receiptService.Build(sale)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}
