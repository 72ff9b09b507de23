package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mitienda/pos-api/internal/application/service"
	"github.com/mitienda/pos-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles xlsx export requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Products exports the full catalog as xlsx
func (h *ExportHandler) Products(c *gin.Context) {
	data, err := h.exportService.ExportProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "productos_" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, xlsxContentType, data)
}

// Sales exports completed sales in a date window as xlsx
func (h *ExportHandler) Sales(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.DefaultQuery("start_date", time.Now().Format("2006-01-02")))
	if err != nil {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}

	end := start.Add(24 * time.Hour)
	if endStr := c.Query("end_date"); endStr != "" {
		endDay, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		end = endDay.Add(24 * time.Hour)
	}

	data, err := h.exportService.ExportSales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "ventas_" + start.Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, xlsxContentType, data)
}
