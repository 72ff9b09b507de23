package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/domain/enum"
	"github.com/mitienda/pos-api/pkg/printer"
)

func testSale() *entity.Sale {
	subtotal := decimal.NewFromInt(12*1500 + 12500)
	return &entity.Sale{
		ID:              uuid.New(),
		InvoiceNo:       "POS-AB12CD34",
		Status:          enum.SaleStatusCompleted,
		Subtotal:        subtotal,
		DiscountPercent: decimal.NewFromInt(10),
		Tax:             decimal.NewFromInt(500),
		Total:           entity.ComputeTotal(subtotal, decimal.NewFromInt(10), decimal.NewFromInt(500)),
		PaymentMethod:   "efectivo",
		CreatedAt:       time.Date(2026, 8, 27, 14, 5, 0, 0, time.UTC),
		User:            entity.User{Name: "Ana"},
		Items: []entity.SaleItem{
			{
				ProductName: "Gaseosa 350ml",
				Kind:        enum.SaleUnitUnit,
				Quantity:    12,
				UnitPrice:   decimal.NewFromInt(1500),
				LineTotal:   decimal.NewFromInt(18000),
			},
			{
				ProductName: "Gaseosa 350ml",
				Kind:        enum.SaleUnitBox,
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(12500),
				LineTotal:   decimal.NewFromInt(12500),
			},
		},
	}
}

func newReceiptService(width int) *ReceiptService {
	header := entity.ReceiptHeader{
		StoreName: "Mi Tienda",
		Address:   "Calle 10 # 5-23",
		Phone:     "310 555 1234",
		TaxID:     "900123456-7",
	}
	return NewReceiptService(header, printer.NewNullPrinter(), width)
}

func TestReceiptRenderIsDeterministic(t *testing.T) {
	svc := newReceiptService(printer.Width58mm)
	sale := testSale()

	first := svc.RenderText(svc.Build(sale))
	second := svc.RenderText(svc.Build(sale))

	assert.Equal(t, first, second)
}

func TestReceiptLinesFitWidth(t *testing.T) {
	svc := newReceiptService(printer.Width58mm)
	sale := testSale()
	sale.Items[0].ProductName = "Producto con un nombre demasiado largo para el papel"

	out := svc.RenderText(svc.Build(sale))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), printer.Width58mm, "line too wide: %q", line)
	}
}

func TestReceiptContent(t *testing.T) {
	svc := newReceiptService(printer.Width58mm)
	out := svc.RenderText(svc.Build(testSale()))

	assert.Contains(t, out, "MI TIENDA")
	assert.Contains(t, out, "NIT 900123456-7")
	assert.Contains(t, out, "Factura: POS-AB12CD34")
	assert.Contains(t, out, "Fecha: 27/08/2026 14:05")
	assert.Contains(t, out, "Cajero: Ana")
	assert.Contains(t, out, "12 und x $ 1.500")
	assert.Contains(t, out, "1 caja x $ 12.500")
	assert.Contains(t, out, "$ 18.000")
	assert.Contains(t, out, "Descuento 10%")
	assert.Contains(t, out, "Gracias por su compra")
}

func TestReceiptWidePaper(t *testing.T) {
	svc := newReceiptService(printer.Width80mm)
	out := svc.RenderText(svc.Build(testSale()))

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), printer.Width80mm)
	}
	// Separators expand to the full 48 columns.
	assert.Contains(t, out, strings.Repeat("-", printer.Width80mm))
}

func TestReceiptOmitsEmptyOptionalLines(t *testing.T) {
	svc := newReceiptService(printer.Width58mm)
	sale := testSale()
	sale.User.Name = ""
	sale.DiscountPercent = decimal.Zero
	sale.Tax = decimal.Zero

	out := svc.RenderText(svc.Build(sale))
	assert.NotContains(t, out, "Cajero:")
	assert.NotContains(t, out, "Descuento")
	assert.NotContains(t, out, "Impuesto")
}

func TestReceiptPDFPagination(t *testing.T) {
	svc := newReceiptService(printer.Width58mm)
	sale := testSale()

	// 50 items: 20 on the first page, 34-row pages after.
	sale.Items = nil
	for i := 0; i < 50; i++ {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductName: "Item",
			Kind:        enum.SaleUnitUnit,
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(100),
			LineTotal:   decimal.NewFromInt(100),
		})
	}

	layout := svc.buildLayout(svc.Build(sale))
	require.Len(t, layout.Pages, 2)
	assert.Len(t, layout.Pages[0].Rows, pdfRowsFirstPage)
	assert.Len(t, layout.Pages[1].Rows, 30)

	// Alternating shading by original item index.
	assert.False(t, layout.Pages[0].Rows[0].Shaded)
	assert.True(t, layout.Pages[0].Rows[1].Shaded)
}

func TestReceiptPDFRenders(t *testing.T) {
	svc := newReceiptService(printer.Width58mm)
	data, err := svc.RenderPDF(svc.Build(testSale()))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
