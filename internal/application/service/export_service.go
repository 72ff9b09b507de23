package service

import (
	"bytes"
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/pkg/money"
	"github.com/mitienda/pos-api/pkg/pagination"
)

// ExportService produces xlsx exports of the catalog and the sales history
// for the store's bookkeeping.
type ExportService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewExportService creates a new export service
func NewExportService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *ExportService {
	return &ExportService{productRepo: productRepo, saleRepo: saleRepo}
}

// ExportProducts writes the full catalog (active and inactive) as xlsx.
func (s *ExportService) ExportProducts(ctx context.Context) ([]byte, error) {
	products, _, err := s.productRepo.List(ctx, &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10000},
		Inactive:   true,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Codigo", "Nombre", "Modo de venta", "Cajas", "Sueltas",
		"Und/caja", "Total und", "Costo und", "Precio und", "Margen und",
		"Costo caja", "Precio caja", "Margen caja", "Alerta", "Activo",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for i := range products {
		p := &products[i]
		active := "si"
		if !p.Active {
			active = "no"
		}
		excelRow := []interface{}{
			p.Code,
			p.Name,
			string(p.SaleMode),
			p.Stock.Boxes,
			p.Stock.LooseUnits,
			p.Stock.UnitsPerBox,
			p.Stock.TotalUnits(),
			money.FormatPlain(p.UnitCost),
			money.FormatPlain(p.UnitPrice),
			money.Percent(p.UnitMargin),
			money.FormatPlain(p.BoxCost),
			money.FormatPlain(p.BoxPrice),
			money.Percent(p.BoxMargin),
			p.StockAlert,
			active,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSales writes one row per sale item for completed sales in the window.
func (s *ExportService) ExportSales(ctx context.Context, start, end time.Time) ([]byte, error) {
	sales, err := s.saleRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Factura", "Fecha", "Producto", "Codigo", "Unidad",
		"Cantidad", "Precio", "Total linea", "Descuento", "Impuesto", "Total venta",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for i := range sales {
		sale := &sales[i]
		for j := range sale.Items {
			item := &sale.Items[j]
			excelRow := []interface{}{
				sale.InvoiceNo,
				sale.CreatedAt.Format(dateLayout),
				item.ProductName,
				item.ProductCode,
				item.Kind.Abbrev(),
				item.Quantity,
				money.FormatPlain(item.UnitPrice),
				money.FormatPlain(item.LineTotal),
				money.Percent(sale.DiscountPercent),
				money.FormatPlain(sale.Tax),
				money.FormatPlain(sale.Total),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
