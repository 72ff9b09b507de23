package service

import (
	"strconv"
	"strings"

	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/pkg/money"
	"github.com/mitienda/pos-api/pkg/pdf"
	"github.com/mitienda/pos-api/pkg/printer"
)

const dateLayout = "02/01/2006 15:04"

// Item rows per PDF page. The first page carries the header and info blocks,
// later pages only a small continuation line.
const (
	pdfRowsFirstPage = 20
	pdfRowsContPage  = 34
)

// ReceiptService projects committed sales into printable receipts. The
// projection is pure: the same sale always renders the same bytes, whatever
// the output medium (fixed-width text, ESC/POS, PDF).
type ReceiptService struct {
	header  entity.ReceiptHeader
	printer printer.Printer
	width   int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(header entity.ReceiptHeader, p printer.Printer, width int) *ReceiptService {
	if width != printer.Width80mm {
		width = printer.Width58mm
	}
	return &ReceiptService{header: header, printer: p, width: width}
}

// Build projects a sale into a receipt value object.
func (s *ReceiptService) Build(sale *entity.Sale) *entity.Receipt {
	r := &entity.Receipt{
		Header:          s.header,
		InvoiceNo:       sale.InvoiceNo,
		Date:            sale.CreatedAt.Format(dateLayout),
		PaymentMethod:   sale.PaymentMethod,
		Subtotal:        sale.Subtotal,
		DiscountPercent: sale.DiscountPercent,
		Tax:             sale.Tax,
		Total:           sale.Total,
	}
	if sale.User.Name != "" {
		r.Cashier = sale.User.Name
	}
	if sale.Customer != nil {
		r.Customer = sale.Customer.Name
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Kind:      item.Kind.Abbrev(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal,
		})
	}
	return r
}

// RenderText renders the receipt as fixed-width plain text at the service's
// configured paper width. Lines never exceed the width; long product names
// are truncated, never wrapped.
func (s *ReceiptService) RenderText(r *entity.Receipt) string {
	return renderText(r, s.width)
}

func renderText(r *entity.Receipt, width int) string {
	sep := strings.Repeat("-", width)
	var b strings.Builder

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	writeLine(printer.Center(strings.ToUpper(r.Header.StoreName), width))
	if r.Header.Address != "" {
		writeLine(printer.Center(r.Header.Address, width))
	}
	if r.Header.Phone != "" {
		writeLine(printer.Center("Tel "+r.Header.Phone, width))
	}
	if r.Header.TaxID != "" {
		writeLine(printer.Center("NIT "+r.Header.TaxID, width))
	}
	writeLine(sep)

	writeLine(printer.Truncate("Factura: "+r.InvoiceNo, width))
	writeLine(printer.Truncate("Fecha: "+r.Date, width))
	if r.Cashier != "" {
		writeLine(printer.Truncate("Cajero: "+r.Cashier, width))
	}
	if r.Customer != "" {
		writeLine(printer.Truncate("Cliente: "+r.Customer, width))
	}
	writeLine(sep)

	for i := range r.Items {
		item := &r.Items[i]
		writeLine(printer.Truncate(item.Name, width))
		qty := strconv.Itoa(item.Quantity) + " " + item.Kind + " x " + money.Format(item.UnitPrice)
		writeLine(printer.PadBetween(" "+qty, money.Format(item.Total), width))
	}
	writeLine(sep)

	writeLine(printer.PadBetween("Subtotal", money.Format(r.Subtotal), width))
	if !r.DiscountPercent.IsZero() {
		discount := r.Subtotal.Mul(r.DiscountPercent).Div(oneHundred)
		writeLine(printer.PadBetween("Descuento "+money.Percent(r.DiscountPercent),
			"-"+money.Format(discount), width))
	}
	if !r.Tax.IsZero() {
		writeLine(printer.PadBetween("Impuesto", money.Format(r.Tax), width))
	}
	writeLine(printer.PadBetween("TOTAL", money.Format(r.Total), width))
	if r.PaymentMethod != "" {
		writeLine(printer.PadBetween("Pago", r.PaymentMethod, width))
	}
	writeLine(sep)
	writeLine(printer.Center("Gracias por su compra", width))

	return b.String()
}

// Print renders the receipt as ESC/POS and sends it to the printer.
func (s *ReceiptService) Print(r *entity.Receipt) error {
	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(strings.ToUpper(r.Header.StoreName)).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text("Tel " + r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.Text("NIT " + r.Header.TaxID)
	}
	doc.SetAlign(printer.AlignLeft).Separator('-')

	doc.Text("Factura: " + r.InvoiceNo)
	doc.Text("Fecha: " + r.Date)
	if r.Cashier != "" {
		doc.Text("Cajero: " + r.Cashier)
	}
	if r.Customer != "" {
		doc.Text("Cliente: " + r.Customer)
	}
	doc.Separator('-')

	for i := range r.Items {
		item := &r.Items[i]
		doc.Text(printer.Truncate(item.Name, s.width))
		qty := strconv.Itoa(item.Quantity) + " " + item.Kind + " x " + money.Format(item.UnitPrice)
		doc.KeyValue(" "+qty, money.Format(item.Total))
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal", money.Format(r.Subtotal))
	if !r.DiscountPercent.IsZero() {
		doc.KeyValue("Descuento", money.Percent(r.DiscountPercent))
	}
	if !r.Tax.IsZero() {
		doc.KeyValue("Impuesto", money.Format(r.Tax))
	}
	doc.SetBold(true).KeyValue("TOTAL", money.Format(r.Total)).SetBold(false)
	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		Text("Gracias por su compra").
		FeedLines(3).
		PartialCut()

	return s.printer.Print(doc.Bytes())
}

// RenderPDF renders the receipt as an A4 invoice PDF. Items paginate at fixed
// row counts and a row never splits across pages.
func (s *ReceiptService) RenderPDF(r *entity.Receipt) ([]byte, error) {
	layout := s.buildLayout(r)
	return pdf.Render(layout)
}

func (s *ReceiptService) buildLayout(r *entity.Receipt) *pdf.Layout {
	l := &pdf.Layout{
		Header: pdf.HeaderBlock{
			StoreName: r.Header.StoreName,
			Address:   r.Header.Address,
			Phone:     r.Header.Phone,
			TaxID:     r.Header.TaxID,
			Title:     "Factura de venta",
			Number:    r.InvoiceNo,
			Date:      r.Date,
		},
		Columns: []string{"Producto", "Unidad", "Cant.", "Precio", "Total"},
		Footer:  "Gracias por su compra",
	}

	if r.Cashier != "" {
		l.Info = append(l.Info, pdf.InfoPair{Label: "Cajero", Value: r.Cashier})
	}
	if r.Customer != "" {
		l.Info = append(l.Info, pdf.InfoPair{Label: "Cliente", Value: r.Customer})
	}
	if r.PaymentMethod != "" {
		l.Info = append(l.Info, pdf.InfoPair{Label: "Pago", Value: r.PaymentMethod})
	}

	rows := make([]pdf.TableRow, 0, len(r.Items))
	for i := range r.Items {
		item := &r.Items[i]
		rows = append(rows, pdf.TableRow{
			Cells: []string{
				item.Name,
				item.Kind,
				strconv.Itoa(item.Quantity),
				money.Format(item.UnitPrice),
				money.Format(item.Total),
			},
			Shaded: i%2 == 1,
		})
	}
	l.Pages = paginate(rows)

	l.Totals = append(l.Totals, pdf.TotalLine{Label: "Subtotal", Value: money.Format(r.Subtotal)})
	if !r.DiscountPercent.IsZero() {
		l.Totals = append(l.Totals, pdf.TotalLine{Label: "Descuento", Value: money.Percent(r.DiscountPercent)})
	}
	if !r.Tax.IsZero() {
		l.Totals = append(l.Totals, pdf.TotalLine{Label: "Impuesto", Value: money.Format(r.Tax)})
	}
	l.Totals = append(l.Totals, pdf.TotalLine{Label: "TOTAL", Value: money.Format(r.Total), Bold: true})

	return l
}

// paginate assigns whole rows to pages. The first page has less room because
// of the header; an empty receipt still gets one page.
func paginate(rows []pdf.TableRow) []pdf.Page {
	var pages []pdf.Page
	capacity := pdfRowsFirstPage
	for len(rows) > 0 {
		n := capacity
		if n > len(rows) {
			n = len(rows)
		}
		pages = append(pages, pdf.Page{Rows: rows[:n]})
		rows = rows[n:]
		capacity = pdfRowsContPage
	}
	if len(pages) == 0 {
		pages = append(pages, pdf.Page{})
	}
	return pages
}
