// Package pdf renders a paginated sale document layout to PDF. The layout is
// a pure description built by the receipt service; this package only maps it
// onto maroto components, so the same layout always produces the same pages.
package pdf

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// HeaderBlock is the store/document header printed at the top of page one.
type HeaderBlock struct {
	StoreName string
	Address   string
	Phone     string
	TaxID     string
	Title     string
	Number    string
	Date      string
}

// InfoPair is one label/value entry of the two-column info section.
type InfoPair struct {
	Label string
	Value string
}

// TableRow is one itemized line. Shaded rows get the alternating background.
type TableRow struct {
	Cells  []string
	Shaded bool
}

// TotalLine is one entry of the totals block.
type TotalLine struct {
	Label string
	Value string
	Bold  bool
}

// Page holds the item rows assigned to one physical page. Assignment is done
// by the layout builder, never here, so a row can never be split or moved.
type Page struct {
	Rows []TableRow
}

// Layout is the full paginated document descriptor.
type Layout struct {
	Header  HeaderBlock
	Info    []InfoPair
	Columns []string
	Pages   []Page
	Totals  []TotalLine
	Footer  string
}

// Column width ratios for the item table (name, kind, qty, unit price, total).
var tableWidths = []int{5, 2, 1, 2, 2}

var shadedBg = props.Color{Red: 238, Green: 238, Blue: 238}

// Render produces the PDF bytes for a layout.
func Render(l *Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	for i, p := range l.Pages {
		rows := make([]core.Row, 0, len(p.Rows)+16)
		if i == 0 {
			rows = append(rows, headerRows(&l.Header)...)
			rows = append(rows, infoRows(l.Info)...)
		} else {
			rows = append(rows, row.New(8).Add(
				text.NewCol(12, l.Header.Number+" (cont.)", props.Text{Size: 9, Align: align.Right}),
			))
		}

		rows = append(rows, columnHeaderRow(l.Columns))
		for _, tr := range p.Rows {
			rows = append(rows, tableRow(tr))
		}

		if i == len(l.Pages)-1 {
			rows = append(rows, totalsRows(l.Totals)...)
			if l.Footer != "" {
				rows = append(rows,
					row.New(6),
					row.New(6).Add(text.NewCol(12, l.Footer, props.Text{Size: 9, Align: align.Center, Style: fontstyle.Italic})),
				)
			}
		}

		m.AddPages(page.New().Add(rows...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func headerRows(h *HeaderBlock) []core.Row {
	rows := []core.Row{
		row.New(10).Add(text.NewCol(12, h.StoreName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center})),
	}
	if h.Address != "" {
		rows = append(rows, row.New(5).Add(text.NewCol(12, h.Address, props.Text{Size: 9, Align: align.Center})))
	}
	if h.Phone != "" {
		rows = append(rows, row.New(5).Add(text.NewCol(12, h.Phone, props.Text{Size: 9, Align: align.Center})))
	}
	if h.TaxID != "" {
		rows = append(rows, row.New(5).Add(text.NewCol(12, "NIT "+h.TaxID, props.Text{Size: 9, Align: align.Center})))
	}
	rows = append(rows,
		row.New(4),
		row.New(8).Add(
			text.NewCol(6, h.Title, props.Text{Size: 12, Style: fontstyle.Bold}),
			text.NewCol(6, h.Number+"  "+h.Date, props.Text{Size: 10, Align: align.Right}),
		),
	)
	return rows
}

func infoRows(info []InfoPair) []core.Row {
	// Two label/value pairs per row.
	rows := make([]core.Row, 0, (len(info)+1)/2+1)
	for i := 0; i < len(info); i += 2 {
		cols := []core.Col{
			text.NewCol(2, info[i].Label, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(4, info[i].Value, props.Text{Size: 9}),
		}
		if i+1 < len(info) {
			cols = append(cols,
				text.NewCol(2, info[i+1].Label, props.Text{Size: 9, Style: fontstyle.Bold}),
				text.NewCol(4, info[i+1].Value, props.Text{Size: 9}),
			)
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	rows = append(rows, row.New(4))
	return rows
}

func columnHeaderRow(columns []string) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		a := align.Left
		if i >= 2 {
			a = align.Right
		}
		cols = append(cols, text.NewCol(tableWidths[i], c, props.Text{Size: 9, Style: fontstyle.Bold, Align: a}))
	}
	r := row.New(7).Add(cols...)
	r.WithStyle(&props.Cell{BorderType: border.Bottom, BorderThickness: 0.3})
	return r
}

func tableRow(tr TableRow) core.Row {
	cols := make([]core.Col, 0, len(tr.Cells))
	for i, c := range tr.Cells {
		a := align.Left
		if i >= 2 {
			a = align.Right
		}
		cols = append(cols, text.NewCol(tableWidths[i], c, props.Text{Size: 9, Align: a}))
	}
	r := row.New(6).Add(cols...)
	if tr.Shaded {
		bg := shadedBg
		r.WithStyle(&props.Cell{BackgroundColor: &bg})
	}
	return r
}

func totalsRows(totals []TotalLine) []core.Row {
	rows := []core.Row{row.New(4)}
	for _, t := range totals {
		style := props.Text{Size: 10, Align: align.Right}
		if t.Bold {
			style.Style = fontstyle.Bold
			style.Size = 11
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			text.NewCol(3, t.Label, style),
			text.NewCol(3, t.Value, style),
		))
	}
	return rows
}
