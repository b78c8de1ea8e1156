// Package pdf renderiza el reporte de posiciones de un stock con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Dirección del stock  │  Id + Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cantidad | Precio | Subtotal             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Posiciones / Unidades / VALOR TOTAL               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/application/logistic"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

var _ logistic.ReportRenderer = (*StockReportRenderer)(nil)

// StockReportRenderer implementa logistic.ReportRenderer en formato PDF.
type StockReportRenderer struct{}

// NewStockReportRenderer construye el renderizador.
func NewStockReportRenderer() *StockReportRenderer { return &StockReportRenderer{} }

func (StockReportRenderer) ContentType() string { return "application/pdf" }
func (StockReportRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *StockReportRenderer) Render(_ context.Context, report *logistic.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock "+report.Stock.Address, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("El stock no tiene posiciones.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	m.AddRows(tableDetailRows(report.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *logistic.StockReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.Stock.Address, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de posiciones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("STOCK", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.Stock.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 6, align.Left),
		h("Cantidad", 2, align.Center),
		h("Precio", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableDetailRows una fila por posición, con fondo alterno.
func tableDetailRows(lines []logistic.ReportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		r := row.New(7).Add(
			col.New(6).Add(text.New(l.ProductTitle, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func totalsRow(report *logistic.StockReport) core.Row {
	var units int64
	for _, l := range report.Lines {
		units += l.Quantity
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Posiciones:"),
			label("Unidades:"),
			text.New("VALOR TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10,
			}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(report.Lines))),
			text.New(fmt.Sprintf("%d", units), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New("$"+formatMoney(report.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
