// Package xlsx renderiza el reporte de posiciones de un stock como hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Logistica-api/internal/application/logistic"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "Posiciones"

var _ logistic.ReportRenderer = (*StockReportRenderer)(nil)

// StockReportRenderer implementa logistic.ReportRenderer con excelize.
type StockReportRenderer struct {
	log zerolog.Logger
}

// NewStockReportRenderer construye el renderizador.
func NewStockReportRenderer(log zerolog.Logger) *StockReportRenderer {
	return &StockReportRenderer{log: log}
}

func (r *StockReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *StockReportRenderer) Extension() string { return "xlsx" }

// Render arma el libro: título en la fila 1, cabecera en la 3, una fila por posición y el total al final.
func (r *StockReportRenderer) Render(_ context.Context, report *logistic.StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.log.Error().Err(err).Msg("xlsx: cerrar libro")
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13, Color: "#00467F"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo título: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}

	if err := f.MergeCell(SheetName, "A1", "D1"); err != nil {
		return nil, err
	}
	_ = f.SetCellStr(SheetName, "A1", report.Stock.Address)
	_ = f.SetCellStyle(SheetName, "A1", "A1", titleStyle)
	_ = f.SetCellStr(SheetName, "E1", report.GeneratedAt.Format("2006-01-02 15:04"))

	for i, h := range []string{"Producto", "Cantidad", "Precio", "Subtotal"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellStr(SheetName, cell, h)
	}
	_ = f.SetCellStyle(SheetName, "A3", "D3", headerStyle)

	rowIdx := 4
	for _, l := range report.Lines {
		_ = f.SetCellStr(SheetName, fmt.Sprintf("A%d", rowIdx), l.ProductTitle)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("B%d", rowIdx), l.Quantity)
		_ = f.SetCellFloat(SheetName, fmt.Sprintf("C%d", rowIdx), l.Price.InexactFloat64(), 2, 64)
		_ = f.SetCellFloat(SheetName, fmt.Sprintf("D%d", rowIdx), l.Subtotal.InexactFloat64(), 2, 64)
		rowIdx++
	}

	_ = f.SetCellStr(SheetName, fmt.Sprintf("C%d", rowIdx), "Total")
	_ = f.SetCellFloat(SheetName, fmt.Sprintf("D%d", rowIdx), report.Total.InexactFloat64(), 2, 64)
	_ = f.SetCellStyle(SheetName, fmt.Sprintf("C%d", rowIdx), fmt.Sprintf("C%d", rowIdx), headerStyle)
	_ = f.SetCellStyle(SheetName, "C4", fmt.Sprintf("D%d", rowIdx), moneyStyle)
	_ = f.SetColWidth(SheetName, "A", "A", 40)
	_ = f.SetColWidth(SheetName, "B", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
