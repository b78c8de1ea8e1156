package logistic

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ReportUseCase arma el reporte de posiciones de un stock y lo delega al renderizador del formato pedido.
type ReportUseCase struct {
	stocks    repository.StockRepository
	positions repository.PositionRepository
	products  repository.ProductRepository
	renderers map[string]ReportRenderer
}

// NewReportUseCase construye el caso de uso. renderers se indexa por formato ("pdf", "xlsx").
func NewReportUseCase(
	stocks repository.StockRepository,
	positions repository.PositionRepository,
	products repository.ProductRepository,
	renderers map[string]ReportRenderer,
) *ReportUseCase {
	return &ReportUseCase{
		stocks:    stocks,
		positions: positions,
		products:  products,
		renderers: renderers,
	}
}

// Generate devuelve el documento, su content-type y un nombre de archivo.
//
// Retorna:
//   - domain.ErrInvalidInput si el formato no está soportado.
//   - domain.ErrNotFound     si el stock no existe.
func (uc *ReportUseCase) Generate(ctx context.Context, stockID, format string) (doc []byte, contentType, filename string, err error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	report, err := uc.Build(ctx, stockID)
	if err != nil {
		return nil, "", "", err
	}
	doc, err = renderer.Render(ctx, report)
	if err != nil {
		return nil, "", "", fmt.Errorf("reporte: render %s: %w", format, err)
	}
	filename = fmt.Sprintf("stock_%s.%s", report.Stock.ID, renderer.Extension())
	return doc, renderer.ContentType(), filename, nil
}

// Build carga el stock, sus posiciones y los títulos de producto, y calcula subtotales.
func (uc *ReportUseCase) Build(ctx context.Context, stockID string) (*StockReport, error) {
	stock, err := uc.stocks.GetByID(ctx, stockID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener stock: %w", err)
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.positions.ListByStock(ctx, stockID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener posiciones: %w", err)
	}

	report := &StockReport{
		Stock:       stock,
		Lines:       make([]ReportLine, 0, len(rows)),
		Total:       decimal.Zero,
		GeneratedAt: time.Now(),
	}
	for _, p := range rows {
		title := "Producto " + p.ProductID // fallback
		if product, pErr := uc.products.GetByID(ctx, p.ProductID); pErr == nil && product != nil {
			title = product.Title
		}
		subtotal := p.Subtotal()
		report.Lines = append(report.Lines, ReportLine{
			ProductID:    p.ProductID,
			ProductTitle: title,
			Quantity:     p.Quantity,
			Price:        p.Price,
			Subtotal:     subtotal,
		})
		report.Total = report.Total.Add(subtotal)
	}
	return report, nil
}
