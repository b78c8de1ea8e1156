package logistic

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la escritura del stock y la reconciliación de sus posiciones sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		positionRepo repository.PositionRepository,
	) error) error
}

// ReportLine una posición del stock enriquecida con el nombre del producto.
type ReportLine struct {
	ProductID    string
	ProductTitle string
	Quantity     int64
	Price        decimal.Decimal
	Subtotal     decimal.Decimal
}

// StockReport datos de entrada para los renderizadores de reportes.
type StockReport struct {
	Stock       *entity.Stock
	Lines       []ReportLine
	Total       decimal.Decimal
	GeneratedAt time.Time
}

// ReportRenderer convierte un StockReport en un documento (PDF, XLSX, ...).
type ReportRenderer interface {
	Render(ctx context.Context, report *StockReport) ([]byte, error)
	ContentType() string
	Extension() string
}
