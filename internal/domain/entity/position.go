package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPositionQuantity cantidad asignada a una posición nueva cuando la petición no la trae.
const DefaultPositionQuantity int64 = 1

// PositionPriceScale decimales admitidos en el precio (columna NUMERIC(18, 2)).
const PositionPriceScale = 2

// Position cantidad y precio de un producto en un stock.
// La clave natural es (StockID, ProductID): a lo sumo una fila por par.
type Position struct {
	ID        string
	StockID   string
	ProductID string
	Quantity  int64           // no negativa
	Price     decimal.Decimal // no negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal cantidad * precio.
func (p *Position) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}
