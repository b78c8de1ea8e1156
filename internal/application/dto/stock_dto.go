package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/pkg/optional"
)

// PositionRequest posición pedida para un stock. quantity y price son opcionales:
// omitidos (o null) conservan el valor guardado al actualizar.
type PositionRequest struct {
	ProductID string                          `json:"product"`
	Quantity  optional.Value[int64]           `json:"quantity" swaggertype:"integer"`
	Price     optional.Value[decimal.Decimal] `json:"price" swaggertype:"string"`
}

// CreateStockRequest entrada para crear un stock con sus posiciones iniciales.
type CreateStockRequest struct {
	Address   string            `json:"address"`
	Positions []PositionRequest `json:"positions"`
}

// UpdateStockRequest entrada de PUT/PATCH. En PUT address y positions son obligatorios;
// en PATCH positions ausente no reconcilia nada.
type UpdateStockRequest struct {
	Address   optional.Value[string]            `json:"address" swaggertype:"string"`
	Positions optional.Value[[]PositionRequest] `json:"positions" swaggertype:"array,object"`
}

// PositionResponse salida de una posición.
type PositionResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PositionChangeResponse fila tocada por una creación o actualización del stock.
type PositionChangeResponse struct {
	ProductID string `json:"product"`
	Action    string `json:"action"` // inserted | updated
}

// StockResponse salida de un stock con sus posiciones.
type StockResponse struct {
	ID        string                   `json:"id"`
	Address   string                   `json:"address"`
	Positions []PositionResponse       `json:"positions"`
	Changes   []PositionChangeResponse `json:"changes,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// StockListResponse lista paginada de stocks.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
