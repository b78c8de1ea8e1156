package repository

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// PositionRepository puerto de persistencia de posiciones (stock, producto).
// Es la única capacidad que necesita el reconciliador: insertar, leer por clave,
// actualizar y listar por stock.
type PositionRepository interface {
	// Insert crea la fila. Devuelve domain.ErrDuplicate si ya existe el par (stock, producto)
	// y domain.ErrInvalidReference si el stock o el producto no existen.
	Insert(ctx context.Context, position *entity.Position) error
	// GetByKey devuelve (nil, nil) si no existe fila para el par.
	GetByKey(ctx context.Context, stockID, productID string) (*entity.Position, error)
	// Update persiste cantidad y precio de una fila existente.
	Update(ctx context.Context, position *entity.Position) error
	ListByStock(ctx context.Context, stockID string) ([]*entity.Position, error)
}
