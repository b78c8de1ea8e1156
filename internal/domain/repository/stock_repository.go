package repository

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// StockFilter criterios de búsqueda de stocks.
// ProductID limita a los stocks con una posición de ese producto; Search compara contra la
// dirección y contra título/descripción de los productos que tiene el stock.
type StockFilter struct {
	ProductID string
	Search    string
}

// StockRepository define el puerto de persistencia para Stock (DIP).
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByID(ctx context.Context, id string) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context, filter StockFilter, limit, offset int) ([]*entity.Stock, error)
	// Delete elimina el stock y, en cascada, sus posiciones.
	Delete(ctx context.Context, id string) error
}
