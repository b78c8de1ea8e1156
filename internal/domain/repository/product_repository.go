package repository

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// ProductFilter criterios de búsqueda de productos.
// Search compara sin distinguir mayúsculas contra título y descripción.
type ProductFilter struct {
	Search string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
