package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// AdvertisementFilter filtros del listado de anuncios. Campos vacíos no filtran.
// CreatedFrom es inclusivo y CreatedTo exclusivo.
type AdvertisementFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Status      string
	CreatorIDs  []string
}

// AdvertisementRepository define el puerto de persistencia para Advertisement (DIP).
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *entity.Advertisement) error
	GetByID(ctx context.Context, id string) (*entity.Advertisement, error)
	Update(ctx context.Context, ad *entity.Advertisement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AdvertisementFilter, limit, offset int) ([]*entity.Advertisement, error)
	CountOpenByCreator(ctx context.Context, creatorID string) (int, error)
}
