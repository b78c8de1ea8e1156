package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.AdvertisementRepository = (*AdvertisementRepo)(nil)

// AdvertisementRepo implementación en memoria de AdvertisementRepository.
type AdvertisementRepo struct {
	s *Store
}

// NewAdvertisementRepository construye el repositorio de anuncios sobre el store.
func NewAdvertisementRepository(s *Store) *AdvertisementRepo {
	return &AdvertisementRepo{s: s}
}

func (r *AdvertisementRepo) Create(_ context.Context, ad *entity.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if _, ok := d.users[ad.CreatorID]; !ok {
		return domain.ErrInvalidReference
	}
	d.advertisements[ad.ID] = *ad
	d.track(ad.ID)
	return nil
}

func (r *AdvertisementRepo) GetByID(_ context.Context, id string) (*entity.Advertisement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ad, ok := r.s.d.advertisements[id]
	if !ok {
		return nil, nil
	}
	return &ad, nil
}

func (r *AdvertisementRepo) Update(_ context.Context, ad *entity.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.advertisements[ad.ID]; !ok {
		return nil
	}
	r.s.d.advertisements[ad.ID] = *ad
	return nil
}

func (r *AdvertisementRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.advertisements, id)
	delete(r.s.d.order, id)
	return nil
}

func (r *AdvertisementRepo) List(_ context.Context, filter repository.AdvertisementFilter, limit, offset int) ([]*entity.Advertisement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.d
	ids := make([]string, 0, len(d.advertisements))
	for id, ad := range d.advertisements {
		if filter.CreatedFrom != nil && ad.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !ad.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		if filter.Status != "" && ad.Status != filter.Status {
			continue
		}
		if len(filter.CreatorIDs) > 0 && !slices.Contains(filter.CreatorIDs, ad.CreatorID) {
			continue
		}
		ids = append(ids, id)
	}
	d.sortByInsertion(ids)
	list := make([]*entity.Advertisement, 0, len(ids))
	for _, id := range page(ids, limit, offset) {
		ad := d.advertisements[id]
		list = append(list, &ad)
	}
	return list, nil
}

func (r *AdvertisementRepo) CountOpenByCreator(_ context.Context, creatorID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, ad := range r.s.d.advertisements {
		if ad.CreatorID == creatorID && ad.Status == entity.AdvertisementStatusOpen {
			n++
		}
	}
	return n, nil
}
