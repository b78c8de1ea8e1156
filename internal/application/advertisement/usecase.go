package advertisement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// DefaultMaxOpen límite de anuncios abiertos por usuario cuando la configuración no lo define.
const DefaultMaxOpen = 10

const dateLayout = "2006-01-02"

// UseCase casos de uso de anuncios. Lectura pública; escritura solo del creador.
type UseCase struct {
	ads     repository.AdvertisementRepository
	users   repository.UserRepository
	maxOpen int
}

// NewUseCase construye el caso de uso. maxOpen <= 0 usa DefaultMaxOpen.
func NewUseCase(ads repository.AdvertisementRepository, users repository.UserRepository, maxOpen int) *UseCase {
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpen
	}
	return &UseCase{ads: ads, users: users, maxOpen: maxOpen}
}

// Create publica un anuncio a nombre de userID.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateAdvertisementRequest) (*dto.AdvertisementResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title requerido", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.AdvertisementStatusOpen
	}
	if !entity.ValidAdvertisementStatus(status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	if status == entity.AdvertisementStatusOpen {
		if err := uc.checkOpenLimit(ctx, userID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	ad := &entity.Advertisement{
		ID:          uuid.New().String(),
		Title:       title,
		Description: in.Description,
		Status:      status,
		CreatorID:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ads.Create(ctx, ad); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, ad, nil)
}

// GetByID obtiene un anuncio. (nil, nil) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.AdvertisementResponse, error) {
	ad, err := uc.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, ad, nil)
}

// List aplica los filtros de fecha (día inclusivo), estado y creadores.
func (uc *UseCase) List(ctx context.Context, q dto.AdvertisementQuery, limit, offset int) (*dto.AdvertisementListResponse, error) {
	filter, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.ads.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	users := make(map[string]*entity.User)
	items := make([]dto.AdvertisementResponse, 0, len(list))
	for _, ad := range list {
		out, err := uc.toResponse(ctx, ad, users)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}
	return &dto.AdvertisementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica los cambios si userID es el creador. Con partial=false (PUT) title es obligatorio.
// Reabrir un anuncio cuenta contra el límite de abiertos.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateAdvertisementRequest, partial bool) (*dto.AdvertisementResponse, error) {
	ad, err := uc.ownedAdvertisement(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !partial && in.Title == nil {
		return nil, fmt.Errorf("%w: title requerido", domain.ErrInvalidInput)
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title vacío", domain.ErrInvalidInput)
		}
		ad.Title = title
	}
	if in.Description != nil {
		ad.Description = *in.Description
	}
	if in.Status != nil {
		if !entity.ValidAdvertisementStatus(*in.Status) {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		if *in.Status == entity.AdvertisementStatusOpen && ad.Status != entity.AdvertisementStatusOpen {
			if err := uc.checkOpenLimit(ctx, userID); err != nil {
				return nil, err
			}
		}
		ad.Status = *in.Status
	}
	ad.UpdatedAt = time.Now()
	if err := uc.ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, ad, nil)
}

// Delete elimina el anuncio si userID es el creador.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.ownedAdvertisement(ctx, userID, id); err != nil {
		return err
	}
	return uc.ads.Delete(ctx, id)
}

func (uc *UseCase) ownedAdvertisement(ctx context.Context, userID, id string) (*entity.Advertisement, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	ad, err := uc.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.ErrNotFound
	}
	if !ad.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return ad, nil
}

func (uc *UseCase) checkOpenLimit(ctx context.Context, userID string) error {
	n, err := uc.ads.CountOpenByCreator(ctx, userID)
	if err != nil {
		return err
	}
	if n >= uc.maxOpen {
		return fmt.Errorf("%w: máximo %d", domain.ErrOpenLimitExceeded, uc.maxOpen)
	}
	return nil
}

// toResponse resuelve el creador; users sirve de caché dentro de un listado (puede ser nil).
func (uc *UseCase) toResponse(ctx context.Context, ad *entity.Advertisement, users map[string]*entity.User) (*dto.AdvertisementResponse, error) {
	creator, ok := users[ad.CreatorID]
	if !ok {
		var err error
		creator, err = uc.users.GetByID(ctx, ad.CreatorID)
		if err != nil {
			return nil, err
		}
		if users != nil {
			users[ad.CreatorID] = creator
		}
	}
	out := &dto.AdvertisementResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Status:      ad.Status,
		Creator:     dto.UserResponse{ID: ad.CreatorID},
		CreatedAt:   ad.CreatedAt,
		UpdatedAt:   ad.UpdatedAt,
	}
	if creator != nil {
		out.Creator = *auth.ToUserResponse(creator)
	}
	return out, nil
}

// ParseFilter traduce la query HTTP al filtro del repositorio.
// created_at_before incluye el día completo: el límite superior es el día siguiente (exclusivo).
func ParseFilter(q dto.AdvertisementQuery) (repository.AdvertisementFilter, error) {
	var f repository.AdvertisementFilter
	if q.CreatedAfter != "" {
		from, err := time.ParseInLocation(dateLayout, q.CreatedAfter, time.UTC)
		if err != nil {
			return f, fmt.Errorf("%w: created_at_after debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.CreatedFrom = &from
	}
	if q.CreatedBefore != "" {
		to, err := time.ParseInLocation(dateLayout, q.CreatedBefore, time.UTC)
		if err != nil {
			return f, fmt.Errorf("%w: created_at_before debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		to = to.AddDate(0, 0, 1)
		f.CreatedTo = &to
	}
	if q.Status != "" {
		status := strings.ToUpper(q.Status)
		if !entity.ValidAdvertisementStatus(status) {
			return f, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, q.Status)
		}
		f.Status = status
	}
	for _, id := range strings.Split(q.Creator, ",") {
		if id = strings.TrimSpace(id); id != "" {
			f.CreatorIDs = append(f.CreatorIDs, id)
		}
	}
	return f, nil
}
