package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.AdvertisementRepository = (*AdvertisementRepo)(nil)

// AdvertisementRepo implementación del puerto AdvertisementRepository sobre PostgreSQL.
type AdvertisementRepo struct {
	q Querier
}

// NewAdvertisementRepository construye el adaptador.
func NewAdvertisementRepository(q Querier) *AdvertisementRepo {
	return &AdvertisementRepo{q: q}
}

const advertisementColumns = `id, title, description, status, creator_id, created_at, updated_at`

// Create persiste un anuncio. Creador inexistente -> ErrInvalidReference.
func (r *AdvertisementRepo) Create(ctx context.Context, ad *entity.Advertisement) error {
	query := `INSERT INTO advertisements (` + advertisementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		ad.ID, ad.Title, ad.Description, ad.Status, ad.CreatorID, ad.CreatedAt, ad.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return translateWriteErr(err)
		}
		return fmt.Errorf("insert advertisement: %w", err)
	}
	return nil
}

// GetByID obtiene un anuncio por ID.
func (r *AdvertisementRepo) GetByID(ctx context.Context, id string) (*entity.Advertisement, error) {
	query := `SELECT ` + advertisementColumns + ` FROM advertisements WHERE id = $1`
	ad, err := scanAdvertisement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get advertisement: %w", err)
	}
	return ad, nil
}

// Update actualiza título, descripción y estado.
func (r *AdvertisementRepo) Update(ctx context.Context, ad *entity.Advertisement) error {
	_, err := r.q.Exec(ctx,
		`UPDATE advertisements SET title = $2, description = $3, status = $4, updated_at = $5 WHERE id = $1`,
		ad.ID, ad.Title, ad.Description, ad.Status, ad.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update advertisement: %w", err)
	}
	return nil
}

// Delete elimina un anuncio por ID.
func (r *AdvertisementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete advertisement: %w", err)
	}
	return nil
}

// List arma el WHERE según los filtros presentes.
func (r *AdvertisementRepo) List(ctx context.Context, filter repository.AdvertisementFilter, limit, offset int) ([]*entity.Advertisement, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.CreatedFrom != nil {
		add("created_at >= $%d", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		add("created_at < $%d", *filter.CreatedTo)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if len(filter.CreatorIDs) > 0 {
		add("creator_id = ANY($%d)", filter.CreatorIDs)
	}

	query := `SELECT ` + advertisementColumns + ` FROM advertisements`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list advertisements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Advertisement
	for rows.Next() {
		ad, err := scanAdvertisement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan advertisement: %w", err)
		}
		list = append(list, ad)
	}
	return list, rows.Err()
}

// CountOpenByCreator cuenta los anuncios OPEN del creador.
func (r *AdvertisementRepo) CountOpenByCreator(ctx context.Context, creatorID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM advertisements WHERE creator_id = $1 AND status = $2`,
		creatorID, entity.AdvertisementStatusOpen,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open advertisements: %w", err)
	}
	return n, nil
}

func scanAdvertisement(row pgx.Row) (*entity.Advertisement, error) {
	var ad entity.Advertisement
	if err := row.Scan(&ad.ID, &ad.Title, &ad.Description, &ad.Status, &ad.CreatorID, &ad.CreatedAt, &ad.UpdatedAt); err != nil {
		return nil, err
	}
	return &ad, nil
}
