package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste un stock. Dirección repetida -> ErrDuplicate.
func (r *StockRepo) Create(ctx context.Context, stock *entity.Stock) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stocks (id, address, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		stock.ID, stock.Address, stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return translateWriteErr(err)
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene un stock por ID.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx,
		`SELECT id, address, created_at, updated_at FROM stocks WHERE id = $1`, id,
	).Scan(&s.ID, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Update actualiza la dirección.
func (r *StockRepo) Update(ctx context.Context, stock *entity.Stock) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stocks SET address = $2, updated_at = $3 WHERE id = $1`,
		stock.ID, stock.Address, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return translateWriteErr(err)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List lista stocks en orden de creación. ProductID limita a los que tienen ese producto;
// Search busca en la dirección y en título/descripción de sus productos.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT s.id, s.address, s.created_at, s.updated_at
		FROM stocks s
		WHERE ($1 = '' OR EXISTS (
				SELECT 1 FROM stock_positions sp WHERE sp.stock_id = s.id AND sp.product_id = $1))
		  AND ($2 = '' OR s.address ILIKE $3 OR EXISTS (
				SELECT 1 FROM stock_positions sp
				JOIN products p ON p.id = sp.product_id
				WHERE sp.stock_id = s.id AND (p.title ILIKE $3 OR p.description ILIKE $3)))
		ORDER BY s.created_at, s.id LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, filter.ProductID, filter.Search, likePattern(filter.Search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un stock; sus posiciones caen por ON DELETE CASCADE.
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
