package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación del puerto PositionRepository sobre la tabla stock_positions.
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

const positionColumns = `id, stock_id, product_id, quantity, price, created_at, updated_at`

// Insert crea la fila. Par repetido -> ErrDuplicate; stock o producto inexistente -> ErrInvalidReference.
func (r *PositionRepo) Insert(ctx context.Context, p *entity.Position) error {
	query := `INSERT INTO stock_positions (` + positionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.StockID, p.ProductID, p.Quantity, p.Price, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) || isForeignKeyViolation(err) {
			return translateWriteErr(err)
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// GetByKey bloquea la fila (SELECT ... FOR UPDATE) cuando corre dentro de una transacción.
func (r *PositionRepo) GetByKey(ctx context.Context, stockID, productID string) (*entity.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM stock_positions
		WHERE stock_id = $1 AND product_id = $2 FOR UPDATE`
	p, err := scanPosition(r.q.QueryRow(ctx, query, stockID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return p, nil
}

// Update persiste cantidad y precio de la fila (stock, producto).
func (r *PositionRepo) Update(ctx context.Context, p *entity.Position) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_positions SET quantity = $3, price = $4, updated_at = $5
		 WHERE stock_id = $1 AND product_id = $2`,
		p.StockID, p.ProductID, p.Quantity, p.Price, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

// ListByStock lista las posiciones de un stock en orden de inserción.
func (r *PositionRepo) ListByStock(ctx context.Context, stockID string) ([]*entity.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM stock_positions WHERE stock_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, stockID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPosition(row pgx.Row) (*entity.Position, error) {
	var p entity.Position
	if err := row.Scan(&p.ID, &p.StockID, &p.ProductID, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
