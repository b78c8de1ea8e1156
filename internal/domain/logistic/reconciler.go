// Package logistic contiene la lógica de dominio de stocks: la reconciliación de posiciones
// (producto, cantidad, precio) de un stock contra una lista solicitada.
package logistic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/pkg/optional"
)

// PositionInput posición solicitada para un stock. Quantity y Price ausentes conservan
// el valor guardado cuando la fila ya existe.
type PositionInput struct {
	ProductID string
	Quantity  optional.Value[int64]
	Price     optional.Value[decimal.Decimal]
}

// Acciones aplicadas sobre una posición.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
)

// Change una fila tocada por la reconciliación.
type Change struct {
	ProductID string
	Action    string
}

// Result cambios aplicados, en el orden de la petición.
type Result struct {
	Changes []Change
}

// Inserted cantidad de filas nuevas.
func (r Result) Inserted() int { return r.count(ActionInserted) }

// Updated cantidad de filas actualizadas.
func (r Result) Updated() int { return r.count(ActionUpdated) }

func (r Result) count(action string) int {
	n := 0
	for _, c := range r.Changes {
		if c.Action == action {
			n++
		}
	}
	return n
}

// Reconciler alinea las posiciones guardadas de un stock con una lista solicitada,
// sin borrar nunca las posiciones no mencionadas.
// Trabaja sobre el repositorio recibido; dentro de una transacción, pasar el repo atado a la tx.
type Reconciler struct {
	positions repository.PositionRepository
	now       func() time.Time
}

// NewReconciler construye el reconciliador sobre el puerto de posiciones.
func NewReconciler(positions repository.PositionRepository) *Reconciler {
	return &Reconciler{positions: positions, now: time.Now}
}

// Seed inserta todas las posiciones de un stock recién creado, sin consultar existencia.
func (r *Reconciler) Seed(ctx context.Context, stockID string, in []PositionInput) (Result, error) {
	var res Result
	now := r.now()
	for _, p := range in {
		pos, err := newPosition(stockID, p, now)
		if err != nil {
			return res, err
		}
		if err := r.positions.Insert(ctx, pos); err != nil {
			return res, err
		}
		res.Changes = append(res.Changes, Change{ProductID: p.ProductID, Action: ActionInserted})
	}
	return res, nil
}

// Reconcile procesa cada posición en orden: si no existe fila (stock, producto) la inserta;
// si existe, sobrescribe solo los campos presentes. Siempre procesa la lista completa.
// Los errores de persistencia se devuelven tal cual, sin reintentos.
func (r *Reconciler) Reconcile(ctx context.Context, stockID string, in []PositionInput) (Result, error) {
	var res Result
	now := r.now()
	for _, p := range in {
		existing, err := r.positions.GetByKey(ctx, stockID, p.ProductID)
		if err != nil {
			return res, err
		}
		if existing == nil {
			pos, err := newPosition(stockID, p, now)
			if err != nil {
				return res, err
			}
			if err := r.positions.Insert(ctx, pos); err != nil {
				return res, err
			}
			res.Changes = append(res.Changes, Change{ProductID: p.ProductID, Action: ActionInserted})
			continue
		}

		if q, ok := p.Quantity.Get(); ok {
			existing.Quantity = q
		}
		if price, ok := p.Price.Get(); ok {
			existing.Price = price
		}
		existing.UpdatedAt = now
		if err := r.positions.Update(ctx, existing); err != nil {
			return res, err
		}
		res.Changes = append(res.Changes, Change{ProductID: p.ProductID, Action: ActionUpdated})
	}
	return res, nil
}

// newPosition arma una fila nueva. Sin cantidad se usa DefaultPositionQuantity;
// el precio no tiene valor por defecto.
func newPosition(stockID string, in PositionInput, now time.Time) (*entity.Position, error) {
	price, ok := in.Price.Get()
	if !ok {
		return nil, fmt.Errorf("%w: price requerido para el producto %s", domain.ErrInvalidInput, in.ProductID)
	}
	return &entity.Position{
		ID:        uuid.New().String(),
		StockID:   stockID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity.OrElse(entity.DefaultPositionQuantity),
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
