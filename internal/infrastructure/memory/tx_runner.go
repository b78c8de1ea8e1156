package memory

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/application/logistic"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ logistic.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre una copia del store: si fn falla, la copia se descarta.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos de stock y posiciones; deshace los cambios si devuelve error.
func (r *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	positionRepo repository.PositionRepository,
) error) error {
	return r.s.runTx(func(tx *Store) error {
		return fn(NewStockRepository(tx), NewPositionRepository(tx))
	})
}
