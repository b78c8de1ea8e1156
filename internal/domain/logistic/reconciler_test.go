package logistic_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/logistic"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Logistica-api/pkg/optional"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	ctx       context.Context
	positions *memory.PositionRepo
	stockID   string
	products  []string
}

// newFixture crea un store con un stock y n productos.
func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	stock := &entity.Stock{ID: "stock-a", Address: "Warehouse A", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, memory.NewStockRepository(store).Create(ctx, stock))

	products := memory.NewProductRepository(store)
	f := &fixture{ctx: ctx, positions: memory.NewPositionRepository(store), stockID: stock.ID}
	for i := 1; i <= n; i++ {
		p := &entity.Product{ID: string(rune('0' + i)), Title: "producto " + string(rune('0'+i)), CreatedAt: now}
		require.NoError(t, products.Create(ctx, p))
		f.products = append(f.products, p.ID)
	}
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func full(productID string, qty int64, price string) logistic.PositionInput {
	return logistic.PositionInput{
		ProductID: productID,
		Quantity:  optional.Of(qty),
		Price:     optional.Of(dec(price)),
	}
}

func (f *fixture) row(t *testing.T, productID string) *entity.Position {
	t.Helper()
	p, err := f.positions.GetByKey(f.ctx, f.stockID, productID)
	require.NoError(t, err)
	require.NotNil(t, p, "debe existir la fila para el producto %s", productID)
	return p
}

// failingPositions envuelve un repositorio y falla en Update.
type failingPositions struct {
	repository.PositionRepository
	err error
}

func (f failingPositions) Update(context.Context, *entity.Position) error { return f.err }

// ──────────────────────────────────────────────────────────────────────────────
// Seed
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_InsertaUnaFilaPorPosicion(t *testing.T) {
	f := newFixture(t, 3)
	rec := logistic.NewReconciler(f.positions)

	res, err := rec.Seed(f.ctx, f.stockID, []logistic.PositionInput{
		full("1", 5, "10.00"),
		full("2", 0, "0"),
		full("3", 7, "3.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted())
	assert.Equal(t, 0, res.Updated())

	rows, err := f.positions.ListByStock(f.ctx, f.stockID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(5), rows[0].Quantity)
	assert.True(t, rows[0].Price.Equal(dec("10")))
	assert.Equal(t, int64(0), rows[1].Quantity)
	assert.True(t, rows[2].Price.Equal(dec("3.25")))
}

func TestSeed_SinCantidadUsaValorPorDefecto(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Seed(f.ctx, f.stockID, []logistic.PositionInput{
		{ProductID: "1", Price: optional.Of(dec("1.50"))},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPositionQuantity, f.row(t, "1").Quantity)
}

func TestSeed_SinPrecioRetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Seed(f.ctx, f.stockID, []logistic.PositionInput{
		{ProductID: "1", Quantity: optional.Of[int64](2)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeed_ProductoInexistentePropagaErrorDePersistencia(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Seed(f.ctx, f.stockID, []logistic.PositionInput{
		full("99", 1, "1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestSeed_ProductoRepetidoViolaUnicidad(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Seed(f.ctx, f.stockID, []logistic.PositionInput{
		full("1", 1, "1"),
		full("1", 2, "2"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: "Warehouse A" con [(1, 5, 10.00)]; actualización [(1, qty 3), (2, 1, 2.50)].
func TestReconcile_EscenarioWarehouseA(t *testing.T) {
	f := newFixture(t, 2)
	rec := logistic.NewReconciler(f.positions)

	_, err := rec.Seed(f.ctx, f.stockID, []logistic.PositionInput{full("1", 5, "10.00")})
	require.NoError(t, err)

	rows, err := f.positions.ListByStock(f.ctx, f.stockID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	res, err := rec.Reconcile(f.ctx, f.stockID, []logistic.PositionInput{
		{ProductID: "1", Quantity: optional.Of[int64](3)},
		full("2", 1, "2.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, []logistic.Change{
		{ProductID: "1", Action: logistic.ActionUpdated},
		{ProductID: "2", Action: logistic.ActionInserted},
	}, res.Changes)

	first := f.row(t, "1")
	assert.Equal(t, int64(3), first.Quantity)
	assert.True(t, first.Price.Equal(dec("10.00")), "price omitido conserva el valor previo")

	second := f.row(t, "2")
	assert.Equal(t, int64(1), second.Quantity)
	assert.True(t, second.Price.Equal(dec("2.50")))
}

func TestReconcile_SoloPrecioConservaCantidad(t *testing.T) {
	f := newFixture(t, 1)
	rec := logistic.NewReconciler(f.positions)
	_, err := rec.Seed(f.ctx, f.stockID, []logistic.PositionInput{full("1", 5, "10")})
	require.NoError(t, err)

	_, err = rec.Reconcile(f.ctx, f.stockID, []logistic.PositionInput{
		{ProductID: "1", Price: optional.Of(dec("12.40"))},
	})
	require.NoError(t, err)

	row := f.row(t, "1")
	assert.Equal(t, int64(5), row.Quantity)
	assert.True(t, row.Price.Equal(dec("12.40")))
}

// Un insert en medio de la lista no corta el procesamiento de las posiciones siguientes.
func TestReconcile_ProcesaTodaLaListaTrasUnInsert(t *testing.T) {
	f := newFixture(t, 3)
	rec := logistic.NewReconciler(f.positions)
	_, err := rec.Seed(f.ctx, f.stockID, []logistic.PositionInput{full("1", 1, "1"), full("3", 1, "1")})
	require.NoError(t, err)

	res, err := rec.Reconcile(f.ctx, f.stockID, []logistic.PositionInput{
		full("2", 4, "4"),
		full("3", 9, "9"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted())
	assert.Equal(t, 1, res.Updated())
	assert.Equal(t, int64(9), f.row(t, "3").Quantity)
}

func TestReconcile_NoTocaPosicionesNoMencionadas(t *testing.T) {
	f := newFixture(t, 2)
	rec := logistic.NewReconciler(f.positions)
	_, err := rec.Seed(f.ctx, f.stockID, []logistic.PositionInput{full("1", 5, "10"), full("2", 8, "3")})
	require.NoError(t, err)
	before := *f.row(t, "2")

	_, err = rec.Reconcile(f.ctx, f.stockID, []logistic.PositionInput{full("1", 1, "1")})
	require.NoError(t, err)

	after := f.row(t, "2")
	assert.Equal(t, before.Quantity, after.Quantity)
	assert.True(t, before.Price.Equal(after.Price))
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	rows, err := f.positions.ListByStock(f.ctx, f.stockID)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "la reconciliación nunca borra filas")
}

func TestReconcile_Idempotente(t *testing.T) {
	f := newFixture(t, 2)
	rec := logistic.NewReconciler(f.positions)
	_, err := rec.Seed(f.ctx, f.stockID, []logistic.PositionInput{full("1", 5, "10")})
	require.NoError(t, err)

	update := []logistic.PositionInput{
		{ProductID: "1", Quantity: optional.Of[int64](3)},
		full("2", 1, "2.50"),
	}
	_, err = rec.Reconcile(f.ctx, f.stockID, update)
	require.NoError(t, err)
	once, err := f.positions.ListByStock(f.ctx, f.stockID)
	require.NoError(t, err)

	_, err = rec.Reconcile(f.ctx, f.stockID, update)
	require.NoError(t, err)
	twice, err := f.positions.ListByStock(f.ctx, f.stockID)
	require.NoError(t, err)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].ProductID, twice[i].ProductID)
		assert.Equal(t, once[i].Quantity, twice[i].Quantity)
		assert.True(t, once[i].Price.Equal(twice[i].Price))
	}
}

func TestReconcile_FilaNuevaSinPrecioRetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Reconcile(f.ctx, f.stockID, []logistic.PositionInput{
		{ProductID: "1", Quantity: optional.Of[int64](1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconcile_ProductoRepetidoActualizaLaFilaRecienInsertada(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Reconcile(f.ctx, f.stockID, []logistic.PositionInput{
		full("1", 1, "1"),
		{ProductID: "1", Quantity: optional.Of[int64](6)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.row(t, "1").Quantity)
}

func TestReconcile_ErrorDePersistenciaSePropagaSinCambios(t *testing.T) {
	f := newFixture(t, 1)
	_, err := logistic.NewReconciler(f.positions).Seed(f.ctx, f.stockID, []logistic.PositionInput{full("1", 1, "1")})
	require.NoError(t, err)

	boom := errors.New("conexión perdida")
	_, err = logistic.NewReconciler(failingPositions{PositionRepository: f.positions, err: boom}).
		Reconcile(f.ctx, f.stockID, []logistic.PositionInput{full("1", 2, "2")})
	assert.Same(t, boom, err, "el error debe llegar sin envolver")
}
