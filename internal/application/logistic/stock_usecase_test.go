package logistic_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/logistic"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Logistica-api/pkg/optional"
)

type env struct {
	ctx      context.Context
	stocks   *logistic.StockUseCase
	products *logistic.ProductUseCase
	reports  *logistic.ReportUseCase
	store    *memory.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	stockRepo := memory.NewStockRepository(store)
	positionRepo := memory.NewPositionRepository(store)
	productRepo := memory.NewProductRepository(store)
	return &env{
		ctx:      context.Background(),
		stocks:   logistic.NewStockUseCase(memory.NewTxRunner(store), stockRepo, positionRepo, zerolog.Nop()),
		products: logistic.NewProductUseCase(productRepo),
		reports:  logistic.NewReportUseCase(stockRepo, positionRepo, productRepo, nil),
		store:    store,
	}
}

func (e *env) product(t *testing.T, title string) string {
	t.Helper()
	p, err := e.products.Create(e.ctx, dto.CreateProductRequest{Title: title})
	require.NoError(t, err)
	return p.ID
}

func pos(productID string, qty int64, price string) dto.PositionRequest {
	return dto.PositionRequest{
		ProductID: productID,
		Quantity:  optional.Of(qty),
		Price:     optional.Of(decimal.RequireFromString(price)),
	}
}

func TestStockCreate_SiembraPosiciones(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")

	out, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 5, "10.00")},
	})
	require.NoError(t, err)
	require.Len(t, out.Positions, 1)
	assert.Equal(t, int64(5), out.Positions[0].Quantity)
	require.Len(t, out.Changes, 1)
	assert.Equal(t, "inserted", out.Changes[0].Action)
}

func TestStockCreate_FallaEnPosicionHaceRollbackDelStock(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")

	_, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 1, "1"), pos("no-existe", 1, "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	list, err := e.stocks.List(e.ctx, "", "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items, "el stock no debe quedar persistido")
}

func TestStockCreate_ValidaCantidadNegativa(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	_, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, -1, "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockCreate_PrecioConMasDeDosDecimalesEsInvalido(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	_, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 1, "2.555")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := e.stocks.List(e.ctx, "", "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestStockCreate_PrecioConDosDecimalesSeConserva(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	out, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 1, "2.50")},
	})
	require.NoError(t, err)
	require.Len(t, out.Positions, 1)
	assert.True(t, out.Positions[0].Price.Equal(decimal.RequireFromString("2.5")))
}

func TestStockUpdate_PrecioConMasDeDosDecimalesEsInvalido(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 1, "2.50")},
	})
	require.NoError(t, err)

	_, err = e.stocks.Update(e.ctx, created.ID, dto.UpdateStockRequest{
		Positions: optional.Of([]dto.PositionRequest{{ProductID: tomato, Price: optional.Of(decimal.RequireFromString("0.001"))}}),
	}, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := e.stocks.GetByID(e.ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Positions[0].Price.Equal(decimal.RequireFromString("2.50")))
}

func TestStockCreate_DireccionDuplicada(t *testing.T) {
	e := newEnv(t)
	_, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "Warehouse A"})
	require.NoError(t, err)
	_, err = e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "Warehouse A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStockUpdate_PutReconciliaPosiciones(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	cucumber := e.product(t, "pepino")
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 5, "10.00")},
	})
	require.NoError(t, err)

	out, err := e.stocks.Update(e.ctx, created.ID, dto.UpdateStockRequest{
		Address: optional.Of("Warehouse A"),
		Positions: optional.Of([]dto.PositionRequest{
			{ProductID: tomato, Quantity: optional.Of[int64](3)},
			pos(cucumber, 1, "2.50"),
		}),
	}, false)
	require.NoError(t, err)
	require.Len(t, out.Positions, 2)
	assert.Equal(t, int64(3), out.Positions[0].Quantity)
	assert.True(t, out.Positions[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, cucumber, out.Positions[1].ProductID)
}

func TestStockUpdate_PutSinPositionsEsInvalido(t *testing.T) {
	e := newEnv(t)
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "Warehouse A"})
	require.NoError(t, err)

	_, err = e.stocks.Update(e.ctx, created.ID, dto.UpdateStockRequest{Address: optional.Of("B")}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockUpdate_PatchSoloDireccionNoTocaPosiciones(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "Warehouse A",
		Positions: []dto.PositionRequest{pos(tomato, 5, "10")},
	})
	require.NoError(t, err)

	out, err := e.stocks.Update(e.ctx, created.ID, dto.UpdateStockRequest{Address: optional.Of("Warehouse B")}, true)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse B", out.Address)
	require.Len(t, out.Positions, 1)
	assert.Equal(t, int64(5), out.Positions[0].Quantity)
	assert.Empty(t, out.Changes)
}

func TestStockUpdate_FilaNuevaSinPrecioDeshaceCambioDeDireccion(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "Warehouse A"})
	require.NoError(t, err)

	_, err = e.stocks.Update(e.ctx, created.ID, dto.UpdateStockRequest{
		Address:   optional.Of("Warehouse B"),
		Positions: optional.Of([]dto.PositionRequest{{ProductID: tomato, Quantity: optional.Of[int64](2)}}),
	}, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := e.stocks.GetByID(e.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse A", got.Address)
	assert.Empty(t, got.Positions)
}

func TestStockUpdate_Inexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.stocks.Update(e.ctx, "nope", dto.UpdateStockRequest{Address: optional.Of("X")}, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockList_FiltraPorProductoYBusqueda(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "Tomate cherry")
	cucumber := e.product(t, "Pepino")
	_, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "Norte", Positions: []dto.PositionRequest{pos(tomato, 1, "1")}})
	require.NoError(t, err)
	_, err = e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "Sur", Positions: []dto.PositionRequest{pos(cucumber, 1, "1")}})
	require.NoError(t, err)

	byProduct, err := e.stocks.List(e.ctx, cucumber, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, byProduct.Items, 1)
	assert.Equal(t, "Sur", byProduct.Items[0].Address)

	bySearch, err := e.stocks.List(e.ctx, "", "CHERRY", 20, 0)
	require.NoError(t, err)
	require.Len(t, bySearch.Items, 1)
	assert.Equal(t, "Norte", bySearch.Items[0].Address)
}

func TestStockDelete_EliminaPosiciones(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{Address: "A", Positions: []dto.PositionRequest{pos(tomato, 1, "1")}})
	require.NoError(t, err)

	require.NoError(t, e.stocks.Delete(e.ctx, created.ID))
	assert.ErrorIs(t, e.stocks.Delete(e.ctx, created.ID), domain.ErrNotFound)

	list, err := e.stocks.List(e.ctx, tomato, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestReportBuild_CalculaSubtotalesYTotal(t *testing.T) {
	e := newEnv(t)
	tomato := e.product(t, "tomate")
	cucumber := e.product(t, "pepino")
	created, err := e.stocks.Create(e.ctx, dto.CreateStockRequest{
		Address:   "A",
		Positions: []dto.PositionRequest{pos(tomato, 5, "10.00"), pos(cucumber, 2, "2.50")},
	})
	require.NoError(t, err)

	report, err := e.reports.Build(e.ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, report.Lines, 2)
	assert.Equal(t, "tomate", report.Lines[0].ProductTitle)
	assert.True(t, report.Lines[0].Subtotal.Equal(decimal.RequireFromString("50")))
	assert.True(t, report.Total.Equal(decimal.RequireFromString("55")))
}

func TestReportGenerate_FormatoNoSoportado(t *testing.T) {
	e := newEnv(t)
	_, _, _, err := e.reports.Generate(e.ctx, "x", "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
