package logistic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	domlogistic "github.com/jhoicas/Logistica-api/internal/domain/logistic"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// StockUseCase casos de uso de stocks. Crear y actualizar corren dentro de una transacción:
// si falla cualquier posición, no queda nada del stock ni de sus filas.
type StockUseCase struct {
	txRunner  TxRunner
	stocks    repository.StockRepository
	positions repository.PositionRepository
	log       zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stocks repository.StockRepository,
	positions repository.PositionRepository,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		stocks:    stocks,
		positions: positions,
		log:       log,
	}
}

// Create persiste el stock y siembra todas sus posiciones.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, fmt.Errorf("%w: address requerido", domain.ErrInvalidInput)
	}
	inputs, err := toPositionInputs(in.Positions)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stock := &entity.Stock{
		ID:        uuid.New().String(),
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var res domlogistic.Result
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, positionRepo repository.PositionRepository) error {
		if err := stockRepo.Create(ctx, stock); err != nil {
			return err
		}
		var err error
		res, err = domlogistic.NewReconciler(positionRepo).Seed(ctx, stock.ID, inputs)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logResult("seed", stock.ID, res)
	return uc.load(ctx, stock, res)
}

// Update modifica dirección y/o posiciones. Con partial=false (PUT) ambos son obligatorios;
// con partial=true (PATCH) positions ausente deja las filas intactas.
// Las posiciones no mencionadas nunca se borran.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateStockRequest, partial bool) (*dto.StockResponse, error) {
	if !partial && (!in.Address.IsSet() || !in.Positions.IsSet()) {
		return nil, fmt.Errorf("%w: address y positions son requeridos", domain.ErrInvalidInput)
	}
	address, hasAddress := in.Address.Get()
	if hasAddress {
		address = strings.TrimSpace(address)
		if address == "" {
			return nil, fmt.Errorf("%w: address vacío", domain.ErrInvalidInput)
		}
	}
	requested, hasPositions := in.Positions.Get()
	inputs, err := toPositionInputs(requested)
	if err != nil {
		return nil, err
	}

	var (
		stock *entity.Stock
		res   domlogistic.Result
	)
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, positionRepo repository.PositionRepository) error {
		var err error
		stock, err = stockRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		if hasAddress {
			stock.Address = address
		}
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Update(ctx, stock); err != nil {
			return err
		}
		if !hasPositions {
			return nil
		}
		res, err = domlogistic.NewReconciler(positionRepo).Reconcile(ctx, stock.ID, inputs)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logResult("reconcile", stock.ID, res)
	return uc.load(ctx, stock, res)
}

// GetByID devuelve el stock con sus posiciones. (nil, nil) si no existe.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockResponse, error) {
	stock, err := uc.stocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}
	return uc.load(ctx, stock, domlogistic.Result{})
}

// List lista stocks filtrando por producto y texto libre.
func (uc *StockUseCase) List(ctx context.Context, productID, search string, limit, offset int) (*dto.StockListResponse, error) {
	filter := repository.StockFilter{
		ProductID: strings.TrimSpace(productID),
		Search:    strings.TrimSpace(search),
	}
	list, err := uc.stocks.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, st := range list {
		out, err := uc.load(ctx, st, domlogistic.Result{})
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina el stock y sus posiciones. ErrNotFound si no existe.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	stock, err := uc.stocks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if stock == nil {
		return domain.ErrNotFound
	}
	return uc.stocks.Delete(ctx, id)
}

func (uc *StockUseCase) load(ctx context.Context, stock *entity.Stock, res domlogistic.Result) (*dto.StockResponse, error) {
	rows, err := uc.positions.ListByStock(ctx, stock.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockResponse{
		ID:        stock.ID,
		Address:   stock.Address,
		Positions: make([]dto.PositionResponse, 0, len(rows)),
		CreatedAt: stock.CreatedAt,
		UpdatedAt: stock.UpdatedAt,
	}
	for _, p := range rows {
		out.Positions = append(out.Positions, dto.PositionResponse{
			ID:        p.ID,
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Price:     p.Price,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	for _, c := range res.Changes {
		out.Changes = append(out.Changes, dto.PositionChangeResponse{ProductID: c.ProductID, Action: c.Action})
	}
	return out, nil
}

func (uc *StockUseCase) logResult(op, stockID string, res domlogistic.Result) {
	uc.log.Debug().
		Str("op", op).
		Str("stock_id", stockID).
		Int("inserted", res.Inserted()).
		Int("updated", res.Updated()).
		Msg("posiciones reconciliadas")
}

// toPositionInputs valida las posiciones pedidas: producto requerido, cantidad y precio no negativos,
// precio con a lo sumo PositionPriceScale decimales.
func toPositionInputs(in []dto.PositionRequest) ([]domlogistic.PositionInput, error) {
	out := make([]domlogistic.PositionInput, 0, len(in))
	for i, p := range in {
		if strings.TrimSpace(p.ProductID) == "" {
			return nil, fmt.Errorf("%w: positions[%d].product requerido", domain.ErrInvalidInput, i)
		}
		if q, ok := p.Quantity.Get(); ok && q < 0 {
			return nil, fmt.Errorf("%w: positions[%d].quantity negativa", domain.ErrInvalidInput, i)
		}
		if price, ok := p.Price.Get(); ok {
			if price.LessThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: positions[%d].price negativo", domain.ErrInvalidInput, i)
			}
			if price.Exponent() < -entity.PositionPriceScale {
				return nil, fmt.Errorf("%w: positions[%d].price admite hasta %d decimales", domain.ErrInvalidInput, i, entity.PositionPriceScale)
			}
		}
		out = append(out, domlogistic.PositionInput{
			ProductID: strings.TrimSpace(p.ProductID),
			Quantity:  p.Quantity,
			Price:     p.Price,
		})
	}
	return out, nil
}
