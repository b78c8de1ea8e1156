package memory

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.StockRepository    = (*StockRepo)(nil)
	_ repository.PositionRepository = (*PositionRepo)(nil)
)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio de productos sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	for _, p := range d.products {
		if p.Title == product.Title {
			return domain.ErrDuplicate
		}
	}
	d.products[product.ID] = *product
	d.track(product.ID)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.d.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if _, ok := d.products[product.ID]; !ok {
		return nil
	}
	for id, p := range d.products {
		if id != product.ID && p.Title == product.Title {
			return domain.ErrDuplicate
		}
	}
	d.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.d
	ids := make([]string, 0, len(d.products))
	for id, p := range d.products {
		if filter.Search != "" && !containsFold(p.Title, filter.Search) && !containsFold(p.Description, filter.Search) {
			continue
		}
		ids = append(ids, id)
	}
	d.sortByInsertion(ids)
	list := make([]*entity.Product, 0, len(ids))
	for _, id := range page(ids, limit, offset) {
		p := d.products[id]
		list = append(list, &p)
	}
	return list, nil
}

// Delete elimina el producto y sus posiciones (ON DELETE CASCADE).
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	delete(d.products, id)
	delete(d.order, id)
	for k, p := range d.positions {
		if k.productID == id {
			delete(d.positions, k)
			delete(d.order, p.ID)
		}
	}
	return nil
}

// StockRepo implementación en memoria de StockRepository.
type StockRepo struct {
	s *Store
}

// NewStockRepository construye el repositorio de stocks sobre el store.
func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

func (r *StockRepo) Create(_ context.Context, stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	for _, st := range d.stocks {
		if st.Address == stock.Address {
			return domain.ErrDuplicate
		}
	}
	d.stocks[stock.ID] = *stock
	d.track(stock.ID)
	return nil
}

func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.d.stocks[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *StockRepo) Update(_ context.Context, stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if _, ok := d.stocks[stock.ID]; !ok {
		return nil
	}
	for id, st := range d.stocks {
		if id != stock.ID && st.Address == stock.Address {
			return domain.ErrDuplicate
		}
	}
	d.stocks[stock.ID] = *stock
	return nil
}

func (r *StockRepo) List(_ context.Context, filter repository.StockFilter, limit, offset int) ([]*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.d
	ids := make([]string, 0, len(d.stocks))
	for id, st := range d.stocks {
		if filter.ProductID != "" {
			if _, ok := d.positions[positionKey{stockID: id, productID: filter.ProductID}]; !ok {
				continue
			}
		}
		if filter.Search != "" && !d.stockMatches(st, filter.Search) {
			continue
		}
		ids = append(ids, id)
	}
	d.sortByInsertion(ids)
	list := make([]*entity.Stock, 0, len(ids))
	for _, id := range page(ids, limit, offset) {
		st := d.stocks[id]
		list = append(list, &st)
	}
	return list, nil
}

// stockMatches busca el texto en la dirección y en los productos del stock. Requiere mu tomado.
func (d *data) stockMatches(st entity.Stock, search string) bool {
	if containsFold(st.Address, search) {
		return true
	}
	for k := range d.positions {
		if k.stockID != st.ID {
			continue
		}
		p := d.products[k.productID]
		if containsFold(p.Title, search) || containsFold(p.Description, search) {
			return true
		}
	}
	return false
}

// Delete elimina el stock y sus posiciones (ON DELETE CASCADE).
func (r *StockRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	delete(d.stocks, id)
	delete(d.order, id)
	for k, p := range d.positions {
		if k.stockID == id {
			delete(d.positions, k)
			delete(d.order, p.ID)
		}
	}
	return nil
}

// PositionRepo implementación en memoria de PositionRepository.
type PositionRepo struct {
	s *Store
}

// NewPositionRepository construye el repositorio de posiciones sobre el store.
func NewPositionRepository(s *Store) *PositionRepo {
	return &PositionRepo{s: s}
}

func (r *PositionRepo) Insert(_ context.Context, position *entity.Position) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if _, ok := d.stocks[position.StockID]; !ok {
		return domain.ErrInvalidReference
	}
	if _, ok := d.products[position.ProductID]; !ok {
		return domain.ErrInvalidReference
	}
	key := positionKey{stockID: position.StockID, productID: position.ProductID}
	if _, ok := d.positions[key]; ok {
		return domain.ErrDuplicate
	}
	d.positions[key] = *position
	d.track(position.ID)
	return nil
}

func (r *PositionRepo) GetByKey(_ context.Context, stockID, productID string) (*entity.Position, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.d.positions[positionKey{stockID: stockID, productID: productID}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PositionRepo) Update(_ context.Context, position *entity.Position) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := positionKey{stockID: position.StockID, productID: position.ProductID}
	current, ok := r.s.d.positions[key]
	if !ok {
		return nil
	}
	current.Quantity = position.Quantity
	current.Price = position.Price
	current.UpdatedAt = position.UpdatedAt
	r.s.d.positions[key] = current
	return nil
}

func (r *PositionRepo) ListByStock(_ context.Context, stockID string) ([]*entity.Position, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.d
	var ids []string
	byID := make(map[string]entity.Position)
	for k, p := range d.positions {
		if k.stockID == stockID {
			ids = append(ids, p.ID)
			byID[p.ID] = p
		}
	}
	d.sortByInsertion(ids)
	list := make([]*entity.Position, 0, len(ids))
	for _, id := range ids {
		p := byID[id]
		list = append(list, &p)
	}
	return list, nil
}
