// Package memory implementa los puertos de persistencia en memoria.
// Aplica las mismas reglas de unicidad e integridad referencial que el esquema SQL,
// y sirve como doble de pruebas y como backend local sin base de datos.
package memory

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// Store contiene todas las tablas en memoria. Seguro para uso concurrente.
type Store struct {
	mu sync.RWMutex
	d  *data
}

type data struct {
	seq            int64
	order          map[string]int64 // id -> secuencia de inserción (orden de listados)
	products       map[string]entity.Product
	stocks         map[string]entity.Stock
	positions      map[positionKey]entity.Position
	users          map[string]entity.User
	advertisements map[string]entity.Advertisement
	students       map[string]entity.Student
	courses        map[string]entity.Course
}

type positionKey struct {
	stockID   string
	productID string
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

func newData() *data {
	return &data{
		order:          make(map[string]int64),
		products:       make(map[string]entity.Product),
		stocks:         make(map[string]entity.Stock),
		positions:      make(map[positionKey]entity.Position),
		users:          make(map[string]entity.User),
		advertisements: make(map[string]entity.Advertisement),
		students:       make(map[string]entity.Student),
		courses:        make(map[string]entity.Course),
	}
}

func (d *data) clone() *data {
	c := newData()
	c.seq = d.seq
	for k, v := range d.order {
		c.order[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.stocks {
		c.stocks[k] = v
	}
	for k, v := range d.positions {
		c.positions[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.advertisements {
		c.advertisements[k] = v
	}
	for k, v := range d.students {
		c.students[k] = v
	}
	for k, v := range d.courses {
		v.StudentIDs = slices.Clone(v.StudentIDs)
		c.courses[k] = v
	}
	return c
}

// track registra el orden de inserción de un id. Requiere mu tomado.
func (d *data) track(id string) {
	d.seq++
	d.order[id] = d.seq
}

// runTx ejecuta fn sobre una copia privada del store y la publica solo si fn termina sin error.
// Mantiene mu tomado hasta el final: fn no debe usar repositorios del store externo.
func (s *Store) runTx(fn func(tx *Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{d: s.d.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.d = tx.d
	return nil
}

// sortByInsertion ordena ids por secuencia de inserción. Requiere mu tomado.
func (d *data) sortByInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return d.order[ids[i]] < d.order[ids[j]] })
}

// containsFold compara sin distinguir mayúsculas (plegado Unicode).
func containsFold(haystack, needle string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
