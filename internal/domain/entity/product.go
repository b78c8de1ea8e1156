package entity

import "time"

// Product representa un producto del catálogo. Es dato de referencia: las posiciones
// de un stock lo apuntan pero nunca lo modifican.
type Product struct {
	ID          string
	Title       string // único en el catálogo
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
