package entity

import "time"

// Stock representa un almacén identificado por su dirección (única).
// Sus posiciones se persisten aparte (ver Position).
type Stock struct {
	ID        string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
