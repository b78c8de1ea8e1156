package entity

import "time"

// Estados posibles de un anuncio.
const (
	AdvertisementStatusOpen   = "OPEN"
	AdvertisementStatusClosed = "CLOSED"
)

// Advertisement representa un anuncio publicado por un usuario.
type Advertisement struct {
	ID          string
	Title       string
	Description string
	Status      string // OPEN, CLOSED
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy indica si userID es el creador del anuncio.
func (a *Advertisement) IsOwnedBy(userID string) bool {
	return userID != "" && a.CreatorID == userID
}

// ValidAdvertisementStatus valida el estado recibido.
func ValidAdvertisementStatus(s string) bool {
	return s == AdvertisementStatusOpen || s == AdvertisementStatusClosed
}
