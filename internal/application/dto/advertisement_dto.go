package dto

import "time"

// CreateAdvertisementRequest entrada para publicar un anuncio. Status vacío = OPEN.
type CreateAdvertisementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateAdvertisementRequest entrada de PUT/PATCH; los campos nil no se tocan.
type UpdateAdvertisementRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// AdvertisementQuery filtros del listado (query string).
// Fechas en formato YYYY-MM-DD; creator admite varios ids separados por coma.
type AdvertisementQuery struct {
	CreatedAfter  string `query:"created_at_after"`
	CreatedBefore string `query:"created_at_before"`
	Status        string `query:"status"`
	Creator       string `query:"creator"`
}

// AdvertisementResponse salida de un anuncio.
type AdvertisementResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Creator     UserResponse `json:"creator"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// AdvertisementListResponse lista paginada de anuncios.
type AdvertisementListResponse struct {
	Items []AdvertisementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
