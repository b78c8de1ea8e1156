package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-api/internal/application/advertisement"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
)

// AdvertisementHandler lecturas públicas; escrituras solo del creador.
type AdvertisementHandler struct {
	uc  *advertisement.UseCase
	log zerolog.Logger
}

// NewAdvertisementHandler construye el handler.
func NewAdvertisementHandler(uc *advertisement.UseCase, log zerolog.Logger) *AdvertisementHandler {
	return &AdvertisementHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Publicar anuncio
// @Tags         advertisements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdvertisementRequest  true  "Anuncio"
// @Success      201   {object}  dto.AdvertisementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/advertisements [post]
func (h *AdvertisementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdvertisementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener anuncio
// @Tags         advertisements
// @Produce      json
// @Param        id   path  string  true  "ID del anuncio"
// @Success      200  {object}  dto.AdvertisementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/advertisements/{id} [get]
func (h *AdvertisementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "anuncio no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar anuncios
// @Tags         advertisements
// @Produce      json
// @Param        created_at_after   query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        created_at_before  query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        status             query  string  false  "OPEN | CLOSED"
// @Param        creator            query  string  false  "IDs de creador separados por coma"
// @Param        limit              query  int     false  "Límite"   default(20)
// @Param        offset             query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AdvertisementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/advertisements [get]
func (h *AdvertisementHandler) List(c *fiber.Ctx) error {
	var q dto.AdvertisementQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), q, limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar anuncio (solo el creador)
// @Tags         advertisements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del anuncio"
// @Param        body  body  dto.UpdateAdvertisementRequest  true  "Cambios"
// @Success      200   {object}  dto.AdvertisementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/advertisements/{id} [put]
// @Router       /api/advertisements/{id} [patch]
func (h *AdvertisementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAdvertisementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in, c.Method() == fiber.MethodPatch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar anuncio (solo el creador)
// @Tags         advertisements
// @Security     Bearer
// @Param        id   path  string  true  "ID del anuncio"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/advertisements/{id} [delete]
func (h *AdvertisementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
