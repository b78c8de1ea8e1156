package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/logistic"
)

// StockHandler maneja stocks, sus posiciones y el reporte descargable.
type StockHandler struct {
	uc      *logistic.StockUseCase
	reports *logistic.ReportUseCase
	log     zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *logistic.StockUseCase, reports *logistic.ReportUseCase, log zerolog.Logger) *StockHandler {
	return &StockHandler{uc: uc, reports: reports, log: log}
}

// Create godoc
// @Summary      Crear stock con sus posiciones
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "Dirección y posiciones"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener stock con posiciones
// @Tags         stocks
// @Produce      json
// @Param        id   path  string  true  "ID del stock"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "stock no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar stocks
// @Tags         stocks
// @Produce      json
// @Param        product  query  string  false  "Solo stocks que tienen este producto"
// @Param        search   query  string  false  "Texto en dirección o en los productos del stock"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), c.Query("product"), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar stock y reconciliar posiciones
// @Description  PUT exige address y positions. PATCH acepta cualquiera de los dos; sin positions no se tocan las filas.
// @Description  Las posiciones no mencionadas se conservan.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock"
// @Param        body  body  dto.UpdateStockRequest  true  "Cambios"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [put]
// @Router       /api/stocks/{id} [patch]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, c.Method() == fiber.MethodPatch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar stock (y sus posiciones)
// @Tags         stocks
// @Param        id   path  string  true  "ID del stock"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Descargar reporte de posiciones
// @Tags         stocks
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id      path   string  true   "ID del stock"
// @Param        format  query  string  false  "pdf | xlsx"  default(pdf)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", "pdf"))
	doc, contentType, filename, err := h.reports.Generate(c.UserContext(), c.Params("id"), format)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(doc)
}
