package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-api/internal/application/course"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
)

// CourseHandler maneja cursos y estudiantes.
type CourseHandler struct {
	uc  *course.UseCase
	log zerolog.Logger
}

// NewCourseHandler construye el handler.
func NewCourseHandler(uc *course.UseCase, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{uc: uc, log: log}
}

// CreateStudent godoc
// @Summary      Registrar estudiante
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStudentRequest  true  "Estudiante"
// @Success      201   {object}  dto.StudentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/students [post]
func (h *CourseHandler) CreateStudent(c *fiber.Ctx) error {
	var in dto.CreateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateStudent(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStudents godoc
// @Summary      Listar estudiantes
// @Tags         students
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StudentListResponse
// @Router       /api/students [get]
func (h *CourseHandler) ListStudents(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListStudents(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear curso
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CourseRequest  true  "Curso"
// @Success      201   {object}  dto.CourseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var in dto.CourseRequest
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
// @Summary      Obtener curso
// @Tags         courses
// @Produce      json
// @Param        id   path  string  true  "ID del curso"
// @Success      200  {object}  dto.CourseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "curso no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cursos
// @Tags         courses
// @Produce      json
// @Param        id      query  string  false  "ID exacto"
// @Param        name    query  string  false  "Nombre exacto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.CourseListResponse
// @Router       /api/courses [get]
func (h *CourseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), c.Query("id"), c.Query("name"), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar curso
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del curso"
// @Param        body  body  dto.CourseRequest  true  "Curso"
// @Success      200   {object}  dto.CourseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	var in dto.CourseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "curso no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar curso
// @Tags         courses
// @Param        id   path  string  true  "ID del curso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
