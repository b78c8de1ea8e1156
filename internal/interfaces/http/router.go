package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-api/internal/application/advertisement"
	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/course"
	"github.com/jhoicas/Logistica-api/internal/application/logistic"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *logistic.ProductUseCase
	StockUC         *logistic.StockUseCase
	ReportUC        *logistic.ReportUseCase
	AdvertisementUC *advertisement.UseCase
	CourseUC        *course.UseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	Log             zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catálogo logístico (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, deps.ReportUC, deps.Log)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Get("/:id/report", stockHandler.Report)
	stocks.Put("/:id", stockHandler.Update)
	stocks.Patch("/:id", stockHandler.Update)
	stocks.Delete("/:id", stockHandler.Delete)

	// Advertisements: lectura pública, escritura con Bearer Token y solo el creador
	ads := api.Group("/advertisements", OptionalAuth(deps.JWTSecret))
	adHandler := NewAdvertisementHandler(deps.AdvertisementUC, deps.Log)
	requireAuth := AuthMiddleware(deps.JWTSecret)
	ads.Get("/", adHandler.List)
	ads.Get("/:id", adHandler.GetByID)
	ads.Post("/", requireAuth, adHandler.Create)
	ads.Put("/:id", requireAuth, adHandler.Update)
	ads.Patch("/:id", requireAuth, adHandler.Update)
	ads.Delete("/:id", requireAuth, adHandler.Delete)

	// Courses / students (público)
	courseHandler := NewCourseHandler(deps.CourseUC, deps.Log)
	students := api.Group("/students")
	students.Post("/", courseHandler.CreateStudent)
	students.Get("/", courseHandler.ListStudents)

	courses := api.Group("/courses")
	courses.Post("/", courseHandler.Create)
	courses.Get("/", courseHandler.List)
	courses.Get("/:id", courseHandler.GetByID)
	courses.Put("/:id", courseHandler.Update)
	courses.Delete("/:id", courseHandler.Delete)
}
