package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/docs"
	"github.com/jhoicas/Logistica-api/internal/application/advertisement"
	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/course"
	"github.com/jhoicas/Logistica-api/internal/application/logistic"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/cache"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Logistica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/Logistica-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Logistica-api/internal/interfaces/http"
	"github.com/jhoicas/Logistica-api/pkg/config"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

// repositories puertos de persistencia según STORAGE_DRIVER.
type repositories struct {
	products       repository.ProductRepository
	stocks         repository.StockRepository
	positions      repository.PositionRepository
	users          repository.UserRepository
	advertisements repository.AdvertisementRepository
	courses        repository.CourseRepository
	students       repository.StudentRepository
	txRunner       logistic.TxRunner
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		products:       postgres.NewProductRepository(pool),
		stocks:         postgres.NewStockRepository(pool),
		positions:      postgres.NewPositionRepository(pool),
		users:          postgres.NewUserRepository(pool),
		advertisements: postgres.NewAdvertisementRepository(pool),
		courses:        postgres.NewCourseRepository(pool),
		students:       postgres.NewStudentRepository(pool),
		txRunner:       postgres.NewTxRunner(pool),
	}
}

func memoryRepositories() repositories {
	store := memory.NewStore()
	return repositories{
		products:       memory.NewProductRepository(store),
		stocks:         memory.NewStockRepository(store),
		positions:      memory.NewPositionRepository(store),
		users:          memory.NewUserRepository(store),
		advertisements: memory.NewAdvertisementRepository(store),
		courses:        memory.NewCourseRepository(store),
		students:       memory.NewStudentRepository(store),
		txRunner:       memory.NewTxRunner(store),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos repositories
	switch cfg.App.StorageDriver {
	case config.StorageDriverMemory:
		repos = memoryRepositories()
	default:
		if cfg.DB.Migrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = postgresRepositories(pool)
	}

	// Caché Redis opcional para lecturas de productos
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rdb.Close()
			repos.products = cache.NewProductRepository(repos.products, rdb, cfg.Redis.TTL, log.Component("cache"))
		}
	}

	renderers := map[string]logistic.ReportRenderer{
		"pdf":  infrapdf.NewStockReportRenderer(),
		"xlsx": infraxlsx.NewStockReportRenderer(log.Component("xlsx")),
	}

	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       logistic.NewProductUseCase(repos.products),
		StockUC:         logistic.NewStockUseCase(repos.txRunner, repos.stocks, repos.positions, log.Component("stock")),
		ReportUC:        logistic.NewReportUseCase(repos.stocks, repos.positions, repos.products, renderers),
		AdvertisementUC: advertisement.NewUseCase(repos.advertisements, repos.users, cfg.Limits.MaxOpenAdvertisements),
		CourseUC:        course.NewUseCase(repos.courses, repos.students, cfg.Limits.MaxStudentsPerCourse),
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
