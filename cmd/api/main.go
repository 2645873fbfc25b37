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
	"github.com/jhoicas/medstock-api/internal/application/auth"
	"github.com/jhoicas/medstock-api/internal/application/stock"
	"github.com/jhoicas/medstock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/medstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medstock-api/internal/interfaces/http"
	"github.com/jhoicas/medstock-api/pkg/cache"
	"github.com/jhoicas/medstock-api/pkg/config"
	"github.com/jhoicas/medstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR el resumen de inventario se calcula
	// siempre contra la BD.
	var cacheClient cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient, err = cache.NewRedisClient(cfg.Redis.Addr)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, continuando sin cache")
			cacheClient = nil
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	recordRepo := postgres.NewTransferRecordRepository(pool)
	requestRepo := postgres.NewTransferRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	slipGenerator := infrapdf.NewTransferSlipGenerator()

	availabilityUC := stock.NewAvailabilityUseCase(stockRepo, productRepo)
	transferUC := stock.NewTransferUseCase(txRunner, locationRepo)
	requestUC := stock.NewRequestUseCase(txRunner, availabilityUC, requestRepo, locationRepo, productRepo, userRepo)
	verificationUC := stock.NewVerificationUseCase(txRunner, recordRepo)
	inventoryUC := stock.NewInventoryUseCase(stockRepo, recordRepo, cacheClient, slipGenerator, log)

	locationUC := usecase.NewLocationUseCase(locationRepo, userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, locationRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MedStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		LocationUC:     locationUC,
		ProductUC:      productUC,
		AvailabilityUC: availabilityUC,
		InventoryUC:    inventoryUC,
		TransferUC:     transferUC,
		RequestUC:      requestUC,
		VerificationUC: verificationUC,
		JWTSecret:      cfg.JWT.Secret,
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
