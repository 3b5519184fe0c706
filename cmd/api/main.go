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

	"github.com/jhoicas/garantias-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/garantias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/garantias-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/garantias-api/internal/interfaces/http"
	"github.com/jhoicas/garantias-api/pkg/config"
	"github.com/jhoicas/garantias-api/pkg/logger"
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
		Str("auth_mode", cfg.Auth.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warrantyRepo := postgres.NewWarrantyRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	logRepo := postgres.NewLocationLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	receiptGen := infrapdf.NewReceiptGenerator(cfg.App.Name)
	warrantyUC := usecase.NewWarrantyUseCase(warrantyRepo, locationRepo, logRepo, txRunner, receiptGen, cfg.Warranty)
	locationUC := usecase.NewLocationUseCase(locationRepo, warrantyRepo, logRepo)
	logUC := usecase.NewLocationLogUseCase(logRepo, locationRepo, warrantyRepo)

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
		Title:    "Garantías API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarrantyUC: warrantyUC,
		LocationUC: locationUC,
		LogUC:      logUC,
		Identity:   httpRouter.NewIdentityResolver(cfg.Auth),
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
