package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/tienda-archivo/internal/application/usecase"
	"github.com/jhoicas/tienda-archivo/internal/infrastructure/filestore"
	httpRouter "github.com/jhoicas/tienda-archivo/internal/interfaces/http"
	"github.com/jhoicas/tienda-archivo/pkg/config"
	"github.com/jhoicas/tienda-archivo/pkg/logger"
)

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
		Str("data_dir", cfg.Store.DataDir).
		Bool("atomic_writes", cfg.Store.AtomicWrites).
		Msg("iniciando aplicación")

	storeOpts := filestore.Options{
		BaseDir:      cfg.Store.DataDir,
		AtomicWrites: cfg.Store.AtomicWrites,
		Logger:       log.Component("filestore"),
	}
	productStore, err := filestore.NewProductStore(storeOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("store de productos")
	}
	cartStore, err := filestore.NewCartStore(storeOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("store de carritos")
	}
	userStore, err := filestore.NewUserStore(storeOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("store de usuarios")
	}

	productUC := usecase.NewProductUseCase(productStore)
	cartUC := usecase.NewCartUseCase(cartStore, productStore, userStore)
	userUC := usecase.NewUserUseCase(userStore)

	if cfg.Store.Seed {
		created, err := productUC.EnsureSeed()
		if err != nil {
			log.Error().Err(err).Msg("producto inicial")
		} else if created {
			log.Info().Msg("catálogo vacío: producto inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.SerializeRequests())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		CartUC:    cartUC,
		UserUC:    userUC,
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
