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

	"github.com/facturaec/emision-api/internal/application/billing"
	"github.com/facturaec/emision-api/internal/application/credits"
	"github.com/facturaec/emision-api/internal/application/session"
	infrasri "github.com/facturaec/emision-api/internal/infrastructure/sri"
	httpRouter "github.com/facturaec/emision-api/internal/interfaces/http"
	"github.com/facturaec/emision-api/pkg/config"
	"github.com/facturaec/emision-api/pkg/logger"
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
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	backend := infrasri.NewClient(cfg.Backend, log)

	sess := session.New(backend, log)
	store := billing.NewStore()
	refsUC := billing.NewReferenceUseCase(backend, log)
	draftsUC := billing.NewDraftUseCase(store, refsUC, log)
	submitUC := billing.NewSubmitUseCase(store, backend, log)

	// Monitor de créditos: refresco al arrancar y cada intervalo configurado,
	// con el token de la sesión activa del proceso.
	monitor := credits.NewMonitor(backend, sess.Token, cfg.Credits.RefreshInterval, log)
	monitor.Start(context.Background())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 45,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Emisión API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Drafts:  draftsUC,
		Submit:  submitUC,
		Refs:    refsUC,
		Credits: monitor,
		Session: sess,
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

	monitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
