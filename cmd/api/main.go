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

	"github.com/jhoicas/almacen-lite/internal/application/importer"
	"github.com/jhoicas/almacen-lite/internal/application/notification"
	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/excel"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/almacen-lite/internal/interfaces/http"
	"github.com/jhoicas/almacen-lite/pkg/config"
	"github.com/jhoicas/almacen-lite/pkg/logger"
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
		Str("data", cfg.Store.DataPath).
		Msg("iniciando aplicación")

	fileStore := persistence.NewFileStore(cfg.Store.DataPath)
	snap, err := fileStore.Load()
	if err != nil {
		// Arrancar con defaults antes que negarse a arrancar: el blob viejo
		// queda en disco para inspección manual.
		log.Warn().Err(err).Msg("blob persistido ilegible, arrancando con valores por defecto")
	}
	log.Info().Int("productos", len(snap.Products)).Msg("inventario cargado")

	notifLog := notification.NewLog()
	s := store.New(snap, notifLog, fileStore, log)

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
		Title:    "Almacén Lite API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:    s,
		Log:      notifLog,
		Exporter: excel.NewExporter(),
		Importer: importer.New(s),
		Labels:   pdf.NewLabelGenerator(),
	})

	// Chequeo periódico de inventario: stock bajo, agotados y vencimientos
	stopAlerts := make(chan struct{})
	if cfg.Alerts.Enabled {
		go func() {
			ticker := time.NewTicker(cfg.Alerts.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					s.CheckAlerts()
				case <-stopAlerts:
					return
				}
			}
		}()
		log.Info().Dur("intervalo", cfg.Alerts.Interval).Msg("chequeo periódico de alertas activo")
	}

	// Dejar rastro de cada cambio de configuración
	settingsCh, cancelSettings := s.SubscribeSettings()
	go func() {
		for cfg := range settingsCh {
			log.Info().
				Str("idioma", cfg.Language).
				Str("moneda", cfg.Currency).
				Msg("configuración actualizada")
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	close(stopAlerts)
	cancelSettings()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
