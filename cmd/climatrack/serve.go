package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/climatrack/internal/api/http"
	"github.com/i474232898/climatrack/internal/config"
	"github.com/i474232898/climatrack/internal/logging"
	"github.com/i474232898/climatrack/internal/scheduler"
	"github.com/i474232898/climatrack/internal/store"
	"github.com/i474232898/climatrack/internal/weather"
	"github.com/i474232898/climatrack/internal/weather/sources"
)

type ServeCommand struct{}

func (c *ServeCommand) Execute(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logging.Setup(level, cfg.LogFormat)
	log := logging.Component("server")

	// Shared HTTP client for remote CSV sources.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxDatasets, cfg.StoreMaxAge)

	service := weather.NewService(memStore, cfg.Rules, log)

	// Scheduler that periodically reloads the configured sources.
	srcs := sources.ParseAll(httpClient, cfg.Sources, cfg.MaxUploadBytes)
	sched := scheduler.New(srcs, cfg.RefreshInterval, cfg.HTTPTimeout, service, log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "climatrack",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		BodyLimit:             int(cfg.MaxUploadBytes) + 64<<10,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "climatrack",
			"datasets": len(service.List()),
		})
	})

	httpapi.RegisterRoutes(app, service, cfg.MaxUploadBytes)

	go func() {
		log.WithField("port", cfg.Port).Info("listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

func init() {
	_, err := parser.AddCommand("serve",
		"runs the HTTP API",
		"Serves uploaded and configured weather datasets over HTTP. Configuration is read from the environment and an optional .env file.",
		&ServeCommand{})
	if err != nil {
		panic(err.Error())
	}
}
