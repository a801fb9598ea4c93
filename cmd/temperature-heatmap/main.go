package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/temperature-heatmap/internal/api/http"
	"github.com/i474232898/temperature-heatmap/internal/config"
	"github.com/i474232898/temperature-heatmap/internal/dataset"
	"github.com/i474232898/temperature-heatmap/internal/dataset/sources"
	"github.com/i474232898/temperature-heatmap/internal/logger"
	"github.com/i474232898/temperature-heatmap/internal/scheduler"
	"github.com/i474232898/temperature-heatmap/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Shared HTTP client for outbound dataset fetches.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// A local file wins over the remote document.
	var source dataset.Source
	if cfg.DatasetFile != "" {
		source = sources.NewFileSource(cfg.DatasetFile)
	} else {
		source = sources.NewRemoteSource(httpClient, cfg.DatasetURL)
	}

	// Core service orchestrating source, store and chart assembly.
	service := dataset.NewService(memStore, source, nil)

	// Scheduler that periodically refreshes the dataset.
	sched := scheduler.New(cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "temperature-heatmap",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error("%s %s: %v", c.Method(), c.Path(), err)
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":  "ok",
			"service": "temperature-heatmap",
			"source":  service.SourceName(),
		}
		if snapshot, err := service.Latest(); err == nil {
			status["snapshot"] = snapshot.ID
			status["fetchedAt"] = snapshot.FetchedAt
		}
		return c.JSON(status)
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		logger.Info("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown: %v", err)
	}
}
