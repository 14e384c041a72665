package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	formatters, err := weather.NewFormatters(cfg.Locale)
	if err != nil {
		log.Fatalf("failed to build formatters: %v", err)
	}

	// Shared HTTP client and rate limit for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	httpCfg := providers.NewHTTPClientConfig(httpClient, cfg.OutboundRateLimit, cfg.OutboundRateBurst)

	// Forecast source and geocoding backend (circuit breaker per provider, no retries).
	source := providers.NewOpenMeteoProvider(httpCfg, cfg.ForecastBaseURL)

	var backend weather.GeocodingBackend
	if cfg.GoogleGeocoderAPIKey != "" {
		backend = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey, cfg.HTTPTimeout)
	} else {
		backend = providers.NewOpenMeteoGeocoder(httpCfg, cfg.GeocodingBaseURL)
	}
	log.Printf("INFO: forecast via %s, geocoding via %s", source.Name(), backend.Name())

	dash := dashboard.New(
		weather.NewResolver(backend),
		weather.NewService(source, weather.NewNormalizer(formatters)),
		store.NewMemoryStore(cfg.DefaultLocation),
		formatters,
		cfg.DefaultLocation,
	)

	// Initial load of the default location. A failure is shown on the dashboard.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*2)
		defer cancel()
		if err := dash.LoadDefault(ctx); err != nil {
			log.Printf("WARN: initial forecast load failed: %v", err)
		}
	}()

	// Scheduler that periodically refreshes the shown location.
	sched := scheduler.New(dash, cfg.RefreshInterval, cfg.HTTPTimeout*2)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout * 3,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, dash)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
