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

	httpapi "github.com/i474232898/weather-cache/internal/api/http"
	"github.com/i474232898/weather-cache/internal/config"
	"github.com/i474232898/weather-cache/internal/events"
	"github.com/i474232898/weather-cache/internal/prefs"
	"github.com/i474232898/weather-cache/internal/repository"
	"github.com/i474232898/weather-cache/internal/scheduler"
	"github.com/i474232898/weather-cache/internal/store"
	"github.com/i474232898/weather-cache/internal/weather"
	"github.com/i474232898/weather-cache/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("INFO: OPENWEATHER_API_KEY is not set; lookups will only succeed from cache")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache backend.
	cacheStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s cache store: %v", cfg.CacheBackend, err)
	}
	defer closeStore()

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	fetcher := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherUnits)

	opts := []repository.Option{
		repository.WithTTL(cfg.CacheTTL),
		repository.WithUnits(cfg.OpenWeatherUnits),
	}
	if cfg.KafkaBrokers != "" {
		publisher, err := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("failed to create kafka publisher: %v", err)
		}
		defer publisher.Close()
		opts = append(opts, repository.WithObserver(publisher))
	}
	repo := repository.New(cacheStore, fetcher, opts...)

	userPrefs, err := prefs.Open(cfg.CacheDir, cfg.DefaultCity)
	if err != nil {
		log.Fatalf("failed to open preferences: %v", err)
	}

	// Scheduler that keeps the last searched city warm.
	sched := scheduler.New(cfg.RefreshInterval, repo, userPrefs, cfg.OpenWeatherAPIKey)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	sourceUnit, err := weather.ParseTempUnit(cfg.OpenWeatherUnits)
	if err != nil {
		log.Fatalf("invalid OPENWEATHER_UNITS: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-cache",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          writeTimeout(cfg.HTTPTimeout),
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Repo:       repo,
		Prefs:      userPrefs,
		APIKey:     cfg.OpenWeatherAPIKey,
		SourceUnit: sourceUnit,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s (cache=%s, ttl=%s)", cfg.Port, cfg.CacheBackend, cfg.CacheTTL)

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// writeTimeout bounds a response. /summary makes up to three sequential
// upstream calls, each limited by httpTimeout.
func writeTimeout(httpTimeout time.Duration) time.Duration {
	return 3*httpTimeout + 10*time.Second
}

// openStore builds the configured cache backend and its cleanup func.
func openStore(ctx context.Context, cfg *config.AppConfig) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case config.BackendMemory:
		return store.NewMemoryStore(), noop, nil
	case config.BackendRedis:
		s, err := store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("ERROR: closing redis: %v", err)
			}
		}, nil
	case config.BackendPostgres:
		s, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		s, err := store.NewFileStore(cfg.CacheDir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}
}
