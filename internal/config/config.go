package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-cache/internal/events"
	"github.com/i474232898/weather-cache/internal/freshness"
	"github.com/i474232898/weather-cache/internal/prefs"
	"github.com/i474232898/weather-cache/internal/weather/providers"
)

// Cache backends selectable through CACHE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherUnits   string

	// HTTPTimeout bounds each outbound API call.
	HTTPTimeout time.Duration

	// CacheTTL is the freshness window shared by every resource kind.
	CacheTTL     time.Duration
	CacheBackend string
	CacheDir     string // also holds the preferences file

	RedisURL    string
	DatabaseURL string

	KafkaBrokers string // comma-separated; empty disables publishing
	KafkaTopic   string

	// RefreshInterval controls how often the last searched city is warmed.
	RefreshInterval time.Duration
	DefaultCity     string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherBaseURL)
	cfg.OpenWeatherUnits = getenvDefault("OPENWEATHER_UNITS", "metric")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", freshness.DefaultTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}

	cfg.CacheBackend = strings.ToLower(getenvDefault("CACHE_BACKEND", BackendFile))
	cfg.CacheDir = getenvDefault("CACHE_DIR", "./data")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	switch cfg.CacheBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for CACHE_BACKEND=%s", cfg.CacheBackend)
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for CACHE_BACKEND=%s", cfg.CacheBackend)
		}
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q", cfg.CacheBackend)
	}

	cfg.KafkaBrokers = os.Getenv("KAFKA_BROKERS")
	cfg.KafkaTopic = getenvDefault("KAFKA_TOPIC", events.DefaultTopic)

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", prefs.DefaultCity)
	cfg.Port = getenvDefault("PORT", "8080")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvDuration accepts Go durations ("90s", "1h") or bare seconds.
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
