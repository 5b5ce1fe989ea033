package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // keep a developer .env out of the test
	for _, key := range []string{
		"OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL", "OPENWEATHER_UNITS", "HTTP_TIMEOUT",
		"CACHE_TTL", "CACHE_BACKEND", "CACHE_DIR", "REDIS_URL", "DATABASE_URL",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "REFRESH_INTERVAL", "DEFAULT_CITY", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected 1h TTL, got %s", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.RefreshInterval != 15*time.Minute {
		t.Fatalf("unexpected durations: %s %s", cfg.HTTPTimeout, cfg.RefreshInterval)
	}
	if cfg.CacheBackend != BackendFile || cfg.CacheDir != "./data" {
		t.Fatalf("unexpected cache settings: %s %s", cfg.CacheBackend, cfg.CacheDir)
	}
	if cfg.OpenWeatherUnits != "metric" || cfg.OpenWeatherBaseURL != "https://api.openweathermap.org/data/2.5" {
		t.Fatalf("unexpected api settings: %s %s", cfg.OpenWeatherUnits, cfg.OpenWeatherBaseURL)
	}
	if cfg.KafkaTopic != "weather-updates" || cfg.KafkaBrokers != "" {
		t.Fatalf("unexpected kafka settings: %q %q", cfg.KafkaTopic, cfg.KafkaBrokers)
	}
	if cfg.DefaultCity != "Warsaw" || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: %s %s", cfg.DefaultCity, cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("HTTP_TIMEOUT", "5")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DEFAULT_CITY", "Gdansk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("expected 30m TTL, got %s", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("expected bare seconds to parse, got %s", cfg.HTTPTimeout)
	}
	if cfg.CacheBackend != BackendRedis || cfg.DefaultCity != "Gdansk" {
		t.Fatalf("unexpected overrides: %s %s", cfg.CacheBackend, cfg.DefaultCity)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad ttl":           {"CACHE_TTL": "soon"},
		"unknown backend":   {"CACHE_BACKEND": "mongo"},
		"redis without url": {"CACHE_BACKEND": "redis", "REDIS_URL": ""},
		"pg without url":    {"CACHE_BACKEND": "postgres", "DATABASE_URL": ""},
		"bad port":          {"PORT": "http"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
