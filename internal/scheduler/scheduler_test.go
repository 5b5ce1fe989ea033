package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-cache/internal/repository"
	"github.com/i474232898/weather-cache/internal/store"
	"github.com/i474232898/weather-cache/internal/weather/weathertest"
)

type staticCity string

func (c staticCity) LastCity() string { return string(c) }

func TestRunOnceRefreshesLastCity(t *testing.T) {
	fetcher := weathertest.NewFetcher("Gdansk", 54.35, 18.65)
	clock := clockwork.NewFakeClock()
	repo := repository.New(store.NewMemoryStore(), fetcher, repository.WithClock(clock))

	s := New(time.Minute, repo, staticCity("Gdansk"), "key")

	snap := s.RunOnce(context.Background())
	if snap.Weather.Source != repository.SourceRemote {
		t.Fatalf("expected first pass to fetch, got %s", snap.Weather.Source)
	}
	if fetcher.LastPlace != "Gdansk" {
		t.Fatalf("expected refresh for Gdansk, got %q", fetcher.LastPlace)
	}

	// Within the TTL the next pass is served from cache.
	clock.Advance(15 * time.Minute)
	snap = s.RunOnce(context.Background())
	if snap.Weather.Source != repository.SourceCache || snap.Forecast.Source != repository.SourceCache {
		t.Fatalf("expected cached pass, got %s/%s", snap.Weather.Source, snap.Forecast.Source)
	}
	if w, p, f := fetcher.Calls(); w != 1 || p != 1 || f != 1 {
		t.Fatalf("expected one fetch per kind, got %d %d %d", w, p, f)
	}
}

func TestStartWithoutAPIKeyIsNoop(t *testing.T) {
	s := New(0, nil, staticCity("Warsaw"), "")
	if s.interval != DefaultInterval {
		t.Fatalf("expected default interval, got %s", s.interval)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
