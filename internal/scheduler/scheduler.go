package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-cache/internal/repository"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = 15 * time.Minute

const runTimeout = 30 * time.Second

// Updater refreshes every resource kind for a place.
type Updater interface {
	Update(ctx context.Context, place, apiKey string, force bool) repository.Snapshot
}

// CitySource names the city to keep warm.
type CitySource interface {
	LastCity() string
}

// Scheduler periodically warms the cache for the last searched city. Entries
// still inside their TTL are left alone, so most passes fetch nothing.
type Scheduler struct {
	scheduler *gocron.Scheduler
	updater   Updater
	cities    CitySource
	apiKey    string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, updater Updater, cities CitySource, apiKey string) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		updater:   updater,
		cities:    cities,
		apiKey:    apiKey,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.apiKey == "" {
		log.Println("scheduler: no API key configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce performs one refresh pass and returns its snapshot.
func (s *Scheduler) RunOnce(ctx context.Context) repository.Snapshot {
	city := s.cities.LastCity()
	log.Printf("scheduler: refreshing %s", city)

	snap := s.updater.Update(ctx, city, s.apiKey, false)

	if !snap.Weather.Found() {
		log.Printf("scheduler: weather refresh failed for %s: %v", city, snap.Weather.Err)
	}
	if !snap.Pollution.Found() {
		log.Printf("scheduler: pollution refresh failed for %s: %v", city, snap.Pollution.Err)
	}
	if !snap.Forecast.Found() {
		log.Printf("scheduler: forecast refresh failed for %s: %v", city, snap.Forecast.Err)
	}

	log.Printf("scheduler: completed refresh for %s (weather=%s pollution=%s forecast=%s)",
		city, snap.Weather.Source, snap.Pollution.Source, snap.Forecast.Source)
	return snap
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
