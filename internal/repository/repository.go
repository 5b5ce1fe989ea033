// Package repository implements cache-aside access to the weather API: each
// resource kind has one persisted slot which is served while fresh and for the
// same identity, and replaced by a remote fetch otherwise.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-cache/internal/freshness"
	"github.com/i474232898/weather-cache/internal/store"
	"github.com/i474232898/weather-cache/internal/weather"
)

// Repository composes a Store, the freshness Policy and a Fetcher.
type Repository struct {
	store    store.Store
	fetcher  weather.Fetcher
	policy   freshness.Policy
	clock    clockwork.Clock
	observer Observer
	units    string
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(r *Repository) { r.clock = c }
}

// WithTTL sets the freshness window for every kind.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) { r.policy = freshness.NewPolicy(ttl) }
}

// WithUnits sets the unit system the fetcher requests payloads in. Cached
// weather and forecast entries fetched in other units are not served.
func WithUnits(units string) Option {
	return func(r *Repository) {
		if units != "" {
			r.units = units
		}
	}
}

// WithObserver registers an observer for lookup outcomes.
func WithObserver(o Observer) Option {
	return func(r *Repository) {
		if o != nil {
			r.observer = o
		}
	}
}

// DefaultUnits matches the fetcher's default unit system.
const DefaultUnits = "metric"

// New creates a Repository with the default one-hour TTL and the real clock.
func New(s store.Store, f weather.Fetcher, opts ...Option) *Repository {
	r := &Repository{
		store:    s,
		fetcher:  f,
		policy:   freshness.NewPolicy(freshness.DefaultTTL),
		clock:    clockwork.NewRealClock(),
		observer: NoopObserver{},
		units:    DefaultUnits,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetCurrentWeather returns current conditions for place.
func (r *Repository) GetCurrentWeather(ctx context.Context, place, apiKey string, forceRefresh bool) Result[weather.CurrentWeather] {
	id := freshness.PlaceIdentity(place)
	if id.Place() == "" {
		return Result[weather.CurrentWeather]{Err: ErrEmptyPlace}
	}
	return lookup(ctx, r, store.KindWeather, id, r.units, forceRefresh,
		func(ctx context.Context) (weather.CurrentWeather, error) {
			return r.fetcher.FetchCurrentWeather(ctx, place, apiKey)
		})
}

// GetPollution returns the air-pollution reading at lat, lon.
func (r *Repository) GetPollution(ctx context.Context, lat, lon float64, apiKey string, forceRefresh bool) Result[weather.Pollution] {
	return lookup(ctx, r, store.KindPollution, freshness.CoordIdentity(lat, lon), "", forceRefresh,
		func(ctx context.Context) (weather.Pollution, error) {
			return r.fetcher.FetchPollution(ctx, lat, lon, apiKey)
		})
}

// GetForecast returns the forecast at lat, lon.
func (r *Repository) GetForecast(ctx context.Context, lat, lon float64, apiKey string, forceRefresh bool) Result[weather.Forecast] {
	return lookup(ctx, r, store.KindForecast, freshness.CoordIdentity(lat, lon), r.units, forceRefresh,
		func(ctx context.Context) (weather.Forecast, error) {
			return r.fetcher.FetchForecast(ctx, lat, lon, apiKey)
		})
}

// lookup is the cache-aside algorithm shared by every kind. units is empty
// for kinds whose payload does not depend on the unit system.
func lookup[T any](
	ctx context.Context,
	r *Repository,
	kind store.Kind,
	id freshness.Identity,
	units string,
	force bool,
	fetch func(context.Context) (T, error),
) Result[T] {
	entry := readEntry[T](ctx, r.store, kind)
	if entry != nil && entry.Units != units {
		log.Printf("DEBUG: repository: cached %s is in %q units, want %q", kind, entry.Units, units)
		entry = nil
	}

	var stamp *freshness.Stamp
	if entry != nil {
		stamp = &entry.Stamp
	}

	if r.policy.Decide(stamp, id, r.clock.Now(), force) == freshness.Hit {
		r.observer.Hit(kind, id)
		return Result[T]{Value: entry.Payload, Source: SourceCache}
	}
	r.observer.Miss(kind, id, force)

	fresh, err := fetch(ctx)
	if err != nil {
		log.Printf("INFO: repository: %s fetch for %s failed: %v", kind, id, err)
		return Result[T]{Err: err}
	}

	now := r.clock.Now()
	data, err := json.Marshal(fresh)
	if err != nil {
		// Unreachable for the API payload types; still return what we fetched.
		log.Printf("ERROR: repository: encode %s payload: %v", kind, err)
		return Result[T]{Value: fresh, Source: SourceRemote}
	}

	rec := newRecord(id, now, data, units)
	if err := r.store.Write(ctx, kind, rec); err != nil {
		log.Printf("ERROR: repository: persist %s for %s: %v", kind, id, err)
	}
	r.observer.Refreshed(kind, id, now, data)

	return Result[T]{Value: fresh, Source: SourceRemote}
}

// readEntry loads and decodes a slot. Any failure is an absent entry.
func readEntry[T any](ctx context.Context, s store.Store, kind store.Kind) *Entry[T] {
	rec, err := s.Read(ctx, kind)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR: repository: read %s: %v", kind, err)
		}
		return nil
	}

	entry, err := decodeEntry[T](rec)
	if err != nil {
		log.Printf("ERROR: repository: decode %s: %v", kind, err)
		return nil
	}
	return entry
}

func decodeEntry[T any](rec store.Record) (*Entry[T], error) {
	var id freshness.Identity
	switch {
	case rec.Lat != nil && rec.Lon != nil:
		id = freshness.CoordIdentity(*rec.Lat, *rec.Lon)
	case rec.CityName != "":
		id = freshness.PlaceIdentity(rec.CityName)
	default:
		return nil, fmt.Errorf("%w: record has no identity", store.ErrCorrupt)
	}

	if rec.Data == "" || rec.Data == "null" {
		return nil, fmt.Errorf("%w: record has no payload", store.ErrCorrupt)
	}

	var payload T
	if err := json.Unmarshal([]byte(rec.Data), &payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", store.ErrCorrupt, err)
	}

	return &Entry[T]{
		Payload: payload,
		Stamp:   freshness.Stamp{FetchedAtMillis: rec.Timestamp, Identity: id},
		Units:   rec.Units,
	}, nil
}

func newRecord(id freshness.Identity, fetchedAt time.Time, data []byte, units string) store.Record {
	rec := store.Record{
		Timestamp: fetchedAt.UnixMilli(),
		Data:      string(data),
		Units:     units,
	}
	if id.IsCoords() {
		lat, lon := id.Coords()
		rec.Lat, rec.Lon = &lat, &lon
	} else {
		rec.CityName = id.Place()
	}
	return rec
}
