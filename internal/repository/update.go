package repository

import (
	"context"

	"github.com/i474232898/weather-cache/internal/weather"
)

// Snapshot bundles the three lookups of one Update.
type Snapshot struct {
	Weather   Result[weather.CurrentWeather]
	Pollution Result[weather.Pollution]
	Forecast  Result[weather.Forecast]
}

// Update refreshes everything known about place: current weather first, then
// pollution and forecast at the coordinates the weather response reports.
// The three lookups are independent; one may succeed while another fails.
func (r *Repository) Update(ctx context.Context, place, apiKey string, force bool) Snapshot {
	var snap Snapshot

	snap.Weather = r.GetCurrentWeather(ctx, place, apiKey, force)
	if !snap.Weather.Found() {
		snap.Pollution = Result[weather.Pollution]{Err: ErrNoLocation}
		snap.Forecast = Result[weather.Forecast]{Err: ErrNoLocation}
		return snap
	}

	lat, lon := snap.Weather.Value.Coord.Lat, snap.Weather.Value.Coord.Lon
	snap.Pollution = r.GetPollution(ctx, lat, lon, apiKey, force)
	snap.Forecast = r.GetForecast(ctx, lat, lon, apiKey, force)
	return snap
}
