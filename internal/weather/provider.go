package weather

import "context"

// Fetcher abstracts the remote weather API. Each call is all-or-nothing:
// it returns a fully decoded payload or an error describing why not.
type Fetcher interface {
	FetchCurrentWeather(ctx context.Context, place, apiKey string) (CurrentWeather, error)
	FetchPollution(ctx context.Context, lat, lon float64, apiKey string) (Pollution, error)
	FetchForecast(ctx context.Context, lat, lon float64, apiKey string) (Forecast, error)
}
