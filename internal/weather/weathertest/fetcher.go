// Package weathertest provides an in-memory weather.Fetcher for tests.
package weathertest

import (
	"context"
	"sync"

	"github.com/i474232898/weather-cache/internal/weather"
)

// Fetcher is a scripted weather.Fetcher. Set the payload and error fields
// before use; calls are counted per kind.
type Fetcher struct {
	mu sync.Mutex

	Weather   weather.CurrentWeather
	Pollution weather.Pollution
	Forecast  weather.Forecast

	WeatherErr   error
	PollutionErr error
	ForecastErr  error

	WeatherCalls   int
	PollutionCalls int
	ForecastCalls  int

	// LastPlace and LastLat/LastLon record the most recent arguments.
	LastPlace  string
	LastLat    float64
	LastLon    float64
	LastAPIKey string
}

var _ weather.Fetcher = (*Fetcher)(nil)

// NewFetcher returns a Fetcher answering for a city at lat, lon.
func NewFetcher(city string, lat, lon float64) *Fetcher {
	coord := weather.Coord{Lat: lat, Lon: lon}
	return &Fetcher{
		Weather: weather.CurrentWeather{
			Name:    city,
			Coord:   coord,
			Main:    weather.MainReadings{Temp: 18.5, Humidity: 60},
			Weather: []weather.Description{{Main: "Clear", Description: "clear sky"}},
		},
		Pollution: weather.Pollution{
			Coord: coord,
			List:  []weather.PollutionReading{{Components: weather.Components{PM25: 5, PM10: 10}}},
		},
		Forecast: weather.Forecast{
			Cod:  "200",
			Cnt:  1,
			List: []weather.ForecastItem{{Dt: 1700000000, Main: weather.MainReadings{Temp: 17}}},
			City: weather.City{Name: city, Coord: coord},
		},
	}
}

func (f *Fetcher) FetchCurrentWeather(_ context.Context, place, apiKey string) (weather.CurrentWeather, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WeatherCalls++
	f.LastPlace, f.LastAPIKey = place, apiKey
	if f.WeatherErr != nil {
		return weather.CurrentWeather{}, f.WeatherErr
	}
	return f.Weather, nil
}

func (f *Fetcher) FetchPollution(_ context.Context, lat, lon float64, apiKey string) (weather.Pollution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PollutionCalls++
	f.LastLat, f.LastLon, f.LastAPIKey = lat, lon, apiKey
	if f.PollutionErr != nil {
		return weather.Pollution{}, f.PollutionErr
	}
	return f.Pollution, nil
}

func (f *Fetcher) FetchForecast(_ context.Context, lat, lon float64, apiKey string) (weather.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForecastCalls++
	f.LastLat, f.LastLon, f.LastAPIKey = lat, lon, apiKey
	if f.ForecastErr != nil {
		return weather.Forecast{}, f.ForecastErr
	}
	return f.Forecast, nil
}

// Calls returns the per-kind call counts under the lock.
func (f *Fetcher) Calls() (weatherCalls, pollutionCalls, forecastCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.WeatherCalls, f.PollutionCalls, f.ForecastCalls
}
