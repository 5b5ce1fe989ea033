package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-cache/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements weather.Fetcher for OpenWeatherMap.
type OpenWeatherProvider struct {
	client  *http.Client
	baseURL string
	units   string

	weatherCB   *gobreaker.CircuitBreaker
	pollutionCB *gobreaker.CircuitBreaker
	forecastCB  *gobreaker.CircuitBreaker
}

var _ weather.Fetcher = (*OpenWeatherProvider)(nil)

// NewOpenWeatherProvider builds a provider. An empty baseURL selects the
// public API and empty units selects "metric".
func NewOpenWeatherProvider(client *http.Client, baseURL, units string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	if units == "" {
		units = "metric"
	}

	return &OpenWeatherProvider{
		client:      client,
		baseURL:     strings.TrimRight(baseURL, "/"),
		units:       units,
		weatherCB:   newBreaker("openweather-weather"),
		pollutionCB: newBreaker("openweather-pollution"),
		forecastCB:  newBreaker("openweather-forecast"),
	}
}

// FetchCurrentWeather calls GET /weather?q=<place>&units=<units>&appid=<key>.
func (p *OpenWeatherProvider) FetchCurrentWeather(ctx context.Context, place, apiKey string) (weather.CurrentWeather, error) {
	var out weather.CurrentWeather
	if apiKey == "" {
		return out, ErrNoAPIKey
	}

	values := url.Values{}
	values.Set("q", place)
	values.Set("units", p.units)
	values.Set("appid", apiKey)

	if err := getJSON(ctx, p.client, p.weatherCB, p.endpoint("weather", values), &out); err != nil {
		return weather.CurrentWeather{}, fmt.Errorf("current weather for %q: %w", place, err)
	}
	return out, nil
}

// FetchPollution calls GET /air_pollution?lat=..&lon=..&appid=<key>.
func (p *OpenWeatherProvider) FetchPollution(ctx context.Context, lat, lon float64, apiKey string) (weather.Pollution, error) {
	var out weather.Pollution
	if apiKey == "" {
		return out, ErrNoAPIKey
	}

	values := coordValues(lat, lon)
	values.Set("appid", apiKey)

	if err := getJSON(ctx, p.client, p.pollutionCB, p.endpoint("air_pollution", values), &out); err != nil {
		return weather.Pollution{}, fmt.Errorf("pollution for %g,%g: %w", lat, lon, err)
	}
	return out, nil
}

// FetchForecast calls GET /forecast?lat=..&lon=..&appid=<key>&units=<units>.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, lat, lon float64, apiKey string) (weather.Forecast, error) {
	var out weather.Forecast
	if apiKey == "" {
		return out, ErrNoAPIKey
	}

	values := coordValues(lat, lon)
	values.Set("appid", apiKey)
	values.Set("units", p.units)

	if err := getJSON(ctx, p.client, p.forecastCB, p.endpoint("forecast", values), &out); err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast for %g,%g: %w", lat, lon, err)
	}
	return out, nil
}

func (p *OpenWeatherProvider) endpoint(path string, values url.Values) string {
	return fmt.Sprintf("%s/%s?%s", p.baseURL, path, values.Encode())
}

// coordValues formats coordinates with the shortest exact representation so
// the API sees the same numbers the caller passed.
func coordValues(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return values
}
