package weather

import (
	"strings"

	"github.com/i474232898/weather-cache/internal/common"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Coord is a coordinate pair as echoed by the API.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Description is one entry of the API's "weather" array.
type Description struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainReadings holds the temperature, pressure and humidity block.
type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	SeaLevel  int     `json:"sea_level,omitempty"`
	GrndLevel int     `json:"grnd_level,omitempty"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

type Clouds struct {
	All int `json:"all"`
}

// Sys carries country and sun times in unix seconds.
type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentWeather is the current-conditions payload for a place.
type CurrentWeather struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Coord      Coord         `json:"coord"`
	Weather    []Description `json:"weather"`
	Main       MainReadings  `json:"main"`
	Visibility int           `json:"visibility"`
	Wind       Wind          `json:"wind"`
	Clouds     Clouds        `json:"clouds"`
	Dt         int64         `json:"dt"`
	Sys        Sys           `json:"sys"`
	Timezone   int           `json:"timezone"`
}

// Condition maps the first weather group to a normalized condition.
func (w CurrentWeather) Condition() Condition {
	if len(w.Weather) == 0 {
		return ConditionUnknown
	}
	switch w.Weather[0].Main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm":
		return ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke":
		return ConditionMist
	}

	// Unlisted groups fall back to the free-text description.
	desc := strings.ToLower(w.Weather[0].Description)
	switch {
	case common.HasAny(desc, "thunder"):
		return ConditionStorm
	case common.HasAny(desc, "rain", "drizzle", "shower"):
		return ConditionRain
	case common.HasAny(desc, "snow", "sleet"):
		return ConditionSnow
	case common.HasAny(desc, "fog", "mist", "haze", "dust", "sand", "ash"):
		return ConditionMist
	case common.HasAny(desc, "cloud"):
		return ConditionCloudy
	case common.HasAny(desc, "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}

// Components are pollutant concentrations in μg/m3.
type Components struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

type PollutionReading struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components Components `json:"components"`
}

// Pollution is the air-pollution payload for a coordinate pair.
type Pollution struct {
	Coord Coord              `json:"coord"`
	List  []PollutionReading `json:"list"`
}

// ForecastItem is one 3-hour step of the forecast.
type ForecastItem struct {
	Dt         int64         `json:"dt"`
	Main       MainReadings  `json:"main"`
	Weather    []Description `json:"weather"`
	Clouds     Clouds        `json:"clouds"`
	Wind       Wind          `json:"wind"`
	Visibility int           `json:"visibility"`
	Pop        float64       `json:"pop"`
	DtTxt      string        `json:"dt_txt"`
}

type City struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Coord      Coord  `json:"coord"`
	Country    string `json:"country"`
	Population int    `json:"population"`
	Timezone   int    `json:"timezone"`
	Sunrise    int64  `json:"sunrise"`
	Sunset     int64  `json:"sunset"`
}

// Forecast is the multi-step forecast payload for a coordinate pair.
type Forecast struct {
	Cod     string         `json:"cod"`
	Message int            `json:"message"`
	Cnt     int            `json:"cnt"`
	List    []ForecastItem `json:"list"`
	City    City           `json:"city"`
}
