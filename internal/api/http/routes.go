package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-cache/internal/prefs"
	"github.com/i474232898/weather-cache/internal/repository"
	"github.com/i474232898/weather-cache/internal/weather"
	"github.com/i474232898/weather-cache/internal/weather/providers"
)

var validate = validator.New()

// Deps are the collaborators the routes need.
type Deps struct {
	Repo   *repository.Repository
	Prefs  *prefs.Prefs
	APIKey string
	// SourceUnit is the unit the upstream API reports temperatures in.
	SourceUnit weather.TempUnit
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.SourceUnit == "" {
		d.SourceUnit = weather.Celsius
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-cache",
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		unit, err := weather.ParseTempUnit(c.Query("units"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := d.Repo.GetCurrentWeather(c.UserContext(), q.City, d.APIKey, q.Refresh)
		if !res.Found() {
			return fetchError(res.Err)
		}
		body := currentResponse(res, d.SourceUnit, unit)
		if d.Prefs != nil {
			body["favorite"] = d.Prefs.IsFavorite(q.City)
		}
		return c.JSON(body)
	})

	v1.Get("/pollution", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := d.Repo.GetPollution(c.UserContext(), *q.Lat, *q.Lon, d.APIKey, q.Refresh)
		if !res.Found() {
			return fetchError(res.Err)
		}
		return c.JSON(pollutionResponse(res))
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := d.Repo.GetForecast(c.UserContext(), *q.Lat, *q.Lon, d.APIKey, q.Refresh)
		if !res.Found() {
			return fetchError(res.Err)
		}
		return c.JSON(fiber.Map{
			"source": res.Source.String(),
			"data":   res.Value,
		})
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		unit, err := weather.ParseTempUnit(c.Query("units"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap := d.Repo.Update(c.UserContext(), q.City, d.APIKey, q.Refresh)
		if !snap.Weather.Found() {
			return fetchError(snap.Weather.Err)
		}

		if d.Prefs != nil {
			if err := d.Prefs.SetLastCity(q.City); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to store last searched city")
			}
		}

		body := fiber.Map{
			"city":    snap.Weather.Value.Name,
			"weather": currentResponse(snap.Weather, d.SourceUnit, unit),
		}
		if d.Prefs != nil {
			body["favorite"] = d.Prefs.IsFavorite(q.City)
		}
		if snap.Pollution.Found() {
			body["pollution"] = pollutionResponse(snap.Pollution)
		} else {
			body["pollution"] = partialError(snap.Pollution.Err)
		}
		if snap.Forecast.Found() {
			body["forecast"] = fiber.Map{"source": snap.Forecast.Source.String(), "data": snap.Forecast.Value}
		} else {
			body["forecast"] = partialError(snap.Forecast.Err)
		}
		return c.JSON(body)
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		if d.Prefs == nil {
			return fiber.NewError(fiber.StatusNotImplemented, "preferences are not enabled")
		}
		return c.JSON(fiber.Map{
			"lastCity":  d.Prefs.LastCity(),
			"favorites": d.Prefs.Favorites(),
		})
	})

	v1.Post("/favorites/:city", func(c *fiber.Ctx) error {
		if d.Prefs == nil {
			return fiber.NewError(fiber.StatusNotImplemented, "preferences are not enabled")
		}
		city, err := url.PathUnescape(c.Params("city"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city")
		}

		added, err := d.Prefs.ToggleFavorite(city)
		if err != nil {
			if errors.Is(err, prefs.ErrEmptyCity) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update favorites")
		}
		return c.JSON(fiber.Map{
			"city":     city,
			"favorite": added,
		})
	})
}

// ErrorHandler renders errors as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// fetchError maps the reason a lookup came back empty to an HTTP error.
func fetchError(err error) error {
	code, msg := classify(err)
	return fiber.NewError(code, msg)
}

func partialError(err error) fiber.Map {
	code, msg := classify(err)
	return fiber.Map{"error": true, "status": code, "message": msg}
}

func classify(err error) (int, string) {
	var se *providers.StatusError
	switch {
	case errors.Is(err, repository.ErrEmptyPlace):
		return fiber.StatusBadRequest, "city is required"
	case errors.Is(err, providers.ErrNoAPIKey):
		return fiber.StatusInternalServerError, "weather API key is not configured"
	case errors.Is(err, providers.ErrTransport), errors.Is(err, providers.ErrCircuitOpen):
		return fiber.StatusServiceUnavailable, "weather service is unreachable"
	case errors.As(err, &se) && se.StatusCode == http.StatusNotFound:
		return fiber.StatusNotFound, "location not found"
	case errors.Is(err, repository.ErrNoLocation):
		return fiber.StatusNotFound, "location not found"
	case errors.Is(err, providers.ErrStatus), errors.Is(err, providers.ErrDecode):
		return fiber.StatusBadGateway, "weather service returned an invalid response"
	default:
		return fiber.StatusBadGateway, "weather data unavailable"
	}
}

func currentResponse(res repository.Result[weather.CurrentWeather], from, to weather.TempUnit) fiber.Map {
	celsius := from.ToCelsius(res.Value.Main.Temp)
	return fiber.Map{
		"source":      res.Source.String(),
		"city":        res.Value.Name,
		"condition":   res.Value.Condition(),
		"temperature": to.Convert(celsius),
		"unit":        to,
		"display":     to.Format(celsius),
		"data":        res.Value,
	}
}

func pollutionResponse(res repository.Result[weather.Pollution]) fiber.Map {
	body := fiber.Map{
		"source": res.Source.String(),
		"data":   res.Value,
	}
	if q, ok := weather.AirQuality(res.Value); ok {
		body["airQuality"] = q
	}
	return body
}

// cityQuery holds query parameters for place-keyed endpoints.
type cityQuery struct {
	City    string `validate:"required,max=100"`
	Refresh bool
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{
		City:    strings.TrimSpace(c.Query("city")),
		Refresh: c.QueryBool("refresh"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// coordQuery holds query parameters for coordinate-keyed endpoints.
type coordQuery struct {
	Lat     *float64 `validate:"required,gte=-90,lte=90"`
	Lon     *float64 `validate:"required,gte=-180,lte=180"`
	Refresh bool
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	q := coordQuery{Refresh: c.QueryBool("refresh")}

	var err error
	if q.Lat, err = parseFloatParam(c, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = parseFloatParam(c, "lon"); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// parseFloatParam returns nil for a missing parameter so validation can
// report it as required.
func parseFloatParam(c *fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + "; must be a number")
	}
	return &v, nil
}
