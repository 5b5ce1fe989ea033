package weather

import (
	"fmt"
	"strings"
)

// TempUnit is a display unit for temperatures stored in Celsius.
type TempUnit string

const (
	Celsius    TempUnit = "celsius"
	Fahrenheit TempUnit = "fahrenheit"
	Kelvin     TempUnit = "kelvin"
)

// ParseTempUnit accepts a unit name or symbol; empty input means Celsius.
func ParseTempUnit(s string) (TempUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "celsius", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	case "k", "kelvin", "standard":
		return Kelvin, nil
	}
	return "", fmt.Errorf("unknown temperature unit %q", s)
}

// Symbol returns the display suffix.
func (u TempUnit) Symbol() string {
	switch u {
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	default:
		return "°C"
	}
}

// Next cycles Celsius -> Fahrenheit -> Kelvin -> Celsius.
func (u TempUnit) Next() TempUnit {
	switch u {
	case Celsius:
		return Fahrenheit
	case Fahrenheit:
		return Kelvin
	default:
		return Celsius
	}
}

// Convert converts a Celsius temperature to u.
func (u TempUnit) Convert(celsius float64) float64 {
	switch u {
	case Fahrenheit:
		return celsius*9/5 + 32
	case Kelvin:
		return celsius + 273.15
	default:
		return celsius
	}
}

// Format renders a Celsius temperature in u with one decimal.
func (u TempUnit) Format(celsius float64) string {
	return fmt.Sprintf("%.1f%s", u.Convert(celsius), u.Symbol())
}

// ToCelsius converts a temperature expressed in u to Celsius.
func (u TempUnit) ToCelsius(v float64) float64 {
	switch u {
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Kelvin:
		return v - 273.15
	default:
		return v
	}
}
