package weather

import (
	"math"
	"testing"
)

func TestAirQuality(t *testing.T) {
	tests := []struct {
		name       string
		components Components
		expect     Quality
	}{
		{"clean air", Components{}, QualityGood},
		{
			"fair",
			Components{SO2: 30, NO2: 50, PM10: 30, PM25: 15, O3: 70, CO: 5000},
			QualityFair,
		},
		{
			"mixed truncates down",
			Components{SO2: 300, NO2: 180, PM10: 30, PM25: 15, O3: 70, CO: 5000},
			QualityFair,
		},
		{
			"poor",
			Components{SO2: 300, NO2: 180, PM10: 150, PM25: 60, O3: 150, CO: 13000},
			QualityPoor,
		},
		{
			"very poor",
			Components{SO2: 400, NO2: 250, PM10: 250, PM25: 90, O3: 200, CO: 16000},
			QualityVeryPoor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pollution{List: []PollutionReading{{Components: tt.components}}}
			got, ok := AirQuality(p)
			if !ok {
				t.Fatal("expected a classification")
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestAirQualityNoReadings(t *testing.T) {
	if _, ok := AirQuality(Pollution{}); ok {
		t.Fatal("expected no classification without readings")
	}
}

func TestTempUnitConvert(t *testing.T) {
	if got := Fahrenheit.Convert(100); got != 212 {
		t.Fatalf("expected 212, got %v", got)
	}
	if got := Kelvin.Convert(0); math.Abs(got-273.15) > 1e-9 {
		t.Fatalf("expected 273.15, got %v", got)
	}
	if got := Fahrenheit.ToCelsius(212); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := Kelvin.ToCelsius(273.15); math.Abs(got) > 1e-9 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Celsius.Format(21.456); got != "21.5°C" {
		t.Fatalf("expected 21.5°C, got %s", got)
	}
}

func TestTempUnitCycle(t *testing.T) {
	u := Celsius
	for _, expect := range []TempUnit{Fahrenheit, Kelvin, Celsius} {
		u = u.Next()
		if u != expect {
			t.Fatalf("expected %s, got %s", expect, u)
		}
	}
}

func TestParseTempUnit(t *testing.T) {
	for in, expect := range map[string]TempUnit{"": Celsius, "F": Fahrenheit, "kelvin": Kelvin, "metric": Celsius} {
		got, err := ParseTempUnit(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if got != expect {
			t.Fatalf("expected %s for %q, got %s", expect, in, got)
		}
	}
	if _, err := ParseTempUnit("rankine"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestCurrentWeatherCondition(t *testing.T) {
	w := CurrentWeather{Weather: []Description{{Main: "Drizzle"}}}
	if got := w.Condition(); got != ConditionRain {
		t.Fatalf("expected rain, got %s", got)
	}
	if got := (CurrentWeather{}).Condition(); got != ConditionUnknown {
		t.Fatalf("expected unknown, got %s", got)
	}
}

func TestConditionFallsBackToDescription(t *testing.T) {
	w := CurrentWeather{Weather: []Description{{Main: "Squall", Description: "squalls with light rain"}}}
	if got := w.Condition(); got != ConditionRain {
		t.Fatalf("expected rain, got %s", got)
	}
	w = CurrentWeather{Weather: []Description{{Main: "Dust", Description: "sand/dust whirls"}}}
	if got := w.Condition(); got != ConditionMist {
		t.Fatalf("expected mist, got %s", got)
	}
}
