package weather

// Quality is a coarse air-quality label.
type Quality string

const (
	QualityGood     Quality = "Good"
	QualityFair     Quality = "Fair"
	QualityModerate Quality = "Moderate"
	QualityPoor     Quality = "Poor"
	QualityVeryPoor Quality = "Very Poor"
)

// Band upper bounds in μg/m3, lowest first.
var (
	so2Bands  = []float64{20, 80, 250, 350}
	no2Bands  = []float64{40, 70, 150, 200}
	pm10Bands = []float64{20, 50, 100, 200}
	pm25Bands = []float64{10, 25, 50, 75}
	o3Bands   = []float64{60, 100, 140, 180}
	coBands   = []float64{4400, 9400, 12400, 15400}
)

// AirQuality classifies the first reading of p. Each pollutant gets an index
// from 1 (Good) to 5 (Very Poor); the six indexes are averaged and truncated.
// It returns false when p has no readings.
func AirQuality(p Pollution) (Quality, bool) {
	if len(p.List) == 0 {
		return "", false
	}
	c := p.List[0].Components

	sum := band(c.SO2, so2Bands) +
		band(c.NO2, no2Bands) +
		band(c.PM10, pm10Bands) +
		band(c.PM25, pm25Bands) +
		band(c.O3, o3Bands) +
		band(c.CO, coBands)

	switch sum / 6 {
	case 1:
		return QualityGood, true
	case 2:
		return QualityFair, true
	case 3:
		return QualityModerate, true
	case 4:
		return QualityPoor, true
	default:
		return QualityVeryPoor, true
	}
}

// band returns the 1-based index of the first bound value lies below, or
// len(bounds)+1 when it exceeds them all.
func band(value float64, bounds []float64) int {
	for i, b := range bounds {
		if value < b {
			return i + 1
		}
	}
	return len(bounds) + 1
}
