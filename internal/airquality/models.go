package airquality

import (
	"fmt"
	"math"
)

// Pollutant names one of the AQI columns carried by every reading.
type Pollutant string

const (
	PollutantO3  Pollutant = "O3 AQI"
	PollutantCO  Pollutant = "CO AQI"
	PollutantSO2 Pollutant = "SO2 AQI"
	PollutantNO2 Pollutant = "NO2 AQI"
)

// Pollutants lists the supported pollutant columns in display order.
var Pollutants = []Pollutant{PollutantO3, PollutantCO, PollutantSO2, PollutantNO2}

// ParsePollutant validates a pollutant column name.
func ParsePollutant(name string) (Pollutant, error) {
	for _, p := range Pollutants {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown pollutant %q", name)
}

// Column names shared by every reading source.
const (
	ColumnDate  = "Date"
	ColumnState = "State"
	ColumnCity  = "City"
)

// Level is a single pollutant measurement. Valid is false when the source
// had no numeric value for it.
type Level struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Measured returns a valid Level.
func Measured(v float64) Level {
	return Level{Value: v, Valid: true}
}

// Usable reports whether l holds a finite measurement.
func (l Level) Usable() bool {
	return l.Valid && !math.IsNaN(l.Value) && !math.IsInf(l.Value, 0)
}

// Record is one raw row as handed over by a loader, before date parsing.
type Record struct {
	Date  string
	State string
	City  string
	O3    Level
	CO    Level
	SO2   Level
	NO2   Level
}

// Reading is a validated dataset row. Readings are immutable once the
// dataset is built.
type Reading struct {
	State string  `json:"state"`
	City  string  `json:"city"`
	Date  DateKey `json:"date"`
	O3    Level   `json:"o3"`
	CO    Level   `json:"co"`
	SO2   Level   `json:"so2"`
	NO2   Level   `json:"no2"`
}

// Level returns the measurement for the given pollutant.
func (r Reading) Level(p Pollutant) (Level, bool) {
	switch p {
	case PollutantO3:
		return r.O3, true
	case PollutantCO:
		return r.CO, true
	case PollutantSO2:
		return r.SO2, true
	case PollutantNO2:
		return r.NO2, true
	default:
		return Level{}, false
	}
}

// Value returns the numeric value of a pollutant, or a *MissingColumnError
// when the column is unknown or the value was not present in the source.
// NaN and infinite values count as not present.
func (r Reading) Value(p Pollutant) (float64, error) {
	lvl, ok := r.Level(p)
	if !ok || !lvl.Usable() {
		return 0, &MissingColumnError{Column: string(p), Date: r.Date.Raw}
	}
	return lvl.Value, nil
}

// SeriesPoint is the mean of all readings sharing one exact date string.
type SeriesPoint struct {
	Date         DateKey `json:"date"`
	AverageValue float64 `json:"averageValue"`
}

// MonthBucket summarises one (year, month) of a daily series.
type MonthBucket struct {
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Values       []float64 `json:"values"`
	SortedValues []float64 `json:"sortedValues"`
	Open         float64   `json:"open"`
	Close        float64   `json:"close"`
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Median       float64   `json:"median"`
	Q1           float64   `json:"q1"`
	Q3           float64   `json:"q3"`
	IQR          float64   `json:"iqr"`
}

// Key returns the bucket's month key.
func (b MonthBucket) Key() MonthKey {
	return MonthKey{Year: b.Year, Month: b.Month}
}

// CitySelection identifies one city for comparison views.
type CitySelection struct {
	State string `json:"state" validate:"required"`
	City  string `json:"city" validate:"required"`
}

// Label returns the "city,state" label used to key aligned series.
func (c CitySelection) Label() string {
	return c.City + "," + c.State
}
