package sources

import "github.com/i474232898/aqi-explorer/internal/airquality"

// SampleRecords returns the built-in table used when no source yields data.
func SampleRecords() []airquality.Record {
	row := func(state, city, date string, o3, co, so2, no2 float64) airquality.Record {
		return airquality.Record{
			Date:  date,
			State: state,
			City:  city,
			O3:    airquality.Measured(o3),
			CO:    airquality.Measured(co),
			SO2:   airquality.Measured(so2),
			NO2:   airquality.Measured(no2),
		}
	}

	return []airquality.Record{
		row("Arizona", "Phoenix", "2000-01-01", 37, 25, 13, 46),
		row("Arizona", "Phoenix", "2000-01-02", 30, 26, 4, 34),
		row("Arizona", "Phoenix", "2000-02-01", 42, 28, 18, 51),
		row("Arizona", "Phoenix", "2000-03-01", 45, 30, 20, 55),
		row("Arizona", "Tucson", "2000-01-01", 32, 20, 10, 40),
		row("Arizona", "Tucson", "2000-02-01", 36, 22, 12, 42),
		row("California", "Los Angeles", "2000-01-01", 50, 35, 22, 60),
		row("California", "Los Angeles", "2000-02-01", 55, 40, 25, 65),
		row("California", "San Francisco", "2000-01-01", 30, 18, 8, 38),
		row("California", "San Francisco", "2000-02-01", 32, 20, 10, 40),
		row("Arizona", "Phoenix", "2001-01-01", 39, 27, 15, 48),
		row("Arizona", "Phoenix", "2001-02-01", 44, 30, 20, 53),
		row("California", "Los Angeles", "2001-01-01", 52, 37, 24, 62),
		row("California", "San Francisco", "2001-01-01", 32, 20, 10, 40),
	}
}
