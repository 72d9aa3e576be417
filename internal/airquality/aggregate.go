package airquality

import "slices"

// AggregateSeries filters rows to (state, city), groups them by their exact
// date string and averages the pollutant per date. Values missing from a row
// are left out of that date's mean; a date with no values at all is dropped.
// The result is ordered chronologically.
func AggregateSeries(rows []Reading, state, city string, pollutant Pollutant) ([]SeriesPoint, error) {
	if state == "" || city == "" || pollutant == "" {
		return nil, ErrNoSelection
	}

	type acc struct {
		key   DateKey
		sum   float64
		count int
	}

	byDate := make(map[string]*acc)

	for _, r := range rows {
		if r.State != state || r.City != city {
			continue
		}

		a, ok := byDate[r.Date.Raw]
		if !ok {
			a = &acc{key: r.Date}
			byDate[r.Date.Raw] = a
		}

		v, err := r.Value(pollutant)
		if err != nil {
			continue
		}
		a.sum += v
		a.count++
	}

	series := make([]SeriesPoint, 0, len(byDate))
	for _, a := range byDate {
		if a.count == 0 {
			continue
		}
		series = append(series, SeriesPoint{
			Date:         a.key,
			AverageValue: a.sum / float64(a.count),
		})
	}

	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	slices.SortFunc(series, func(a, b SeriesPoint) int {
		return compareDates(a.Date, b.Date)
	})

	return series, nil
}

// PeakReading returns the largest raw reading of pollutant for (state, city),
// or 0 when there is none.
func PeakReading(rows []Reading, state, city string, pollutant Pollutant) float64 {
	var peak float64
	for _, r := range rows {
		if r.State != state || r.City != city {
			continue
		}
		if v, err := r.Value(pollutant); err == nil && v > peak {
			peak = v
		}
	}
	return peak
}
