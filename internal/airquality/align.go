package airquality

import (
	"errors"
	"slices"
)

// MinDisplayMax is the smallest value-axis maximum used for charts.
const MinDisplayMax = 50.0

// Aligned holds independently aggregated series for several cities, keyed by
// "city,state" label. Labels keeps the order the cities were selected in.
type Aligned struct {
	Labels []string                 `json:"labels"`
	Series map[string][]SeriesPoint `json:"series"`
}

// AlignSeries aggregates each selected city on its own. Cities without data
// keep an empty series; ErrEmptySeries is returned only if every city is empty.
func AlignSeries(rows []Reading, selections []CitySelection, pollutant Pollutant) (Aligned, error) {
	aligned := Aligned{
		Labels: make([]string, 0, len(selections)),
		Series: make(map[string][]SeriesPoint, len(selections)),
	}
	if len(selections) == 0 || pollutant == "" {
		return aligned, ErrNoSelection
	}

	points := 0
	for _, sel := range selections {
		label := sel.Label()
		if _, dup := aligned.Series[label]; dup {
			continue
		}

		series, err := AggregateSeries(rows, sel.State, sel.City, pollutant)
		switch {
		case errors.Is(err, ErrEmptySeries):
			series = []SeriesPoint{}
		case err != nil:
			return aligned, err
		}

		aligned.Labels = append(aligned.Labels, label)
		aligned.Series[label] = series
		points += len(series)
	}

	if points == 0 {
		return aligned, ErrEmptySeries
	}
	return aligned, nil
}

// UnionDateKeys returns every date appearing in any series once, in
// chronological order.
func UnionDateKeys(aligned Aligned) []DateKey {
	seen := make(map[string]struct{})
	keys := make([]DateKey, 0)
	for _, label := range aligned.Labels {
		for _, p := range aligned.Series[label] {
			if _, ok := seen[p.Date.Raw]; ok {
				continue
			}
			seen[p.Date.Raw] = struct{}{}
			keys = append(keys, p.Date)
		}
	}
	slices.SortFunc(keys, compareDates)
	return keys
}

// UnionDates is UnionDateKeys as raw date strings.
func UnionDates(aligned Aligned) []string {
	keys := UnionDateKeys(aligned)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Raw
	}
	return out
}

// GlobalMax returns the largest average across all cities, never below
// MinDisplayMax.
func GlobalMax(aligned Aligned) float64 {
	peak := MinDisplayMax
	for _, series := range aligned.Series {
		for _, p := range series {
			peak = max(peak, p.AverageValue)
		}
	}
	return peak
}

// FilterToDates restricts every city's series to the given date strings.
func FilterToDates(aligned Aligned, dates []string) Aligned {
	keep := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		keep[d] = struct{}{}
	}

	out := Aligned{
		Labels: slices.Clone(aligned.Labels),
		Series: make(map[string][]SeriesPoint, len(aligned.Series)),
	}
	for _, label := range aligned.Labels {
		filtered := make([]SeriesPoint, 0)
		for _, p := range aligned.Series[label] {
			if _, ok := keep[p.Date.Raw]; ok {
				filtered = append(filtered, p)
			}
		}
		out.Series[label] = filtered
	}
	return out
}
