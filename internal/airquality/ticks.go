package airquality

import "slices"

// fallbackTicks keeps the slider usable when no row carries a usable date.
var fallbackTicks = []MonthKey{
	{Year: 2000, Month: 1},
	{Year: 2000, Month: 6},
	{Year: 2001, Month: 1},
	{Year: 2001, Month: 6},
}

// SliderAxis returns the distinct (year, month) pairs of the dataset in
// chronological order. It is never empty.
func SliderAxis(rows []Reading) []MonthKey {
	seen := make(map[MonthKey]struct{})
	axis := make([]MonthKey, 0)
	for _, r := range rows {
		k := r.Date.MonthKey()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		axis = append(axis, k)
	}

	if len(axis) == 0 {
		return slices.Clone(fallbackTicks)
	}

	slices.SortFunc(axis, MonthKey.Compare)
	return axis
}

// TickStride returns the index step that shows roughly target labels out of n.
func TickStride(n, target int) int {
	if target <= 0 {
		return 1
	}
	return max(1, n/target)
}

// WindowStats summarises the visible points of a series.
type WindowStats struct {
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
	Minimum float64 `json:"minimum"`
	Count   int     `json:"count"`
}

// ComputeWindowStats returns the average, maximum and minimum of points. The
// boolean is false for an empty window.
func ComputeWindowStats(points []SeriesPoint) (WindowStats, bool) {
	if len(points) == 0 {
		return WindowStats{}, false
	}

	stats := WindowStats{
		Maximum: points[0].AverageValue,
		Minimum: points[0].AverageValue,
		Count:   len(points),
	}
	var sum float64
	for _, p := range points {
		sum += p.AverageValue
		stats.Maximum = max(stats.Maximum, p.AverageValue)
		stats.Minimum = min(stats.Minimum, p.AverageValue)
	}
	stats.Average = sum / float64(len(points))
	return stats, true
}
