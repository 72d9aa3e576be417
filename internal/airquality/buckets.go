package airquality

import (
	"math"
	"slices"
)

// MinBoxPlotSamples is the fewest values a month needs to be drawn as a box.
// Candle views use every bucket regardless.
const MinBoxPlotSamples = 5

// BucketByMonth regroups a daily series by (year, month).
//
// Open and Close are taken from the sorted values, so Open is always the
// month's minimum and Close its maximum. Candles built from these buckets
// never point down.
func BucketByMonth(series []SeriesPoint) []MonthBucket {
	byMonth := make(map[MonthKey][]float64)
	keys := make([]MonthKey, 0)

	for _, p := range series {
		k := p.Date.MonthKey()
		if _, ok := byMonth[k]; !ok {
			keys = append(keys, k)
		}
		byMonth[k] = append(byMonth[k], p.AverageValue)
	}

	slices.SortFunc(keys, MonthKey.Compare)

	buckets := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, summarize(k, byMonth[k]))
	}
	return buckets
}

func summarize(k MonthKey, values []float64) MonthBucket {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	q1 := sorted[int(math.Floor(float64(n)*0.25))]
	q3 := sorted[int(math.Floor(float64(n)*0.75))]

	return MonthBucket{
		Year:         k.Year,
		Month:        k.Month,
		Values:       values,
		SortedValues: sorted,
		Open:         sorted[0],
		Close:        sorted[n-1],
		Min:          sorted[0],
		Max:          sorted[n-1],
		Median:       median(sorted),
		Q1:           q1,
		Q3:           q3,
		IQR:          q3 - q1,
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// BoxPlotEligible reports whether b has enough values for a box plot.
func (b MonthBucket) BoxPlotEligible() bool {
	return len(b.SortedValues) >= MinBoxPlotSamples
}

// BoxPlotBuckets keeps the buckets that can be drawn as boxes.
func BoxPlotBuckets(buckets []MonthBucket) []MonthBucket {
	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.BoxPlotEligible() {
			out = append(out, b)
		}
	}
	return out
}
