package airquality

import (
	"fmt"
	"math/rand"
	"testing"
)

func point(raw string, v float64) SeriesPoint {
	d, err := ParseDateKey(raw)
	if err != nil {
		panic(err)
	}
	return SeriesPoint{Date: d, AverageValue: v}
}

func TestBucketByMonthThreeValues(t *testing.T) {
	series := []SeriesPoint{
		point("2000-01-03", 18),
		point("2000-01-10", 20),
		point("2000-01-20", 13),
	}

	buckets := BucketByMonth(series)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	b := buckets[0]

	wantSorted := []float64{13, 18, 20}
	for i, v := range wantSorted {
		if b.SortedValues[i] != v {
			t.Fatalf("sorted values: expected %v, got %v", wantSorted, b.SortedValues)
		}
	}
	if b.Values[0] != 18 {
		t.Fatalf("values should keep arrival order, got %v", b.Values)
	}
	if b.Min != 13 || b.Max != 20 || b.Median != 18 || b.Q1 != 13 || b.Q3 != 20 {
		t.Fatalf("unexpected summary: %+v", b)
	}
	if b.IQR != 7 {
		t.Fatalf("expected IQR 7, got %v", b.IQR)
	}
}

func TestBucketOpenCloseFollowSortedOrder(t *testing.T) {
	// Chronologically this month falls from 40 to 10, yet open is the
	// minimum and close the maximum.
	buckets := BucketByMonth([]SeriesPoint{
		point("2000-05-01", 40),
		point("2000-05-15", 25),
		point("2000-05-30", 10),
	})
	b := buckets[0]
	if b.Open != 10 || b.Close != 40 {
		t.Fatalf("expected open=10 close=40, got open=%v close=%v", b.Open, b.Close)
	}
}

func TestBucketByMonthOrderingAndEvenMedian(t *testing.T) {
	buckets := BucketByMonth([]SeriesPoint{
		point("2001-01-01", 1),
		point("2000-12-01", 4),
		point("2000-12-02", 2),
		point("2000-02-01", 9),
	})

	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	order := []MonthKey{{2000, 2}, {2000, 12}, {2001, 1}}
	for i, k := range order {
		if buckets[i].Key() != k {
			t.Fatalf("bucket %d: expected %v, got %v", i, k, buckets[i].Key())
		}
	}
	if buckets[1].Median != 3 {
		t.Fatalf("expected even median 3, got %v", buckets[1].Median)
	}
}

func TestBucketInvariantsHold(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		var series []SeriesPoint
		days := 1 + rng.Intn(28)
		for d := 1; d <= days; d++ {
			series = append(series, point(fmt.Sprintf("2010-3-%d", d), rng.Float64()*200))
		}

		for _, b := range BucketByMonth(series) {
			if !(b.Min <= b.Q1 && b.Q1 <= b.Median && b.Median <= b.Q3 && b.Q3 <= b.Max) {
				t.Fatalf("trial %d: ordering violated: %+v", trial, b)
			}
			if b.Open != b.Min || b.Close != b.Max {
				t.Fatalf("trial %d: open/close must equal min/max: %+v", trial, b)
			}
			if b.IQR != b.Q3-b.Q1 {
				t.Fatalf("trial %d: IQR mismatch", trial)
			}
		}
	}
}

func TestBoxPlotBucketsThreshold(t *testing.T) {
	var series []SeriesPoint
	for d := 1; d <= 5; d++ {
		series = append(series, point(fmt.Sprintf("2000-01-%02d", d), float64(d)))
	}
	for d := 1; d <= 4; d++ {
		series = append(series, point(fmt.Sprintf("2000-02-%02d", d), float64(d)))
	}

	all := BucketByMonth(series)
	if len(all) != 2 {
		t.Fatalf("candle view keeps every bucket, got %d", len(all))
	}

	boxes := BoxPlotBuckets(all)
	if len(boxes) != 1 || boxes[0].Month != 1 {
		t.Fatalf("only the 5-value month should be boxed, got %+v", boxes)
	}
}
