package airquality

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
)

// Service owns the current dataset and serves derived series from it.
type Service struct {
	cache    Cache
	sources  []Source
	fallback []Record

	dataset    atomic.Pointer[Dataset]
	generation atomic.Uint64
}

// NewService creates a Service. Sources are tried in order on Reload;
// fallback records are used when none of them yields data. A nil cache
// disables memoization.
func NewService(cache Cache, sources []Source, fallback []Record) *Service {
	return &Service{
		cache:    cache,
		sources:  sources,
		fallback: fallback,
	}
}

// Reload loads a fresh dataset and swaps it in. The previous dataset stays in
// use by anyone already holding it.
func (s *Service) Reload(ctx context.Context) error {
	for _, src := range s.sources {
		records, err := src.Load(ctx)
		if err != nil {
			log.Printf("ERROR: source %s failed: %v", src.Name(), err)
			continue
		}

		ds := NewDataset(src.Name(), records)
		if ds.Len() == 0 {
			log.Printf("INFO: source %s returned no usable rows", src.Name())
			continue
		}

		s.swap(ds)
		return nil
	}

	ds := NewDataset("sample", s.fallback)
	if ds.Len() == 0 {
		return fmt.Errorf("no source produced data and no fallback rows configured")
	}
	log.Printf("INFO: using built-in sample data (%d rows)", ds.Len())
	s.swap(ds)
	return nil
}

func (s *Service) swap(ds *Dataset) {
	s.dataset.Store(ds)
	gen := s.generation.Add(1)
	log.Printf("INFO: dataset %s loaded: %d rows, generation %d", ds.Source(), ds.Len(), gen)
}

// Dataset returns the current dataset, or an empty one before the first load.
func (s *Service) Dataset() *Dataset {
	if ds := s.dataset.Load(); ds != nil {
		return ds
	}
	return NewDataset("empty", nil)
}

// Generation increments every time a dataset is swapped in.
func (s *Service) Generation() uint64 {
	return s.generation.Load()
}

// Derive computes (or fetches from cache) the series for one city and, for
// candle and box views, its month buckets.
func (s *Service) Derive(ctx context.Context, state, city string, pollutant Pollutant, viz Visualization) (Derived, error) {
	if state == "" || city == "" || pollutant == "" {
		return Derived{}, ErrNoSelection
	}

	key := fmt.Sprintf("%d|%q|%q|%q|%q", s.Generation(), state, city, pollutant, viz)
	if s.cache != nil {
		if d, ok := s.cache.Get(ctx, key); ok {
			return d, nil
		}
	}

	rows := s.Dataset().Rows()
	series, err := AggregateSeries(rows, state, city, pollutant)
	if err != nil {
		return Derived{}, err
	}

	d := Derived{
		Series: series,
		Peak:   PeakReading(rows, state, city, pollutant),
	}
	switch viz {
	case VisualizationCandle:
		d.Buckets = BucketByMonth(series)
	case VisualizationBox:
		d.Buckets = BoxPlotBuckets(BucketByMonth(series))
	}

	if s.cache != nil {
		s.cache.Put(ctx, key, d)
	}
	return d, nil
}

// Series returns the daily series for one city.
func (s *Service) Series(ctx context.Context, state, city string, pollutant Pollutant) ([]SeriesPoint, error) {
	d, err := s.Derive(ctx, state, city, pollutant, VisualizationLine)
	if err != nil {
		return nil, err
	}
	return d.Series, nil
}

// Buckets returns month buckets for one city; boxOnly keeps only buckets
// with enough values for a box plot.
func (s *Service) Buckets(ctx context.Context, state, city string, pollutant Pollutant, boxOnly bool) ([]MonthBucket, error) {
	viz := VisualizationCandle
	if boxOnly {
		viz = VisualizationBox
	}
	d, err := s.Derive(ctx, state, city, pollutant, viz)
	if err != nil {
		return nil, err
	}
	if len(d.Buckets) == 0 {
		return nil, ErrEmptySeries
	}
	return d.Buckets, nil
}

// Compare aligns several cities for the comparison view.
func (s *Service) Compare(ctx context.Context, selections []CitySelection, pollutant Pollutant) (Aligned, error) {
	aligned, err := AlignSeries(s.Dataset().Rows(), selections, pollutant)
	if err != nil && !errors.Is(err, ErrEmptySeries) {
		return Aligned{}, err
	}
	return aligned, err
}

// SliderAxis returns the month ticks of the current dataset.
func (s *Service) SliderAxis() []MonthKey {
	return SliderAxis(s.Dataset().Rows())
}
