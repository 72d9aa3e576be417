package airquality

import (
	"context"
	"fmt"
)

// Source abstracts where readings come from (CSV file, Postgres table,
// built-in sample). Implementations validate their columns once, at load.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}

// Visualization selects how a single-city series is summarised.
type Visualization string

const (
	VisualizationLine   Visualization = "line"
	VisualizationCandle Visualization = "candle"
	VisualizationBox    Visualization = "box"
)

// ParseVisualization validates a visualization name; empty means line.
func ParseVisualization(s string) (Visualization, error) {
	switch Visualization(s) {
	case "", VisualizationLine:
		return VisualizationLine, nil
	case VisualizationCandle, VisualizationBox:
		return Visualization(s), nil
	default:
		return "", fmt.Errorf("unknown visualization %q", s)
	}
}

// Derived is everything computed for one (state, city, pollutant,
// visualization) selection.
type Derived struct {
	Series  []SeriesPoint `json:"series"`
	Buckets []MonthBucket `json:"buckets,omitempty"`
	Peak    float64       `json:"peak"`
}

// Cache memoizes Derived values. Misses and backend failures both report
// false; the caller recomputes.
type Cache interface {
	Get(ctx context.Context, key string) (Derived, bool)
	Put(ctx context.Context, key string, d Derived)
}
