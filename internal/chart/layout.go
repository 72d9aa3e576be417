package chart

import (
	"fmt"

	"github.com/i474232898/aqi-explorer/internal/airquality"
	"github.com/i474232898/aqi-explorer/internal/viewport"
)

// Layout is the canvas geometry the frame is laid out on.
type Layout struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Margin         float64 `json:"margin"`
	HandleDiameter float64 `json:"handleDiameter"`
}

// DefaultLayout matches a 1200x800 canvas.
func DefaultLayout() Layout {
	return Layout{Width: 1200, Height: 800, Margin: 60, HandleDiameter: 20}
}

// Graph returns the chart rectangle.
func (l Layout) Graph() viewport.Rect {
	return viewport.Rect{
		X: l.Margin + 50,
		Y: l.Margin + 150,
		W: l.Width - 2*l.Margin - 100,
		H: l.Height - 2*l.Margin - 150,
	}
}

func (l Layout) TrackStart() float64 { return l.Margin }
func (l Layout) TrackEnd() float64 { return l.Width - l.Margin }
func (l Layout) SliderY() float64 { return l.Height - 80 }

// NewController builds the initial interaction state for this layout.
func (l Layout) NewController() (*viewport.Controller, error) {
	g := l.Graph()
	if g.W <= 0 || g.H <= 0 {
		return nil, fmt.Errorf("canvas %vx%v too small for margin %v", l.Width, l.Height, l.Margin)
	}
	sel, err := viewport.NewRangeSelector(l.TrackStart(), l.TrackEnd(), l.SliderY(), l.HandleDiameter)
	if err != nil {
		return nil, err
	}
	return viewport.NewController(sel, g), nil
}

// View is the chart mode.
type View string

const (
	ViewTime       View = "time"
	ViewComparison View = "comparison"
)

// SelectionContext is what the UI has selected for one frame. It is treated
// as immutable for the duration of the frame.
type SelectionContext struct {
	State         string                     `json:"state"`
	City          string                     `json:"city"`
	Pollutant     airquality.Pollutant       `json:"pollutant"`
	Visualization airquality.Visualization   `json:"visualization" validate:"omitempty,oneof=line candle box"`
	View          View                       `json:"view" validate:"omitempty,oneof=time comparison"`
	Cities        []airquality.CitySelection `json:"cities" validate:"dive"`
}

// Normalize fills defaults for empty fields.
func (s SelectionContext) Normalize() SelectionContext {
	if s.View == "" {
		s.View = ViewTime
	}
	if s.Visualization == "" {
		s.Visualization = airquality.VisualizationLine
	}
	return s
}

// Validate checks enumerated fields. Missing state, city or pollutant is not
// an error; Render reports it as StatusNoSelection.
func (s SelectionContext) Validate() error {
	if s.Pollutant != "" {
		if _, err := airquality.ParsePollutant(string(s.Pollutant)); err != nil {
			return err
		}
	}
	if _, err := airquality.ParseVisualization(string(s.Visualization)); err != nil {
		return err
	}
	switch s.View {
	case "", ViewTime, ViewComparison:
		return nil
	default:
		return fmt.Errorf("unknown view %q", s.View)
	}
}
