package chart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/i474232898/aqi-explorer/internal/airquality"
	"github.com/i474232898/aqi-explorer/internal/common"
	"github.com/i474232898/aqi-explorer/internal/viewport"
)

const (
	MessageNoSelection = "Please select a state, city, and pollutant to visualize air quality data"
	MessageEmpty       = "No data available for this period"

	yTickCount      = 5
	xLabelTarget    = 5
	sliderTickCount = 10
)

// Status describes whether a frame has anything to draw.
type Status string

const (
	StatusOK          Status = "ok"
	StatusNoSelection Status = "no_selection"
	StatusEmpty       Status = "empty"
)

// Data is what Render reads from. *airquality.Service implements it.
type Data interface {
	Derive(ctx context.Context, state, city string, pollutant airquality.Pollutant, viz airquality.Visualization) (airquality.Derived, error)
	Compare(ctx context.Context, selections []airquality.CitySelection, pollutant airquality.Pollutant) (airquality.Aligned, error)
	SliderAxis() []airquality.MonthKey
}

type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type Line struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// Candle is one month drawn as open/close body with a min/max wick. Y values
// are screen coordinates.
type Candle struct {
	X      float64 `json:"x"`
	Label  string  `json:"label"`
	OpenY  float64 `json:"openY"`
	CloseY float64 `json:"closeY"`
	HighY  float64 `json:"highY"`
	LowY   float64 `json:"lowY"`
	Rising bool    `json:"rising"`

	Bucket airquality.MonthBucket `json:"bucket"`
}

// Box is one month drawn as a box plot. Y values are screen coordinates.
type Box struct {
	X       float64 `json:"x"`
	Label   string  `json:"label"`
	MinY    float64 `json:"minY"`
	Q1Y     float64 `json:"q1Y"`
	MedianY float64 `json:"medianY"`
	Q3Y     float64 `json:"q3Y"`
	MaxY    float64 `json:"maxY"`

	Bucket airquality.MonthBucket `json:"bucket"`
}

type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Slider is the range selector as drawn: track, handles and month ticks.
type Slider struct {
	TrackStart   float64 `json:"trackStart"`
	TrackEnd     float64 `json:"trackEnd"`
	Y            float64 `json:"y"`
	StartX       float64 `json:"startX"`
	EndX         float64 `json:"endX"`
	StartLabel   string  `json:"startLabel"`
	EndLabel     string  `json:"endLabel"`
	StartPercent float64 `json:"startPercent"`
	EndPercent   float64 `json:"endPercent"`
	Ticks        []Tick  `json:"ticks"`
}

// Frame is everything needed to draw one chart frame.
type Frame struct {
	Status        Status                   `json:"status"`
	Message       string                   `json:"message,omitempty"`
	Title         string                   `json:"title,omitempty"`
	View          View                     `json:"view"`
	Visualization airquality.Visualization `json:"visualization"`
	Graph         viewport.Rect            `json:"graph"`
	DomainMax     float64                  `json:"domainMax"`

	Lines   []Line   `json:"lines,omitempty"`
	Candles []Candle `json:"candles,omitempty"`
	Boxes   []Box    `json:"boxes,omitempty"`
	XTicks  []Tick   `json:"xTicks,omitempty"`
	YTicks  []Tick   `json:"yTicks,omitempty"`

	Stats    *airquality.WindowStats `json:"stats,omitempty"`
	Slider   Slider                  `json:"slider"`
	Viewport viewport.Viewport       `json:"viewport"`
}

// Render builds a frame from the selection and interaction state. It reads
// data but never mutates it.
func Render(ctx context.Context, data Data, sel SelectionContext, snap viewport.Snapshot, layout Layout) (Frame, error) {
	sel = sel.Normalize()
	f := Frame{
		Status:        StatusOK,
		View:          sel.View,
		Visualization: sel.Visualization,
		Graph:         layout.Graph(),
		Slider:        renderSlider(data.SliderAxis(), snap),
		Viewport:      snap.Viewport,
	}

	var err error
	switch {
	case sel.View == ViewComparison:
		err = renderComparison(ctx, &f, data, sel, snap)
	case sel.Visualization == airquality.VisualizationLine:
		err = renderLine(ctx, &f, data, sel, snap)
	default:
		err = renderBuckets(ctx, &f, data, sel, snap)
	}

	switch {
	case errors.Is(err, airquality.ErrNoSelection):
		f.Status, f.Message = StatusNoSelection, MessageNoSelection
	case errors.Is(err, airquality.ErrEmptySeries):
		f.Status, f.Message = StatusEmpty, MessageEmpty
	case err != nil:
		return Frame{}, err
	}
	return f, nil
}

func renderSlider(axis []airquality.MonthKey, snap viewport.Snapshot) Slider {
	s := Slider{
		TrackStart:   snap.TrackStart,
		TrackEnd:     snap.TrackEnd,
		Y:            snap.TrackY,
		StartX:       snap.StartX,
		EndX:         snap.EndX,
		StartPercent: snap.StartPercent,
		EndPercent:   snap.EndPercent,
	}
	n := len(axis)
	if n == 0 {
		return s
	}

	stride := airquality.TickStride(n, sliderTickCount)
	for i := 0; i < n; i += stride {
		s.Ticks = append(s.Ticks, Tick{
			Pos:   common.MapRange(float64(i), 0, float64(n-1), snap.TrackStart, snap.TrackEnd),
			Label: axis[i].String(),
		})
	}
	s.StartLabel = axis[snap.IndexAt(snap.StartX, n)].String()
	s.EndLabel = axis[snap.IndexAt(snap.EndX, n)].String()
	return s
}

func renderLine(ctx context.Context, f *Frame, data Data, sel SelectionContext, snap viewport.Snapshot) error {
	d, err := data.Derive(ctx, sel.State, sel.City, sel.Pollutant, airquality.VisualizationLine)
	if err != nil {
		return err
	}
	visible := viewport.VisibleSlice(d.Series, snap.StartPercent, snap.EndPercent)
	if len(visible) == 0 {
		return airquality.ErrEmptySeries
	}

	f.Title = fmt.Sprintf("%s Levels in %s, %s", sel.Pollutant, sel.City, sel.State)
	f.DomainMax = max(d.Peak, airquality.MinDisplayMax)
	ds, de := visible[0].Date.Timestamp(), visible[len(visible)-1].Date.Timestamp()
	f.Lines = []Line{projectSeries(sel.City, visible, f, snap.Viewport, ds, de)}
	f.XTicks = dateTicks(f.Lines[0].Points)
	f.YTicks = valueTicks(f.DomainMax, f.Graph)

	if stats, ok := airquality.ComputeWindowStats(visible); ok {
		f.Stats = &stats
	}
	return nil
}

func renderBuckets(ctx context.Context, f *Frame, data Data, sel SelectionContext, snap viewport.Snapshot) error {
	d, err := data.Derive(ctx, sel.State, sel.City, sel.Pollutant, sel.Visualization)
	if err != nil {
		return err
	}
	visible := viewport.VisibleSlice(d.Buckets, snap.StartPercent, snap.EndPercent)
	if len(visible) == 0 {
		return airquality.ErrEmptySeries
	}

	f.Title = fmt.Sprintf("%s Monthly Distribution in %s, %s", sel.Pollutant, sel.City, sel.State)
	f.DomainMax = max(d.Peak, airquality.MinDisplayMax)
	f.YTicks = valueTicks(f.DomainMax, f.Graph)

	ds, de := monthStart(visible[0]), monthStart(visible[len(visible)-1])
	vp := snap.Viewport
	y := func(v float64) float64 { return vp.Y(v, f.DomainMax, f.Graph) }

	for _, b := range visible {
		x := vp.X(monthStart(b), ds, de, f.Graph)
		label := b.Key().String()
		if sel.Visualization == airquality.VisualizationBox {
			f.Boxes = append(f.Boxes, Box{
				X: x, Label: label,
				MinY: y(b.Min), Q1Y: y(b.Q1), MedianY: y(b.Median), Q3Y: y(b.Q3), MaxY: y(b.Max),
				Bucket: b,
			})
		} else {
			f.Candles = append(f.Candles, Candle{
				X: x, Label: label,
				OpenY: y(b.Open), CloseY: y(b.Close), HighY: y(b.Max), LowY: y(b.Min),
				Rising: b.Close >= b.Open,
				Bucket: b,
			})
		}
	}

	stride := airquality.TickStride(len(visible), xLabelTarget)
	for i := 0; i < len(visible); i += stride {
		f.XTicks = append(f.XTicks, Tick{Pos: vp.X(monthStart(visible[i]), ds, de, f.Graph), Label: visible[i].Key().String()})
	}

	first, last := visible[0].Key(), visible[len(visible)-1].Key()
	var window []airquality.SeriesPoint
	for _, p := range d.Series {
		m := p.Date.MonthKey()
		if m.Compare(first) >= 0 && m.Compare(last) <= 0 {
			window = append(window, p)
		}
	}
	if stats, ok := airquality.ComputeWindowStats(window); ok {
		f.Stats = &stats
	}
	return nil
}

func renderComparison(ctx context.Context, f *Frame, data Data, sel SelectionContext, snap viewport.Snapshot) error {
	if sel.Pollutant == "" || len(sel.Cities) == 0 {
		return airquality.ErrNoSelection
	}
	aligned, err := data.Compare(ctx, sel.Cities, sel.Pollutant)
	if err != nil {
		return err
	}

	keys := viewport.VisibleSlice(airquality.UnionDateKeys(aligned), snap.StartPercent, snap.EndPercent)
	if len(keys) == 0 {
		return airquality.ErrEmptySeries
	}
	dates := make([]string, len(keys))
	for i, k := range keys {
		dates[i] = k.Raw
	}
	visible := airquality.FilterToDates(aligned, dates)

	f.Title = fmt.Sprintf("%s Levels: City Comparison", sel.Pollutant)
	f.DomainMax = airquality.GlobalMax(aligned)
	f.YTicks = valueTicks(f.DomainMax, f.Graph)

	ds, de := keys[0].Timestamp(), keys[len(keys)-1].Timestamp()
	for _, label := range visible.Labels {
		f.Lines = append(f.Lines, projectSeries(label, visible.Series[label], f, snap.Viewport, ds, de))
	}

	stride := airquality.TickStride(len(keys), xLabelTarget)
	for i := 0; i < len(keys); i += stride {
		f.XTicks = append(f.XTicks, Tick{Pos: snap.Viewport.X(keys[i].Timestamp(), ds, de, f.Graph), Label: keys[i].Raw})
	}
	return nil
}

func projectSeries(label string, points []airquality.SeriesPoint, f *Frame, vp viewport.Viewport, ds, de float64) Line {
	line := Line{Label: label, Points: make([]Point, 0, len(points))}
	for _, p := range points {
		line.Points = append(line.Points, Point{
			X:     vp.X(p.Date.Timestamp(), ds, de, f.Graph),
			Y:     vp.Y(p.AverageValue, f.DomainMax, f.Graph),
			Date:  p.Date.Raw,
			Value: p.AverageValue,
		})
	}
	return line
}

func dateTicks(points []Point) []Tick {
	var ticks []Tick
	stride := airquality.TickStride(len(points), xLabelTarget)
	for i := 0; i < len(points); i += stride {
		ticks = append(ticks, Tick{Pos: points[i].X, Label: points[i].Date})
	}
	return ticks
}

// valueTicks labels yTickCount+1 evenly spaced values from 0 to domainMax,
// truncated to integers.
func valueTicks(domainMax float64, g viewport.Rect) []Tick {
	ticks := make([]Tick, 0, yTickCount+1)
	for i := 0; i <= yTickCount; i++ {
		v := domainMax * float64(i) / yTickCount
		ticks = append(ticks, Tick{
			Pos:   viewport.ToScreenY(v, domainMax, g.Y, g.H),
			Label: strconv.Itoa(int(v)),
		})
	}
	return ticks
}

func monthStart(b airquality.MonthBucket) float64 {
	return airquality.DateKey{Year: b.Year, Month: b.Month, Day: 1}.Timestamp()
}
