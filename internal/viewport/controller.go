package viewport

import "fmt"

// GestureKind names a pointer interaction.
type GestureKind string

const (
	GesturePress   GestureKind = "press"
	GestureDrag    GestureKind = "drag"
	GestureRelease GestureKind = "release"
	GestureWheel   GestureKind = "wheel"
	GestureDouble  GestureKind = "double"
)

// Gesture is one pointer event in canvas coordinates.
type Gesture struct {
	Kind  GestureKind `json:"type" validate:"required,oneof=press drag release wheel double"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Delta float64     `json:"delta"`
}

// Controller owns the interaction state of one chart: the range slider and
// the viewport. It is not safe for concurrent use.
type Controller struct {
	selector *RangeSelector
	view     Viewport
	chart    Rect

	panning      bool
	lastX, lastY float64
}

// NewController creates a controller for a chart area and its slider.
func NewController(selector *RangeSelector, chart Rect) *Controller {
	return &Controller{
		selector: selector,
		view:     NewViewport(),
		chart:    chart,
	}
}

// Press grabs a slider handle under the cursor, or starts panning when the
// cursor is over the chart instead.
func (c *Controller) Press(x, y float64) {
	if c.selector.Press(x, y) {
		return
	}
	if c.chart.Contains(x, y) {
		c.panning = true
		c.lastX, c.lastY = x, y
	}
}

// Drag moves held handles, or pans by the cursor's frame-to-frame delta.
func (c *Controller) Drag(x, y float64) {
	if c.selector.Locked() {
		c.selector.Drag(x)
		return
	}
	if c.panning {
		c.view.PanBy(x-c.lastX, y-c.lastY)
		c.lastX, c.lastY = x, y
	}
}

// Release ends any drag.
func (c *Controller) Release() {
	c.selector.Release()
	c.panning = false
}

// Wheel zooms by a scroll delta.
func (c *Controller) Wheel(delta float64) {
	c.view.ZoomBy(delta)
}

// DoubleClick resets zoom and pan when it lands on the chart.
func (c *Controller) DoubleClick(x, y float64) {
	if c.chart.Contains(x, y) {
		c.view.Reset()
	}
}

// Apply dispatches a gesture.
func (c *Controller) Apply(g Gesture) error {
	switch g.Kind {
	case GesturePress:
		c.Press(g.X, g.Y)
	case GestureDrag:
		c.Drag(g.X, g.Y)
	case GestureRelease:
		c.Release()
	case GestureWheel:
		c.Wheel(g.Delta)
	case GestureDouble:
		c.DoubleClick(g.X, g.Y)
	default:
		return fmt.Errorf("unknown gesture %q", g.Kind)
	}
	return nil
}

// Snapshot is a read-only copy of the interaction state for one frame.
type Snapshot struct {
	StartX        float64        `json:"startX"`
	EndX          float64        `json:"endX"`
	TrackStart    float64        `json:"trackStart"`
	TrackEnd      float64        `json:"trackEnd"`
	TrackY        float64        `json:"trackY"`
	StartPercent  float64        `json:"startPercent"`
	EndPercent    float64        `json:"endPercent"`
	Selection     RangeSelection `json:"selection"`
	HandlesLocked bool           `json:"handlesLocked"`
	Panning       bool           `json:"panning"`
	Viewport      Viewport       `json:"viewport"`
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	f0, f1 := c.selector.SelectedFraction()
	return Snapshot{
		StartX:        c.selector.Start(),
		EndX:          c.selector.End(),
		TrackStart:    c.selector.TrackStart(),
		TrackEnd:      c.selector.TrackEnd(),
		TrackY:        c.selector.TrackY(),
		StartPercent:  f0,
		EndPercent:    f1,
		Selection:     c.selector.Selection(),
		HandlesLocked: c.selector.Locked(),
		Panning:       c.panning,
		Viewport:      c.view,
	}
}

// IndexAt maps a track pixel to an index in a domain of n items.
func (s Snapshot) IndexAt(px float64, n int) int {
	r := RangeSelector{trackStart: s.TrackStart, trackEnd: s.TrackEnd}
	return r.IndexAt(px, n)
}
