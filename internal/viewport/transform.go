package viewport

import "github.com/i474232898/aqi-explorer/internal/common"

const (
	MinZoom = 1.0
	MaxZoom = 5.0

	// ZoomPerScrollUnit converts wheel delta into zoom change. Scrolling
	// down (positive delta) zooms out.
	ZoomPerScrollUnit = 0.001
)

// Viewport is the zoom and pan layered on top of the selected time range.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// NewViewport returns the identity viewport.
func NewViewport() Viewport {
	return Viewport{Zoom: MinZoom}
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = common.Constrain(z, MinZoom, MaxZoom)
}

// ZoomBy adjusts zoom proportionally to a wheel delta.
func (v *Viewport) ZoomBy(scroll float64) {
	v.SetZoom(v.Zoom - scroll*ZoomPerScrollUnit)
}

// PanBy moves the content with the cursor. Pan is not bounded; clipping is
// left to the renderer.
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX -= dx
	v.PanY -= dy
}

// Reset restores the identity viewport.
func (v *Viewport) Reset() Viewport {
	*v = NewViewport()
	return *v
}

// ToScreenX maps ts from [domainStart, domainEnd] onto
// [baseX-panX, baseX-panX+baseWidth*zoom]. A single-instant domain maps to
// the middle of that span.
func ToScreenX(ts, domainStart, domainEnd, baseX, baseWidth, zoom, panX float64) float64 {
	origin := baseX - panX
	width := baseWidth * zoom
	if domainEnd == domainStart {
		return origin + width/2
	}
	return common.MapRange(ts, domainStart, domainEnd, origin, origin+width)
}

// ToScreenY maps value from [0, domainMax] onto [baseY+baseHeight, baseY], so
// larger values are drawn higher.
func ToScreenY(value, domainMax, baseY, baseHeight float64) float64 {
	if domainMax <= 0 {
		return baseY + baseHeight
	}
	return common.MapRange(value, 0, domainMax, baseY+baseHeight, baseY)
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// X maps a timestamp into r under this viewport.
func (v Viewport) X(ts, domainStart, domainEnd float64, r Rect) float64 {
	return ToScreenX(ts, domainStart, domainEnd, r.X, r.W, v.Zoom, v.PanX)
}

// Y maps a value into r. Vertical pan is reported to the renderer but not
// applied here.
func (v Viewport) Y(value, domainMax float64, r Rect) float64 {
	return ToScreenY(value, domainMax, r.Y, r.H)
}
