package viewport

import (
	"fmt"
	"math"

	"github.com/i474232898/aqi-explorer/internal/common"
)

// RangeSelection is the selected part of the domain as fractions in [0,1].
type RangeSelection struct {
	StartFraction float64 `json:"startFraction"`
	EndFraction   float64 `json:"endFraction"`
}

// RangeSelector is a two-handle slider over a horizontal pixel track.
// Handles never cross: start <= end - diameter always holds.
type RangeSelector struct {
	trackStart float64
	trackEnd   float64
	trackY     float64
	diameter   float64

	start float64
	end   float64

	startLocked bool
	endLocked   bool
}

// NewRangeSelector places both handles at the ends of the track. The track
// must be at least one handle diameter long.
func NewRangeSelector(trackStart, trackEnd, trackY, diameter float64) (*RangeSelector, error) {
	if diameter <= 0 {
		return nil, fmt.Errorf("handle diameter must be positive, got %v", diameter)
	}
	if trackEnd-trackStart < diameter {
		return nil, fmt.Errorf("track [%v,%v] shorter than handle diameter %v", trackStart, trackEnd, diameter)
	}
	return &RangeSelector{
		trackStart: trackStart,
		trackEnd:   trackEnd,
		trackY:     trackY,
		diameter:   diameter,
		start:      trackStart,
		end:        trackEnd,
	}, nil
}

func (r *RangeSelector) Start() float64 { return r.start }
func (r *RangeSelector) End() float64 { return r.end }
func (r *RangeSelector) TrackY() float64 { return r.trackY }
func (r *RangeSelector) TrackStart() float64 { return r.trackStart }
func (r *RangeSelector) TrackEnd() float64 { return r.trackEnd }

// MinSeparation is the closest the two handles may get.
func (r *RangeSelector) MinSeparation() float64 { return r.diameter }

// SetStart moves the start handle, clamped to the track and kept one
// diameter left of the end handle.
func (r *RangeSelector) SetStart(px float64) {
	r.start = common.Constrain(px, r.trackStart, r.end-r.diameter)
}

// SetEnd moves the end handle, clamped to the track and kept one diameter
// right of the start handle.
func (r *RangeSelector) SetEnd(px float64) {
	r.end = common.Constrain(px, r.start+r.diameter, r.trackEnd)
}

// SelectedFraction returns the handle positions as percentages of the track.
func (r *RangeSelector) SelectedFraction() (f0, f1 float64) {
	f0 = common.MapRange(r.start, r.trackStart, r.trackEnd, 0, 100)
	f1 = common.MapRange(r.end, r.trackStart, r.trackEnd, 0, 100)
	return f0, f1
}

// Selection returns the selected range as fractions in [0,1].
func (r *RangeSelector) Selection() RangeSelection {
	f0, f1 := r.SelectedFraction()
	return RangeSelection{StartFraction: f0 / 100, EndFraction: f1 / 100}
}

// IndexAt maps a pixel on the track to an index into a domain of n items.
func (r *RangeSelector) IndexAt(px float64, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Floor(common.MapRange(px, r.trackStart, r.trackEnd, 0, float64(n-1))))
	return common.Constrain(idx, 0, n-1)
}

// Press locks every handle whose centre lies within half a diameter of
// (x, y). It reports whether a handle was grabbed.
func (r *RangeSelector) Press(x, y float64) bool {
	hit := r.diameter / 2
	if math.Hypot(x-r.start, y-r.trackY) < hit {
		r.startLocked = true
	}
	if math.Hypot(x-r.end, y-r.trackY) < hit {
		r.endLocked = true
	}
	return r.Locked()
}

// Drag repositions the locked handles.
func (r *RangeSelector) Drag(x float64) {
	if r.startLocked {
		r.SetStart(x)
	}
	if r.endLocked {
		r.SetEnd(x)
	}
}

// Release unlocks both handles.
func (r *RangeSelector) Release() {
	r.startLocked = false
	r.endLocked = false
}

// Locked reports whether any handle is held.
func (r *RangeSelector) Locked() bool {
	return r.startLocked || r.endLocked
}

// SliceBounds maps percentage positions f0 and f1 onto inclusive indices of
// a series of length n. ok is false when n is 0.
func SliceBounds(n int, f0, f1 float64) (start, end int, ok bool) {
	if n <= 0 {
		return 0, -1, false
	}
	if f1 < f0 {
		f0, f1 = f1, f0
	}
	last := float64(n - 1)
	start = common.Constrain(int(math.Floor(common.MapRange(f0, 0, 100, 0, last))), 0, n-1)
	end = common.Constrain(int(math.Floor(common.MapRange(f1, 0, 100, 0, last))), 0, n-1)
	return start, end, true
}

// VisibleSlice returns series[start..end] for the percentage range
// [f0, f1]. An empty series gives an empty slice.
func VisibleSlice[T any](series []T, f0, f1 float64) []T {
	start, end, ok := SliceBounds(len(series), f0, f1)
	if !ok {
		return []T{}
	}
	return series[start : end+1]
}
