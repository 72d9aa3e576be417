package viewport

import (
	"math/rand"
	"testing"
)

func newTestSelector(t *testing.T) *RangeSelector {
	t.Helper()
	r, err := NewRangeSelector(60, 1140, 720, 20)
	if err != nil {
		t.Fatalf("NewRangeSelector: %v", err)
	}
	return r
}

func TestNewRangeSelectorRejectsShortTrack(t *testing.T) {
	if _, err := NewRangeSelector(0, 10, 0, 20); err == nil {
		t.Fatal("expected error for track shorter than handle")
	}
	if _, err := NewRangeSelector(0, 100, 0, 0); err == nil {
		t.Fatal("expected error for zero diameter")
	}
}

func TestSelectedFractionFullTrack(t *testing.T) {
	r := newTestSelector(t)
	f0, f1 := r.SelectedFraction()
	if f0 != 0 || f1 != 100 {
		t.Fatalf("expected [0,100], got [%v,%v]", f0, f1)
	}
	sel := r.Selection()
	if sel.StartFraction != 0 || sel.EndFraction != 1 {
		t.Fatalf("expected [0,1], got %+v", sel)
	}
}

func TestHandlesClampAndNeverCross(t *testing.T) {
	r := newTestSelector(t)

	r.SetStart(2000)
	if r.Start() != r.End()-20 {
		t.Fatalf("start should stop one diameter before end, got %v (end %v)", r.Start(), r.End())
	}

	r.SetEnd(0)
	if r.End() != r.Start()+20 {
		t.Fatalf("end should stop one diameter after start, got %v (start %v)", r.End(), r.Start())
	}

	r.SetStart(-50)
	if r.Start() != 60 {
		t.Fatalf("start should clamp to track start, got %v", r.Start())
	}
}

func TestHandlesNeverCrossRandomized(t *testing.T) {
	r := newTestSelector(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		px := rng.Float64()*1400 - 100
		if rng.Intn(2) == 0 {
			r.SetStart(px)
		} else {
			r.SetEnd(px)
		}
		if r.Start() > r.End()-r.MinSeparation() {
			t.Fatalf("step %d: handles crossed: start=%v end=%v", i, r.Start(), r.End())
		}
		if r.Start() < 60 || r.End() > 1140 {
			t.Fatalf("step %d: handle left track: start=%v end=%v", i, r.Start(), r.End())
		}
	}
}

func TestPressDragRelease(t *testing.T) {
	r := newTestSelector(t)

	if r.Press(300, 720) {
		t.Fatal("press away from handles should not lock")
	}

	if !r.Press(65, 722) {
		t.Fatal("press on start handle should lock it")
	}
	r.Drag(500)
	if r.Start() != 500 {
		t.Fatalf("expected start 500, got %v", r.Start())
	}
	if r.End() != 1140 {
		t.Fatalf("end handle should not move, got %v", r.End())
	}

	r.Drag(5000)
	if r.Start() != 1120 {
		t.Fatalf("dragging past end should clamp to 1120, got %v", r.Start())
	}

	r.Release()
	if r.Locked() {
		t.Fatal("release should unlock")
	}
	r.Drag(100)
	if r.Start() != 1120 {
		t.Fatalf("drag after release should be ignored, got %v", r.Start())
	}
}

func TestIndexAt(t *testing.T) {
	r := newTestSelector(t)
	if got := r.IndexAt(60, 10); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := r.IndexAt(1140, 10); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := r.IndexAt(2000, 10); got != 9 {
		t.Fatalf("expected clamp to 9, got %d", got)
	}
	if got := r.IndexAt(600, 0); got != 0 {
		t.Fatalf("expected 0 for empty domain, got %d", got)
	}
}

func TestVisibleSlice(t *testing.T) {
	series := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name   string
		f0, f1 float64
		want   []int
	}{
		{"full", 0, 100, series},
		{"first half", 0, 50, []int{0, 1, 2, 3, 4, 5}},
		{"middle", 25, 75, []int{2, 3, 4, 5, 6, 7}},
		{"single", 100, 100, []int{10}},
		{"out of range", -20, 300, series},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleSlice(series, tt.f0, tt.f1)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestVisibleSliceEmpty(t *testing.T) {
	got := VisibleSlice([]string{}, 0, 100)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if _, _, ok := SliceBounds(0, 0, 100); ok {
		t.Fatal("expected ok=false for empty series")
	}
}
