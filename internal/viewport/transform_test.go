package viewport

import "testing"

func TestSetZoomClamps(t *testing.T) {
	v := NewViewport()

	v.SetZoom(10)
	if v.Zoom != 5.0 {
		t.Fatalf("expected zoom 5.0, got %v", v.Zoom)
	}

	v.SetZoom(0)
	if v.Zoom != 1.0 {
		t.Fatalf("expected zoom 1.0, got %v", v.Zoom)
	}

	v.SetZoom(2.5)
	if v.Zoom != 2.5 {
		t.Fatalf("expected zoom 2.5, got %v", v.Zoom)
	}
}

func TestZoomByScroll(t *testing.T) {
	v := NewViewport()

	v.ZoomBy(-500)
	if v.Zoom != 1.5 {
		t.Fatalf("scrolling up 500 should zoom to 1.5, got %v", v.Zoom)
	}

	v.ZoomBy(-100000)
	if v.Zoom != MaxZoom {
		t.Fatalf("expected clamp to %v, got %v", MaxZoom, v.Zoom)
	}

	v.ZoomBy(100000)
	if v.Zoom != MinZoom {
		t.Fatalf("expected clamp to %v, got %v", MinZoom, v.Zoom)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	v := Viewport{Zoom: 3, PanX: 40, PanY: -12}

	once := v.Reset()
	twice := v.Reset()

	want := Viewport{Zoom: 1, PanX: 0, PanY: 0}
	if once != want || twice != want || v != want {
		t.Fatalf("expected %+v after reset, got once=%+v twice=%+v", want, once, twice)
	}
}

func TestToScreenX(t *testing.T) {
	tests := []struct {
		name                     string
		ts, start, end           float64
		baseX, width, zoom, panX float64
		want                     float64
	}{
		{"domain start", 0, 0, 100, 110, 980, 1, 0, 110},
		{"domain end", 100, 0, 100, 110, 980, 1, 0, 1090},
		{"zoom doubles width", 100, 0, 100, 110, 980, 2, 0, 2070},
		{"pan shifts origin", 0, 0, 100, 110, 980, 1, 30, 80},
		{"zoom and pan", 50, 0, 100, 100, 200, 2, 50, 250},
		{"single instant", 7, 7, 7, 100, 200, 1, 0, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToScreenX(tt.ts, tt.start, tt.end, tt.baseX, tt.width, tt.zoom, tt.panX)
			if got != tt.want {
				t.Fatalf("ToScreenX = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToScreenYInverted(t *testing.T) {
	if got := ToScreenY(0, 50, 210, 430); got != 640 {
		t.Fatalf("zero should sit on the baseline, got %v", got)
	}
	if got := ToScreenY(50, 50, 210, 430); got != 210 {
		t.Fatalf("max should sit on the top edge, got %v", got)
	}
	if got := ToScreenY(25, 50, 200, 400); got != 400 {
		t.Fatalf("half should sit mid-height, got %v", got)
	}
	if got := ToScreenY(25, 0, 200, 400); got != 600 {
		t.Fatalf("degenerate domain should map to baseline, got %v", got)
	}
}

func TestPanByFollowsCursor(t *testing.T) {
	v := NewViewport()
	v.PanBy(15, -4)

	// Content moves right with the cursor, so the origin shifts right too.
	if x := v.X(0, 0, 100, Rect{X: 100, W: 200}); x != 115 {
		t.Fatalf("expected origin at 115, got %v", x)
	}
	if v.PanY != 4 {
		t.Fatalf("expected panY 4, got %v", v.PanY)
	}
}
