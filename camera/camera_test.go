package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 3540)

	if cam.ScrollY != 0 {
		t.Errorf("expected camera at page top, got %f", cam.ScrollY)
	}
	if cam.MaxScroll() != 2820 {
		t.Errorf("MaxScroll = %f, want 2820", cam.MaxScroll())
	}
}

func TestShortPage(t *testing.T) {
	cam := New(1280, 720, 400)

	if cam.MaxScroll() != 0 {
		t.Errorf("MaxScroll on short page = %f, want 0", cam.MaxScroll())
	}
	cam.Pan(500)
	if cam.ScrollY != 0 {
		t.Errorf("short page scrolled to %f", cam.ScrollY)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 3000)
	cam.ScrollTo(850)

	for _, sy := range []float64{0, 100, 359.5, 720} {
		py := cam.ScreenToWorld(sy)
		if got := cam.WorldToScreen(py); math.Abs(got-sy) > 0.001 {
			t.Errorf("roundtrip failed: %f -> %f -> %f", sy, py, got)
		}
	}
	if got := cam.ScreenToWorld(0); got != 850 {
		t.Errorf("ScreenToWorld(0) = %f, want 850", got)
	}
}

func TestPanClamps(t *testing.T) {
	tests := []struct {
		name      string
		start, dy float64
		wantY     float64
		wantDelta float64
	}{
		{"down", 0, 120, 120, 120},
		{"up past top", 50, -200, 0, -50},
		{"down past bottom", 2200, 500, 2280, 80},
		{"no-op", 300, 0, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(1280, 720, 3000)
			cam.ScrollTo(tt.start)
			delta := cam.Pan(tt.dy)
			if cam.ScrollY != tt.wantY {
				t.Errorf("ScrollY = %f, want %f", cam.ScrollY, tt.wantY)
			}
			if delta != tt.wantDelta {
				t.Errorf("delta = %f, want %f", delta, tt.wantDelta)
			}
		})
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 3000)
	cam.ScrollTo(1000)

	tests := []struct {
		top, height float64
		want        bool
	}{
		{1000, 10, true},
		{900, 100, false}, // ends exactly at the viewport top
		{900, 101, true},
		{1719, 50, true},
		{1720, 50, false},
		{0, 3000, true},
	}
	for _, tt := range tests {
		if got := cam.IsVisible(tt.top, tt.height); got != tt.want {
			t.Errorf("IsVisible(%v, %v) = %v, want %v", tt.top, tt.height, got, tt.want)
		}
	}
}

func TestResizeReclamps(t *testing.T) {
	cam := New(1280, 720, 3000)
	cam.ScrollTo(2280)

	cam.Resize(1280, 1000)
	if cam.ScrollY != 2000 {
		t.Errorf("ScrollY after resize = %f, want 2000", cam.ScrollY)
	}
	top, bottom := cam.VisibleWorldBounds()
	if top != 2000 || bottom != 3000 {
		t.Errorf("VisibleWorldBounds = (%f, %f), want (2000, 3000)", top, bottom)
	}

	cam.SetPageHeight(1500)
	if cam.ScrollY != 500 {
		t.Errorf("ScrollY after page shrink = %f, want 500", cam.ScrollY)
	}

	cam.Reset()
	if cam.ScrollY != 0 {
		t.Errorf("Reset left ScrollY at %f", cam.ScrollY)
	}
}
