package host

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#00d4aa", Color{R: 0x00, G: 0xd4, B: 0xaa, A: 1}, false},
		{"#0a0a0a", Color{R: 0x0a, G: 0x0a, B: 0x0a, A: 1}, false},
		{"#ffffff", Color{R: 255, G: 255, B: 255, A: 1}, false},
		{"teal", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.hex)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.hex, got, tt.want)
		}
	}
}

func TestColor_WithAlphaClamps(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3, A: 1}
	if got := c.WithAlpha(-0.5).A; got != 0 {
		t.Errorf("alpha -0.5 clamped to %v, want 0", got)
	}
	if got := c.WithAlpha(2).A; got != 1 {
		t.Errorf("alpha 2 clamped to %v, want 1", got)
	}
	if got := c.WithAlpha(0.3).A; got != 0.3 {
		t.Errorf("alpha 0.3 became %v", got)
	}
}

func TestColor_Blend(t *testing.T) {
	top := Color{R: 200, G: 100, B: 0, A: 0.5}
	bottom := Color{R: 0, G: 0, B: 100, A: 1}
	got := top.Blend(bottom)
	want := Color{R: 100, G: 50, B: 50, A: 1}
	if got != want {
		t.Errorf("Blend = %+v, want %+v", got, want)
	}
}

func TestRecorder_CountAndFilter(t *testing.T) {
	r := NewRecorder()
	c := Color{A: 1}
	r.Clear(c)
	r.Line(0, 0, 10, 10, 1, c)
	r.Circle(5, 5, 2, c)
	r.Line(1, 1, 2, 2, 2, c)

	if got := r.Count(OpLine); got != 2 {
		t.Errorf("Count(OpLine) = %d, want 2", got)
	}
	lines := r.Filter(OpLine)
	if len(lines) != 2 || lines[1].Width != 2 {
		t.Errorf("Filter(OpLine) = %+v", lines)
	}
	circles := r.Filter(OpCircle)
	if len(circles) != 1 || circles[0].Radius != 2 || circles[0].X1 != 5 {
		t.Errorf("Filter(OpCircle) = %+v", circles)
	}
}
