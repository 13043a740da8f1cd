// Package host abstracts the environment the page runs in: a drawing surface,
// host notifications (resize, pointer, scroll, clicks, form submits) and the
// display-synchronised frame scheduler.
package host

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrNoSurface is returned when a host cannot provide a drawing surface.
var ErrNoSurface = errors.New("drawing surface unavailable")

// Color is an RGB colour with a straight (non-premultiplied) alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// ParseColor parses a "#rrggbb" hex colour into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// WithAlpha returns c with its alpha replaced, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = math.Max(0, math.Min(1, a))
	return c
}

// RGBA8 returns the colour with alpha scaled to a byte.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return c.R, c.G, c.B, uint8(math.Round(c.A * 255))
}

// Blend composites c over dst using c's alpha. The result is opaque.
func (c Color) Blend(dst Color) Color {
	mix := func(top, bottom uint8) uint8 {
		return uint8(math.Round(float64(top)*c.A + float64(bottom)*(1-c.A)))
	}
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: 1}
}

// Surface is a 2D drawing target in pixel coordinates.
type Surface interface {
	// Clear fills the whole surface with c.
	Clear(c Color)
	// Line strokes a segment of the given width.
	Line(x1, y1, x2, y2, width float64, c Color)
	// Circle fills a disc.
	Circle(x, y, r float64, c Color)
}

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpLine
	OpCircle
)

// Op is one recorded draw call.
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64 // Circle uses X1, Y1 as centre
	Width, Radius  float64
	Color          Color
}

// Recorder is a Surface that stores draw calls instead of rasterising them.
type Recorder struct {
	Ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Ops: make([]Op, 0, 1024)}
}

func (r *Recorder) Clear(c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

func (r *Recorder) Circle(x, y, radius float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X1: x, Y1: y, Radius: radius, Color: c})
}

// Reset drops recorded calls, keeping capacity.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many calls of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for i := range r.Ops {
		if r.Ops[i].Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of the given kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
