package terminal

import (
	"math"

	"github.com/pthm-cable/backdrop/host"
)

// toRaster maps a virtual pixel position to raster coordinates.
func (t *Terminal) toRaster(x, y float64) (float64, float64) {
	return x / float64(t.opts.CellWidth), y / float64(t.opts.CellHeight/2)
}

// plot blends c into one raster pixel.
func (t *Terminal) plot(px, py int, c host.Color) {
	if px < 0 || py < 0 || px >= t.rasterCols || py >= t.rasterRows {
		return
	}
	i := py*t.rasterCols + px
	t.raster[i] = c.Blend(t.raster[i])
}

func (t *Terminal) Clear(c host.Color) {
	c.A = 1
	for i := range t.raster {
		t.raster[i] = c
	}
}

// Line rasterises a segment with a DDA walk. Width is ignored; lines are one
// half block thick.
func (t *Terminal) Line(x1, y1, x2, y2, width float64, c host.Color) {
	ax, ay := t.toRaster(x1, y1)
	bx, by := t.toRaster(x2, y2)
	dx, dy := bx-ax, by-ay
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		t.plot(int(ax), int(ay), c)
		return
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	lastX, lastY := -1, -1
	for i := 0; i <= steps; i++ {
		px := int(math.Floor(ax + sx*float64(i)))
		py := int(math.Floor(ay + sy*float64(i)))
		if px == lastX && py == lastY {
			continue
		}
		t.plot(px, py, c)
		lastX, lastY = px, py
	}
}

// Circle fills the raster pixels whose centres fall inside the disc, or the
// pixel under the centre when the disc is smaller than one pixel.
func (t *Terminal) Circle(x, y, r float64, c host.Color) {
	cx, cy := t.toRaster(x, y)
	rx := r / float64(t.opts.CellWidth)
	ry := r / float64(t.opts.CellHeight/2)
	if rx < 0.5 && ry < 0.5 {
		t.plot(int(math.Floor(cx)), int(math.Floor(cy)), c)
		return
	}
	for py := int(math.Floor(cy - ry)); py <= int(math.Ceil(cy+ry)); py++ {
		for px := int(math.Floor(cx - rx)); px <= int(math.Ceil(cx+rx)); px++ {
			nx := (float64(px) + 0.5 - cx) / rx
			ny := (float64(py) + 0.5 - cy) / ry
			if nx*nx+ny*ny <= 1 {
				t.plot(px, py, c)
			}
		}
	}
}

// Pixel returns one raster pixel, for tests and debugging.
func (t *Terminal) Pixel(px, py int) host.Color {
	return t.raster[py*t.rasterCols+px]
}
