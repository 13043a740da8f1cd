// Package camera provides the vertical viewport onto the page.
package camera

import "math"

// Camera is the scroll viewport: a window of the page's height, positioned by
// its top edge. Page coordinates have y growing downwards from the page top.
type Camera struct {
	// ScrollY is the page coordinate shown at the top of the viewport
	ScrollY float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// PageH is the total page height
	PageH float64
}

// New creates a camera at the top of the page.
func New(viewportW, viewportH, pageH float64) *Camera {
	return &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		PageH:     pageH,
	}
}

// MaxScroll returns the largest scroll position that keeps the viewport on
// the page.
func (c *Camera) MaxScroll() float64 {
	return math.Max(0, c.PageH-c.ViewportH)
}

// WorldToScreen converts a page y to a screen y.
func (c *Camera) WorldToScreen(py float64) float64 {
	return py - c.ScrollY
}

// ScreenToWorld converts a screen y to a page y.
func (c *Camera) ScreenToWorld(sy float64) float64 {
	return sy + c.ScrollY
}

// IsVisible reports whether any part of the span [top, top+height) lies in
// the viewport.
func (c *Camera) IsVisible(top, height float64) bool {
	return top < c.ScrollY+c.ViewportH && top+height > c.ScrollY
}

// Resize updates the viewport and re-clamps the scroll position.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.ScrollTo(c.ScrollY)
}

// SetPageHeight updates the page height and re-clamps the scroll position.
func (c *Camera) SetPageHeight(h float64) {
	c.PageH = h
	c.ScrollTo(c.ScrollY)
}

// Pan moves the viewport by dy page pixels, clamped to the page.
// Returns the applied delta.
func (c *Camera) Pan(dy float64) float64 {
	before := c.ScrollY
	c.ScrollTo(c.ScrollY + dy)
	return c.ScrollY - before
}

// ScrollTo positions the viewport top at y, clamped to the page.
func (c *Camera) ScrollTo(y float64) {
	c.ScrollY = clamp(y, 0, c.MaxScroll())
}

// Reset returns to the top of the page.
func (c *Camera) Reset() {
	c.ScrollY = 0
}

// VisibleWorldBounds returns the page span covered by the viewport.
func (c *Camera) VisibleWorldBounds() (top, bottom float64) {
	return c.ScrollY, c.ScrollY + c.ViewportH
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
