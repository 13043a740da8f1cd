package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// faded scales a colour's alpha by opacity.
func faded(c rl.Color, opacity float64) rl.Color {
	return rl.Fade(c, float32(opacity)*float32(c.A)/255)
}

// DrawPanel draws a panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32, bg rl.Color, opacity float64) {
	rl.DrawRectangle(x, y, width, height, faded(bg, opacity))
}

// DrawText draws text with the given opacity.
func (r *Renderer) DrawText(text string, x, y, size int32, c rl.Color, opacity float64) {
	rl.DrawText(text, x, y, size, faded(c, opacity))
}

// DrawWrapped draws text wrapped to width and returns the y below it.
func (r *Renderer) DrawWrapped(text string, x, y, width, size int32, c rl.Color, opacity float64) int32 {
	for _, line := range Wrap(text, width, func(s string) int32 { return rl.MeasureText(s, size) }) {
		r.DrawText(line, x, y, size, c, opacity)
		y += size + size/3
	}
	return y
}

// DrawTag draws a skill chip and returns its width.
func (r *Renderer) DrawTag(label string, x, y int32, opacity float64) int32 {
	size := r.Theme.TagFontSize
	w := rl.MeasureText(label, size) + 2*size/2
	rl.DrawRectangleRounded(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(size * 2)},
		0.5, 6, faded(r.Theme.TagBg, opacity),
	)
	r.DrawText(label, x+size/2, y+size/2, size, r.Theme.Accent, opacity)
	return w
}

// DrawBanner draws an acknowledgement message anchored to the bottom right.
func (r *Renderer) DrawBanner(text string, screenW, bottom int32) int32 {
	size := r.Theme.FontSize
	pad := r.Theme.Padding
	w := rl.MeasureText(text, size) + 2*pad
	h := size + pad
	y := bottom - h
	rl.DrawRectangle(screenW-w-pad, y, w, h, r.Theme.BannerBg)
	rl.DrawText(text, screenW-w, y+pad/2, size, r.Theme.Background)
	return y - pad/2
}
