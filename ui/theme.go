// Package ui draws the portfolio page over the particle backdrop in the
// desktop window, with raygui widgets for navigation and the contact form.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/renderer"
)

// Theme holds UI styling constants.
type Theme struct {
	Accent     rl.Color
	Background rl.Color
	NavBg      rl.Color
	CardBg     rl.Color
	TagBg      rl.Color
	Text       rl.Color
	Muted      rl.Color
	BannerBg   rl.Color

	NavHeight      int32
	Padding        int32
	ContentWidth   int32
	FontSize       int32
	TitleFontSize  int32
	HeroFontSize   int32
	TagFontSize    int32
	MenuBreakpoint int32 // Below this window width the nav collapses behind a toggle
}

// DefaultTheme returns the page theme built around the backdrop colours.
func DefaultTheme(accent, background host.Color) Theme {
	return Theme{
		Accent:         renderer.ToRL(accent),
		Background:     renderer.ToRL(background),
		NavBg:          rl.Color{R: 10, G: 10, B: 10, A: 230},
		CardBg:         rl.Color{R: 26, G: 26, B: 26, A: 220},
		TagBg:          renderer.ToRL(accent.WithAlpha(0.15)),
		Text:           rl.Color{R: 230, G: 230, B: 230, A: 255},
		Muted:          rl.Color{R: 160, G: 160, B: 160, A: 255},
		BannerBg:       renderer.ToRL(accent.WithAlpha(0.9)),
		NavHeight:      60,
		Padding:        20,
		ContentWidth:   900,
		FontSize:       18,
		TitleFontSize:  32,
		HeroFontSize:   44,
		TagFontSize:    16,
		MenuBreakpoint: 768,
	}
}
