package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/page"
)

// NavItem is a navigation button placed on screen.
type NavItem struct {
	Link   page.Link
	Bounds rl.Rectangle
}

// NavLayout places the navigation buttons. On a wide window the buttons run
// right-aligned along the bar; on a narrow one the bar shows a toggle and,
// when the menu is open, the buttons stack below it.
func NavLayout(links []page.Link, screenW int32, menuOpen bool, t Theme, measure func(string) int32) (items []NavItem, collapsed bool) {
	collapsed = screenW < t.MenuBreakpoint
	btnH := float32(t.NavHeight - t.Padding)

	if collapsed {
		if !menuOpen {
			return nil, true
		}
		y := float32(t.NavHeight)
		for _, l := range links {
			items = append(items, NavItem{
				Link:   l,
				Bounds: rl.Rectangle{X: 0, Y: y, Width: float32(screenW), Height: btnH},
			})
			y += btnH
		}
		return items, true
	}

	x := float32(screenW - t.Padding)
	for i := len(links) - 1; i >= 0; i-- {
		w := float32(measure(links[i].Label) + 2*t.Padding)
		x -= w
		items = append(items, NavItem{
			Link:   links[i],
			Bounds: rl.Rectangle{X: x, Y: float32(t.Padding / 2), Width: w, Height: btnH},
		})
		x -= float32(t.Padding / 2)
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, false
}

// ToggleBounds is the menu toggle button shown when the nav is collapsed.
func ToggleBounds(screenW int32, t Theme) rl.Rectangle {
	size := float32(t.NavHeight - t.Padding)
	return rl.Rectangle{X: float32(screenW-t.Padding) - size, Y: float32(t.Padding / 2), Width: size, Height: size}
}

// Wrap breaks text into lines no wider than width using measure.
func Wrap(text string, width int32, measure func(string) int32) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && measure(candidate) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
