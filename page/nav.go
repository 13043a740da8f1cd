package page

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Link is a navigation entry pointing at a section ("#id").
type Link struct {
	Href  string
	Label string
}

// Section is a vertical span of the page.
type Section struct {
	ID     string
	Title  string
	Top    float64
	Height float64
}

// NavTimings holds navigation parameters.
type NavTimings struct {
	Offset  float64 // Added to the scroll position before the section lookup
	FPS     int     // Frame rate the smooth scroll spring is stepped at
	Freq    float64 // Spring angular frequency
	Damping float64 // Spring damping ratio
}

// Navigator tracks the active link, the collapsible menu and smooth scrolling
// to sections.
type Navigator struct {
	links    []Link
	sections []Section
	offset   float64

	active   string
	menuOpen bool

	spring    harmonica.Spring
	scrolling bool
	pos, vel  float64
	target    float64
	limit     float64
}

// NewNavigator creates a navigator with no active link.
func NewNavigator(links []Link, sections []Section, t NavTimings) *Navigator {
	fps := t.FPS
	if fps <= 0 {
		fps = 60
	}
	return &Navigator{
		links:    links,
		sections: sections,
		offset:   t.Offset,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), t.Freq, t.Damping),
		limit:    math.Inf(1),
	}
}

// Links returns the navigation links.
func (n *Navigator) Links() []Link {
	return n.links
}

// Active returns the href of the highlighted link, or "".
func (n *Navigator) Active() string {
	return n.active
}

// MenuOpen reports whether the collapsible menu is expanded.
func (n *Navigator) MenuOpen() bool {
	return n.menuOpen
}

// ToggleMenu expands or collapses the menu.
func (n *Navigator) ToggleMenu() {
	n.menuOpen = !n.menuOpen
}

// SetScrollLimit sets the largest reachable scroll position.
func (n *Navigator) SetScrollLimit(limit float64) {
	n.limit = math.Max(0, limit)
	if n.scrolling {
		n.target = math.Min(n.target, n.limit)
	}
}

// Click activates the link for href, collapses the menu and starts a smooth
// scroll from the current position to the top of the target section.
// Returns false if no section matches.
func (n *Navigator) Click(href string, from float64) bool {
	n.menuOpen = false
	for _, l := range n.links {
		if l.Href == href {
			n.active = href
			break
		}
	}

	sec, ok := n.lookup(href)
	if !ok {
		return false
	}
	if !n.scrolling {
		n.pos, n.vel = from, 0
	}
	n.target = math.Min(math.Max(0, sec.Top), n.limit)
	n.scrolling = true
	return true
}

func (n *Navigator) lookup(href string) (Section, bool) {
	if len(href) < 2 || href[0] != '#' {
		return Section{}, false
	}
	id := href[1:]
	for _, s := range n.sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Scrolling reports whether a smooth scroll is in progress.
func (n *Navigator) Scrolling() bool {
	return n.scrolling
}

// CancelScroll abandons a smooth scroll, as when the user scrolls manually.
func (n *Navigator) CancelScroll() {
	n.scrolling = false
	n.vel = 0
}

// Update advances a smooth scroll by one frame. Returns the new scroll
// position and true while scrolling.
func (n *Navigator) Update() (float64, bool) {
	if !n.scrolling {
		return 0, false
	}
	n.pos, n.vel = n.spring.Update(n.pos, n.vel, n.target)
	if math.Abs(n.pos-n.target) < 0.5 && math.Abs(n.vel) < 0.5 {
		n.pos, n.vel = n.target, 0
		n.scrolling = false
	}
	return n.pos, true
}

// OnScroll highlights the link of the section under scrollY plus the offset.
// When sections overlap the last match wins; a matching section without a
// link clears the highlight.
func (n *Navigator) OnScroll(scrollY float64) {
	pos := scrollY + n.offset
	for _, s := range n.sections {
		if pos >= s.Top && pos < s.Top+s.Height {
			n.active = ""
			href := "#" + s.ID
			for _, l := range n.links {
				if l.Href == href {
					n.active = href
				}
			}
		}
	}
}
