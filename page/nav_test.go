package page

import (
	"math"
	"testing"
)

var testSections = []Section{
	{ID: "home", Top: 0, Height: 720},
	{ID: "about", Top: 720, Height: 560},
	{ID: "skills", Top: 1280, Height: 720},
	{ID: "contact", Top: 2000, Height: 720},
}

var testLinks = []Link{
	{Href: "#home", Label: "Home"},
	{Href: "#about", Label: "About"},
	{Href: "#skills", Label: "Skills"},
	{Href: "#contact", Label: "Contact"},
}

func newTestNavigator() *Navigator {
	return NewNavigator(testLinks, testSections, NavTimings{Offset: 100, FPS: 60, Freq: 6, Damping: 1})
}

func TestNavigator_OnScrollOffset(t *testing.T) {
	tests := []struct {
		scrollY float64
		want    string
	}{
		{0, "#home"},
		{619, "#home"},
		{620, "#about"}, // 620 + 100 reaches the about section
		{1179, "#about"},
		{1180, "#skills"},
		{1900, "#contact"},
	}

	n := newTestNavigator()
	for _, tt := range tests {
		n.OnScroll(tt.scrollY)
		if got := n.Active(); got != tt.want {
			t.Errorf("OnScroll(%v) active = %q, want %q", tt.scrollY, got, tt.want)
		}
	}

	// Past every section the previous highlight stays
	n.OnScroll(2620)
	if got := n.Active(); got != "#contact" {
		t.Errorf("past the page end active = %q, want %q", got, "#contact")
	}
}

func TestNavigator_SectionWithoutLinkClears(t *testing.T) {
	sections := append(append([]Section{}, testSections...), Section{ID: "footer", Top: 2720, Height: 200})
	n := NewNavigator(testLinks, sections, NavTimings{Offset: 100})

	n.OnScroll(1900)
	n.OnScroll(2650)
	if got := n.Active(); got != "" {
		t.Errorf("active = %q, want none for unlinked section", got)
	}
}

func TestNavigator_MenuToggleAndClickCloses(t *testing.T) {
	n := newTestNavigator()
	n.ToggleMenu()
	if !n.MenuOpen() {
		t.Fatal("menu not open after toggle")
	}
	n.Click("#skills", 0)
	if n.MenuOpen() {
		t.Error("menu still open after click")
	}
	if n.Active() != "#skills" {
		t.Errorf("active = %q, want #skills", n.Active())
	}
}

func TestNavigator_SmoothScrollConverges(t *testing.T) {
	n := newTestNavigator()
	n.SetScrollLimit(2000)

	if !n.Click("#skills", 0) {
		t.Fatal("Click returned false for known section")
	}

	var y float64
	frames := 0
	for n.Scrolling() && frames < 600 {
		var ok bool
		y, ok = n.Update()
		if !ok {
			t.Fatal("Update reported idle while scrolling")
		}
		frames++
	}
	if n.Scrolling() {
		t.Fatalf("smooth scroll did not settle in %d frames (y=%v)", frames, y)
	}
	if y != 1280 {
		t.Errorf("settled at %v, want 1280", y)
	}
	if _, ok := n.Update(); ok {
		t.Error("Update active after settling")
	}
}

func TestNavigator_ClickClampsToLimit(t *testing.T) {
	n := newTestNavigator()
	n.SetScrollLimit(1500)
	n.Click("#contact", 0)

	var y float64
	for i := 0; i < 600 && n.Scrolling(); i++ {
		y, _ = n.Update()
	}
	if math.Abs(y-1500) > 1e-9 {
		t.Errorf("settled at %v, want limit 1500", y)
	}
}

func TestNavigator_UnknownTarget(t *testing.T) {
	n := newTestNavigator()
	n.ToggleMenu()
	if n.Click("#missing", 0) {
		t.Error("Click returned true for unknown section")
	}
	if n.MenuOpen() {
		t.Error("menu not closed by click on unknown target")
	}
	if n.Scrolling() {
		t.Error("scrolling started for unknown target")
	}
}

func TestNavigator_CancelScroll(t *testing.T) {
	n := newTestNavigator()
	n.Click("#about", 0)
	n.Update()
	n.CancelScroll()
	if n.Scrolling() {
		t.Error("still scrolling after cancel")
	}
}
