package terminal

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/page"
)

// Overlay draws the page content as text over the backdrop.
type Overlay struct {
	term   *Terminal
	text   host.Color
	accent host.Color
	bg     host.Color
}

// NewOverlay creates a text overlay for term.
func NewOverlay(term *Terminal, text, accent, bg host.Color) *Overlay {
	return &Overlay{term: term, text: text, accent: accent, bg: bg}
}

// fade dims c towards the background by opacity.
func (o *Overlay) fade(c host.Color, opacity float64) host.Color {
	return c.WithAlpha(opacity).Blend(o.bg)
}

func (o *Overlay) Draw(p *page.Page) {
	cellH := float64(o.term.opts.CellHeight)

	for _, v := range p.View() {
		o.drawBlock(p, v, cellH)
	}
	o.drawNav(p, cellH)

	if c := p.Contact(); c != nil {
		_, h := o.term.Size()
		for i, ack := range c.Acks() {
			y := float64(h) - cellH*float64(len(c.Acks())-i)
			o.term.Text(0, y, " "+ack.Message+" ", o.accent, true)
		}
	}
}

func (o *Overlay) drawNav(p *page.Page, cellH float64) {
	nav := p.Nav()
	if nav == nil {
		return
	}
	o.term.Text(0, 0, "[m] menu", o.text, false)

	if !nav.MenuOpen() {
		x := float64(o.term.opts.CellWidth * 10)
		for i, l := range nav.Links() {
			label := fmt.Sprintf("%d %s", i+1, l.Label)
			o.term.Text(x, 0, label, o.linkColor(nav, l), l.Href == nav.Active())
			x += float64(o.term.opts.CellWidth * (len(label) + 2))
		}
		return
	}
	for i, l := range nav.Links() {
		label := fmt.Sprintf(" %d %s ", i+1, l.Label)
		o.term.Text(0, cellH*float64(i+1), label, o.linkColor(nav, l), l.Href == nav.Active())
	}
}

func (o *Overlay) linkColor(nav *page.Navigator, l page.Link) host.Color {
	if l.Href == nav.Active() {
		return o.accent
	}
	return o.text
}

func (o *Overlay) drawBlock(p *page.Page, v page.BlockView, cellH float64) {
	x := float64(o.term.opts.CellWidth * 4)
	fg := o.fade(o.text, v.Opacity)

	switch v.Block.Kind {
	case page.KindHero:
		o.term.Text(x, v.Y, v.Block.Text, o.text, true)
		if ty := p.Typer(); ty != nil {
			o.term.Text(x, v.Y+cellH*2, ty.Text()+"|", o.accent, false)
		}

	case page.KindTitle:
		o.term.Text(x, v.Y, strings.ToUpper(v.Block.Text), o.fade(o.accent, v.Opacity), true)

	case page.KindSkills:
		o.term.Text(x, v.Y, v.Block.Text, fg, true)
		tx := x
		for _, tag := range v.Tags {
			label := "[" + tag.Label + "]"
			o.term.Text(tx, v.Y+cellH*2+tag.Offset, label, o.fade(o.accent, tag.Opacity), false)
			tx += float64(o.term.opts.CellWidth * (len(label) + 1))
		}

	case page.KindForm:
		c := p.Contact()
		if c == nil {
			return
		}
		for i, f := range c.Fields() {
			o.term.Text(x, v.Y+cellH*float64(i), fmt.Sprintf("%-8s %s", f+":", c.Field(f)), fg, false)
		}
		o.term.Text(x, v.Y+cellH*float64(len(c.Fields())+1), "[s] send message", o.accent, true)

	default:
		o.term.Text(x, v.Y, v.Block.Text, fg, false)
	}
}
