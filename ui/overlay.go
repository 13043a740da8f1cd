package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/page"
)

const fieldMaxLen = 256

// Overlay draws the page in the window and turns widget interaction into bus
// events.
type Overlay struct {
	r   *Renderer
	bus *host.Bus

	editing   string // Contact field with keyboard focus
	showStats bool
}

// NewOverlay creates the window overlay.
func NewOverlay(theme Theme, bus *host.Bus) *Overlay {
	return &Overlay{r: NewRenderer(theme), bus: bus}
}

// Draw renders one frame of page content. It runs inside the host frame, after
// the backdrop.
func (o *Overlay) Draw(p *page.Page) {
	if rl.IsKeyPressed(rl.KeyF3) {
		o.showStats = !o.showStats
	}

	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	contentX := o.contentX(w)

	for _, v := range p.View() {
		o.drawBlock(p, v, contentX)
	}
	o.drawNav(p, w)
	o.drawAcks(p, w, h)

	if o.showStats {
		o.drawStats(p, h)
	}
}

// contentX centres the content column.
func (o *Overlay) contentX(screenW int32) int32 {
	t := o.r.Theme
	if screenW <= t.ContentWidth+2*t.Padding {
		return t.Padding
	}
	return (screenW - t.ContentWidth) / 2
}

func (o *Overlay) contentWidth(screenW int32) int32 {
	return min(o.r.Theme.ContentWidth, screenW-2*o.r.Theme.Padding)
}

func (o *Overlay) drawNav(p *page.Page, w int32) {
	t := o.r.Theme
	o.r.DrawPanel(0, 0, w, t.NavHeight, t.NavBg, 1)
	o.r.DrawText(p.Config().Screen.Title, t.Padding, (t.NavHeight-t.FontSize)/2, t.FontSize+4, t.Accent, 1)

	nav := p.Nav()
	if nav == nil {
		return
	}
	measure := func(s string) int32 { return rl.MeasureText(s, t.FontSize) }
	items, collapsed := NavLayout(nav.Links(), w, nav.MenuOpen(), t, measure)

	if collapsed && gui.Button(ToggleBounds(w, t), "=") {
		o.bus.Publish(host.Event{Type: host.EventToggleMenu})
	}
	for _, item := range items {
		label := item.Link.Label
		if item.Link.Href == nav.Active() {
			label = "> " + label
		}
		if gui.Button(item.Bounds, label) {
			o.bus.Publish(host.Event{Type: host.EventClick, Target: item.Link.Href})
		}
	}
}

func (o *Overlay) drawBlock(p *page.Page, v page.BlockView, x int32) {
	t := o.r.Theme
	screenW := int32(rl.GetScreenWidth())
	width := o.contentWidth(screenW)
	y := int32(v.Y)

	switch v.Block.Kind {
	case page.KindHero:
		o.r.DrawText(v.Block.Text, x, y, t.HeroFontSize, t.Text, v.Opacity)
		if ty := p.Typer(); ty != nil {
			text := ty.Text()
			ty2 := y + t.HeroFontSize + t.Padding
			o.r.DrawText(text, x, ty2, t.TitleFontSize, t.Accent, 1)
			// Blinking caret
			if (p.Now().UnixMilli()/500)%2 == 0 {
				cx := x + rl.MeasureText(text, t.TitleFontSize) + 4
				rl.DrawRectangle(cx, ty2, 3, t.TitleFontSize, t.Accent)
			}
		}

	case page.KindTitle:
		o.r.DrawText(v.Block.Text, x, y, t.TitleFontSize, t.Text, v.Opacity)
		rl.DrawRectangle(x, y+t.TitleFontSize+6, 60, 3, faded(t.Accent, v.Opacity))

	case page.KindCard, page.KindInfo:
		o.r.DrawPanel(x, y, width, int32(v.Block.Height)-t.Padding, t.CardBg, v.Opacity)
		o.r.DrawWrapped(v.Block.Text, x+t.Padding, y+t.Padding, width-2*t.Padding, t.FontSize, t.Text, v.Opacity)

	case page.KindSkills:
		o.r.DrawText(v.Block.Text, x, y, t.FontSize+4, t.Accent, v.Opacity)
		tx := x
		ty := y + t.FontSize + t.Padding
		for _, tag := range v.Tags {
			tx += o.r.DrawTag(tag.Label, tx, ty+int32(tag.Offset), tag.Opacity) + t.Padding/2
		}

	case page.KindForm:
		o.drawForm(p, x, y, width)

	default:
		o.r.DrawWrapped(v.Block.Text, x, y, width, t.FontSize, t.Muted, v.Opacity)
	}
}

// drawForm binds one raygui text box per contact field.
func (o *Overlay) drawForm(p *page.Page, x, y, width int32) {
	c := p.Contact()
	if c == nil {
		return
	}
	t := o.r.Theme
	rowH := t.FontSize * 2
	for _, name := range c.Fields() {
		o.r.DrawText(name, x, y, t.FontSize, t.Muted, 1)
		y += t.FontSize + 4

		h := rowH
		if name == "message" {
			h = rowH * 3
		}
		bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(h)}
		text := c.Field(name)
		if gui.TextBox(bounds, &text, fieldMaxLen, o.editing == name) {
			if o.editing == name {
				o.editing = ""
			} else {
				o.editing = name
			}
		}
		if text != c.Field(name) {
			c.SetField(name, text)
		}
		y += h + t.Padding/2
	}

	send := rl.Rectangle{X: float32(x), Y: float32(y), Width: 160, Height: float32(rowH)}
	if gui.Button(send, "Send Message") {
		o.editing = ""
		o.bus.Publish(host.Event{Type: host.EventSubmit, Target: "contact-form"})
	}
}

func (o *Overlay) drawAcks(p *page.Page, w, h int32) {
	c := p.Contact()
	if c == nil {
		return
	}
	bottom := h - o.r.Theme.Padding
	for _, ack := range c.Acks() {
		bottom = o.r.DrawBanner(ack.Message, w, bottom)
	}
}

func (o *Overlay) drawStats(p *page.Page, h int32) {
	t := o.r.Theme
	s := p.Snapshot(0)
	line := fmt.Sprintf("FPS: %d | Particles: %d | Links: %d | Scroll: %.0f",
		rl.GetFPS(), s.Particles, s.PairLinks, s.ScrollY)
	rl.DrawText(line, t.Padding, h-t.Padding-t.FontSize, t.FontSize-4, t.Muted)
}
