package page

import "github.com/pthm-cable/backdrop/config"

// Layout is the page content with absolute vertical positions.
type Layout struct {
	Links    []Link
	Sections []Section
	Blocks   []Block
	Height   float64
}

// NewLayout stacks the configured sections top to bottom and places their
// blocks relative to each section top.
func NewLayout(cfg config.PageConfig) Layout {
	var l Layout
	for _, lc := range cfg.Links {
		l.Links = append(l.Links, Link{Href: lc.Href, Label: lc.Label})
	}

	top := 0.0
	for _, sc := range cfg.Sections {
		l.Sections = append(l.Sections, Section{
			ID:     sc.ID,
			Title:  sc.Title,
			Top:    top,
			Height: sc.Height,
		})
		for _, bc := range sc.Blocks {
			l.Blocks = append(l.Blocks, Block{
				ID:      bc.ID,
				Section: sc.ID,
				Kind:    bc.Kind,
				Top:     top + bc.Offset,
				Height:  bc.Height,
				Text:    bc.Text,
				Tags:    bc.Tags,
			})
		}
		top += sc.Height
	}
	l.Height = top
	return l
}

// Section returns the section with the given id.
func (l Layout) Section(id string) (Section, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// BlocksOf returns the blocks of one section in order.
func (l Layout) BlocksOf(section string) []Block {
	var out []Block
	for _, b := range l.Blocks {
		if b.Section == section {
			out = append(out, b)
		}
	}
	return out
}
