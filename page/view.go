package page

// TagView is a skill tag as drawn this frame.
type TagView struct {
	Label   string
	Opacity float64
	Offset  float64
}

// BlockView is a block as drawn this frame, in screen coordinates.
type BlockView struct {
	Block   Block
	Y       float64 // Screen y of the block top, including the reveal offset
	Opacity float64
	Tags    []TagView
}

// View returns the blocks inside the viewport with their reveal state
// evaluated at the current loop time. Blocks the revealer does not observe
// are fully opaque.
func (p *Page) View() []BlockView {
	now := p.Now()
	var out []BlockView
	for _, b := range p.layout.Blocks {
		if !p.cam.IsVisible(b.Top, b.Height) {
			continue
		}
		v := BlockView{Block: b, Y: p.cam.WorldToScreen(b.Top), Opacity: 1}

		var st *RevealState
		if p.reveal != nil {
			st, _ = p.reveal.State(b.ID)
		}
		if st != nil {
			op, off := st.Fade.At(now, p.reveal.Transition())
			v.Opacity = op
			v.Y += off
		}
		for i, label := range b.Tags {
			tv := TagView{Label: label, Opacity: v.Opacity}
			if st != nil && i < len(st.Tags) {
				op, off := st.Tags[i].At(now, p.reveal.Transition())
				tv.Opacity = op * v.Opacity
				tv.Offset = off
			}
			v.Tags = append(v.Tags, tv)
		}
		out = append(out, v)
	}
	return out
}
