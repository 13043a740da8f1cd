package page

import (
	"math"
	"time"

	"github.com/pthm-cable/backdrop/host"
)

// Block kinds that are observed by the Revealer.
const (
	KindHero   = "hero"
	KindTitle  = "title"
	KindText   = "text"
	KindInfo   = "info"
	KindCard   = "card"
	KindSkills = "skills"
	KindForm   = "form"
)

// Observed reports whether blocks of kind fade in on scroll.
func Observed(kind string) bool {
	switch kind {
	case KindTitle, KindText, KindInfo, KindCard, KindSkills:
		return true
	}
	return false
}

// Block is a piece of content placed on the page.
type Block struct {
	ID      string
	Section string
	Kind    string
	Top     float64
	Height  float64
	Text    string
	Tags    []string
}

// RevealTimings holds scroll reveal parameters.
type RevealTimings struct {
	Threshold     float64       // Visible share of a block that counts as intersecting
	BottomMargin  float64       // Shrinks the viewport from the bottom
	Stagger       time.Duration // Delay between successive skill tags
	Settle        time.Duration // Delay between resetting and releasing a tag
	HiddenOpacity float64       // Opacity of a block not yet revealed
	DropOffset    float64       // Vertical offset of a reset tag
	Transition    time.Duration // Easing time for opacity and offset changes
}

// Fade is an eased transition of opacity and vertical offset.
type Fade struct {
	FromOpacity, ToOpacity float64
	FromOffset, ToOffset   float64
	Start                  time.Time
}

// At evaluates the fade at now over the given duration.
func (f Fade) At(now time.Time, d time.Duration) (opacity, offset float64) {
	k := 1.0
	if d > 0 && !f.Start.IsZero() {
		k = easeInOut(float64(now.Sub(f.Start)) / float64(d))
	}
	return lerp(f.FromOpacity, f.ToOpacity, k), lerp(f.FromOffset, f.ToOffset, k)
}

func lerp(a, b, k float64) float64 {
	return a + (b-a)*k
}

// easeInOut is a smoothstep on [0, 1].
func easeInOut(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return x * x * (3 - 2*x)
}

// RevealState is the reveal state of one observed block.
type RevealState struct {
	Block        Block
	Intersecting bool
	Visible      bool // Set on first intersection, never cleared
	Fade         Fade
	Tags         []Fade

	tagTimers []host.TimerID
}

// Revealer marks blocks visible as they scroll into view and staggers the
// tags of skill blocks.
type Revealer struct {
	timers  *host.Timers
	timings RevealTimings
	states  []*RevealState
}

// NewRevealer observes every block whose kind is observed. Blocks start at
// the hidden opacity with their tags fully shown.
func NewRevealer(timers *host.Timers, blocks []Block, t RevealTimings) *Revealer {
	r := &Revealer{timers: timers, timings: t}
	for _, b := range blocks {
		if !Observed(b.Kind) {
			continue
		}
		st := &RevealState{
			Block: b,
			Fade:  Fade{FromOpacity: t.HiddenOpacity, ToOpacity: t.HiddenOpacity},
			Tags:  make([]Fade, len(b.Tags)),
		}
		for i := range st.Tags {
			st.Tags[i] = Fade{FromOpacity: 1, ToOpacity: 1}
		}
		r.states = append(r.states, st)
	}
	return r
}

// States returns the observed blocks in page order.
func (r *Revealer) States() []*RevealState {
	return r.states
}

// State returns the state of the block with the given id.
func (r *Revealer) State(id string) (*RevealState, bool) {
	for _, st := range r.states {
		if st.Block.ID == id {
			return st, true
		}
	}
	return nil, false
}

// Revealed returns how many blocks have become visible.
func (r *Revealer) Revealed() int {
	n := 0
	for _, st := range r.states {
		if st.Visible {
			n++
		}
	}
	return n
}

// Transition returns the easing time used by the fades.
func (r *Revealer) Transition() time.Duration {
	return r.timings.Transition
}

// IntersectionRatio returns the share of [top, top+height) inside
// [rootTop, rootBottom]. A zero-height block counts fully when its top lies
// inside the root.
func IntersectionRatio(top, height, rootTop, rootBottom float64) float64 {
	if height <= 0 {
		if top >= rootTop && top <= rootBottom {
			return 1
		}
		return 0
	}
	overlap := math.Min(top+height, rootBottom) - math.Max(top, rootTop)
	if overlap <= 0 {
		return 0
	}
	return overlap / height
}

// Observe recomputes intersections for the viewport [scrollY, scrollY+viewportH]
// shrunk by the bottom margin. A block entering the viewport becomes visible;
// a skill block re-entering replays its tag stagger.
func (r *Revealer) Observe(scrollY, viewportH float64) {
	rootTop := scrollY
	rootBottom := scrollY + viewportH - r.timings.BottomMargin
	now := r.timers.Now()

	for _, st := range r.states {
		ratio := IntersectionRatio(st.Block.Top, st.Block.Height, rootTop, rootBottom)
		hit := ratio > 0 && ratio >= r.timings.Threshold
		entered := hit && !st.Intersecting
		st.Intersecting = hit
		if !entered {
			continue
		}

		if !st.Visible {
			st.Visible = true
			st.Fade = Fade{
				FromOpacity: r.timings.HiddenOpacity,
				ToOpacity:   1,
				Start:       now,
			}
		}
		if st.Block.Kind == KindSkills {
			r.staggerTags(st)
		}
	}
}

func (r *Revealer) staggerTags(st *RevealState) {
	for _, id := range st.tagTimers {
		r.timers.Cancel(id)
	}
	st.tagTimers = st.tagTimers[:0]

	for i := range st.Tags {
		id := r.timers.After(time.Duration(i)*r.timings.Stagger, func() {
			r.resetTag(st, i)
		})
		st.tagTimers = append(st.tagTimers, id)
	}
}

// resetTag drops tag i out of view, then releases it after the settle delay.
func (r *Revealer) resetTag(st *RevealState, i int) {
	drop := r.timings.DropOffset
	st.Tags[i] = Fade{FromOffset: drop, ToOffset: drop}

	id := r.timers.After(r.timings.Settle, func() {
		st.Tags[i] = Fade{
			FromOpacity: 0, ToOpacity: 1,
			FromOffset: drop, ToOffset: 0,
			Start: r.timers.Now(),
		}
	})
	st.tagTimers = append(st.tagTimers, id)
}
