// Package field implements the animated particle network drawn behind the page.
//
// Particles drift at a constant speed, bounce off the surface edges and are
// joined by translucent lines when close to each other or to the pointer.
// Particles live in an ark ECS world owned by the Field.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/host"
)

// ErrNoSurface is returned by New when no drawing surface is available.
var ErrNoSurface = errors.New("particle field: no drawing surface")

// Phase names recorded by Step.
const (
	PhaseClear     = "clear"
	PhaseIntegrate = "integrate"
	PhaseLinks     = "links"
	PhaseParticles = "particles"
	PhasePointer   = "pointer"
)

// PhaseTimer receives phase boundaries during Step. telemetry.PerfCollector
// satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Params holds the tunables of the network.
type Params struct {
	AreaPerParticle float64
	MaxSpeed        float64
	MinRadius       float64
	MaxRadius       float64

	LinkDistance float64
	LinkAlpha    float64
	LinkWidth    float64

	PointerDistance float64
	PointerAlpha    float64
	PointerWidth    float64

	Color      host.Color
	Background host.Color
}

// DefaultParams returns the stock look: one particle per 15000 px², teal on
// near-black.
func DefaultParams() Params {
	return Params{
		AreaPerParticle: 15000,
		MaxSpeed:        0.25,
		MinRadius:       1,
		MaxRadius:       3,
		LinkDistance:    150,
		LinkAlpha:       0.3,
		LinkWidth:       1,
		PointerDistance: 200,
		PointerAlpha:    0.5,
		PointerWidth:    2,
		Color:           host.Color{R: 0x00, G: 0xd4, B: 0xaa, A: 1},
		Background:      host.Color{R: 0x0a, G: 0x0a, B: 0x0a, A: 1},
	}
}

// ParamsFromConfig converts the field section of the config.
func ParamsFromConfig(cfg config.FieldConfig) (Params, error) {
	fg, err := host.ParseColor(cfg.Color)
	if err != nil {
		return Params{}, fmt.Errorf("field colour: %w", err)
	}
	bg, err := host.ParseColor(cfg.Background)
	if err != nil {
		return Params{}, fmt.Errorf("field background: %w", err)
	}
	return Params{
		AreaPerParticle: cfg.AreaPerParticle,
		MaxSpeed:        cfg.MaxSpeed,
		MinRadius:       cfg.MinRadius,
		MaxRadius:       cfg.MaxRadius,
		LinkDistance:    cfg.LinkDistance,
		LinkAlpha:       cfg.LinkAlpha,
		LinkWidth:       cfg.LinkWidth,
		PointerDistance: cfg.PointerDistance,
		PointerAlpha:    cfg.PointerAlpha,
		PointerWidth:    cfg.PointerWidth,
		Color:           fg,
		Background:      bg,
	}, nil
}

// Particle is a read-only copy of one particle.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// ParticleCount returns floor(w*h/area), or 0 for a degenerate surface.
func ParticleCount(w, h int, area float64) int {
	if w <= 0 || h <= 0 || area <= 0 {
		return 0
	}
	return int(math.Floor(float64(w) * float64(h) / area))
}

// LinkAlpha returns the opacity of a connection of length d: base at 0,
// falling linearly to 0 at maxDist and beyond.
func LinkAlpha(d, maxDist, base float64) float64 {
	if d >= maxDist || maxDist <= 0 {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return (maxDist - d) / maxDist * base
}

// Field is the particle network.
type Field struct {
	surface host.Surface
	params  Params
	rng     *rand.Rand
	timer   PhaseTimer

	width, height int
	pointerX      float64
	pointerY      float64

	world    *ecs.World
	mapper   *ecs.Map3[components.Position, components.Velocity, components.Body]
	filter   *ecs.Filter3[components.Position, components.Velocity, components.Body]
	entities []ecs.Entity

	// Positions gathered during integration, reused for the pair pass
	scratch []components.Position

	// Lines drawn by the last Step
	pairLinks    int
	pointerLinks int
}

// New creates a field drawing to surface and populates it for a w×h area.
func New(surface host.Surface, w, h int, params Params, rng *rand.Rand) (*Field, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	world := ecs.NewWorld()
	f := &Field{
		surface: surface,
		params:  params,
		rng:     rng,
		world:   world,
		mapper:  ecs.NewMap3[components.Position, components.Velocity, components.Body](world),
		filter:  ecs.NewFilter3[components.Position, components.Velocity, components.Body](world),
	}
	f.Resize(w, h)
	return f, nil
}

// SetPhaseTimer attaches a timer that receives phase boundaries from Step.
func (f *Field) SetPhaseTimer(t PhaseTimer) {
	f.timer = t
}

// SetParams replaces the tunables. The particle set is regenerated only if
// the density changed.
func (f *Field) SetParams(p Params) {
	regen := p.AreaPerParticle != f.params.AreaPerParticle
	f.params = p
	if regen {
		f.Resize(f.width, f.height)
	}
}

// Params returns the current tunables.
func (f *Field) Params() Params {
	return f.params
}

// Resize sets the dimensions and discards every particle in favour of a
// freshly sampled set.
func (f *Field) Resize(w, h int) {
	f.width, f.height = w, h

	for _, e := range f.entities {
		f.world.RemoveEntity(e)
	}
	f.entities = f.entities[:0]

	n := ParticleCount(w, h, f.params.AreaPerParticle)
	for i := 0; i < n; i++ {
		f.spawn()
	}
}

func (f *Field) spawn() {
	p := f.params
	pos := components.Position{
		X: f.rng.Float64() * float64(f.width),
		Y: f.rng.Float64() * float64(f.height),
	}
	vel := components.Velocity{
		X: (f.rng.Float64() - 0.5) * 2 * p.MaxSpeed,
		Y: (f.rng.Float64() - 0.5) * 2 * p.MaxSpeed,
	}
	body := components.Body{
		Radius: p.MinRadius + f.rng.Float64()*(p.MaxRadius-p.MinRadius),
	}
	f.entities = append(f.entities, f.mapper.NewEntity(&pos, &vel, &body))
}

// MovePointer records the latest pointer position.
func (f *Field) MovePointer(x, y float64) {
	f.pointerX, f.pointerY = x, y
}

// Pointer returns the last recorded pointer position.
func (f *Field) Pointer() (x, y float64) {
	return f.pointerX, f.pointerY
}

// Size returns the current dimensions.
func (f *Field) Size() (w, h int) {
	return f.width, f.height
}

// Count returns the number of particles.
func (f *Field) Count() int {
	return len(f.entities)
}

// Links returns how many particle pairs and particle-pointer lines the last
// Step drew.
func (f *Field) Links() (pairs, pointer int) {
	return f.pairLinks, f.pointerLinks
}

// Particles returns a snapshot of every particle.
func (f *Field) Particles() []Particle {
	out := make([]Particle, 0, len(f.entities))
	query := f.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		out = append(out, Particle{X: pos.X, Y: pos.Y, VX: vel.X, VY: vel.Y, Radius: body.Radius})
	}
	return out
}

func (f *Field) phase(name string) {
	if f.timer != nil {
		f.timer.StartPhase(name)
	}
}

// Step advances every particle by one frame and draws the network.
func (f *Field) Step() {
	p := f.params
	s := f.surface

	f.phase(PhaseClear)
	s.Clear(p.Background)

	f.phase(PhaseIntegrate)
	f.integrate()

	f.phase(PhaseLinks)
	f.pairLinks, f.pointerLinks = 0, 0
	pts := f.scratch
	for i := 0; i < len(pts); i++ {
		a := pts[i]
		for j := i + 1; j < len(pts); j++ {
			b := pts[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < p.LinkDistance {
				s.Line(a.X, a.Y, b.X, b.Y, p.LinkWidth, p.Color.WithAlpha(LinkAlpha(d, p.LinkDistance, p.LinkAlpha)))
				f.pairLinks++
			}
		}
	}

	f.phase(PhaseParticles)
	query := f.filter.Query()
	for query.Next() {
		pos, _, body := query.Get()
		s.Circle(pos.X, pos.Y, body.Radius, p.Color)
	}

	f.phase(PhasePointer)
	for _, a := range pts {
		d := math.Hypot(a.X-f.pointerX, a.Y-f.pointerY)
		if d < p.PointerDistance {
			s.Line(a.X, a.Y, f.pointerX, f.pointerY, p.PointerWidth, p.Color.WithAlpha(LinkAlpha(d, p.PointerDistance, p.PointerAlpha)))
			f.pointerLinks++
		}
	}
}

// integrate moves every particle, reflecting velocity per axis when the new
// coordinate leaves the surface, then clamping the coordinate into bounds.
func (f *Field) integrate() {
	w, h := float64(f.width), float64(f.height)
	f.scratch = f.scratch[:0]

	query := f.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		pos.X += vel.X
		pos.Y += vel.Y

		if pos.X < 0 || pos.X > w {
			vel.X = -vel.X
		}
		if pos.Y < 0 || pos.Y > h {
			vel.Y = -vel.Y
		}
		pos.X = math.Max(0, math.Min(w, pos.X))
		pos.Y = math.Max(0, math.Min(h, pos.Y))

		f.scratch = append(f.scratch, *pos)
	}
}
