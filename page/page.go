// Package page composes the interactive features of the portfolio page: the
// particle backdrop, the typed headline, navigation highlighting, scroll
// reveal and the mock contact form.
//
// A Page is attached to a host Loop. When the loop publishes EventReady the
// page initializes each feature independently; a feature that fails to start
// is logged and skipped while the rest of the page keeps working.
package page

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/camera"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/telemetry"
)

// Feature names used in logs.
const (
	FeatureNetwork    = "network"
	FeatureTyping     = "typing"
	FeatureNavigation = "navigation"
	FeatureReveal     = "reveal"
	FeatureContact    = "contact"
	FeatureChime      = "chime"
)

// Chime plays a short acknowledgement sound.
type Chime interface {
	Init() error
	Play()
}

// Overlay draws the page content on top of the backdrop each frame.
type Overlay interface {
	Draw(p *Page)
}

// Deps are the collaborators a Page runs with. Perf, Output, Chime and
// Overlay are optional.
type Deps struct {
	Host    host.Host
	Loop    *host.Loop
	Bus     *host.Bus
	Timers  *host.Timers
	Perf    *telemetry.PerfCollector
	Output  *telemetry.OutputManager
	Chime   Chime
	Overlay Overlay
	Rand    *rand.Rand

	// LogStats logs frame and perf stats every log interval
	LogStats bool
}

// Page owns every feature instance. All methods run on the loop goroutine.
type Page struct {
	cfg    *config.Config
	deps   Deps
	layout Layout
	cam    *camera.Camera

	// Features; nil when disabled
	field   *field.Field
	typer   *Typer
	nav     *Navigator
	reveal  *Revealer
	contact *Contact
	chime   Chime

	loaded   bool
	disabled map[string]error
	pointerX float64
	pointerY float64

	stats statsWindow
}

// New builds a page from configuration. Nothing starts until the loop
// publishes EventReady; call Attach first.
func New(cfg *config.Config, deps Deps) *Page {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	layout := NewLayout(cfg.Page)
	w, h := deps.Host.Size()
	return &Page{
		cfg:      cfg,
		deps:     deps,
		layout:   layout,
		cam:      camera.New(float64(w), float64(h), layout.Height),
		disabled: make(map[string]error),
	}
}

// Attach registers the page's handlers on the bus and its frame callback on
// the loop.
func (p *Page) Attach() {
	bus := p.deps.Bus
	bus.Subscribe(host.EventReady, p.onReady)
	bus.Subscribe(host.EventResize, p.onResize)
	bus.Subscribe(host.EventPointerMove, p.onPointerMove)
	bus.Subscribe(host.EventScroll, p.onScroll)
	bus.Subscribe(host.EventClick, p.onClick)
	bus.Subscribe(host.EventToggleMenu, p.onToggleMenu)
	bus.Subscribe(host.EventSubmit, p.onSubmit)
	p.deps.Loop.OnFrame(p.frame)
}

// initFeature runs fn and disables the feature if it fails.
func (p *Page) initFeature(name string, fn func() error) {
	if err := fn(); err != nil {
		p.disabled[name] = err
		slog.Warn("feature disabled", "feature", name, "error", err)
		return
	}
	slog.Debug("feature ready", "feature", name)
}

func (p *Page) onReady(host.Event) {
	// Content is shown before any feature starts
	p.loaded = true

	p.initFeature(FeatureNetwork, p.initNetwork)
	p.initFeature(FeatureTyping, p.initTyping)
	p.initFeature(FeatureNavigation, p.initNavigation)
	p.initFeature(FeatureReveal, p.initReveal)
	p.initFeature(FeatureContact, p.initContact)
	if p.cfg.Contact.Chime && p.deps.Chime != nil {
		p.initFeature(FeatureChime, p.initChime)
	}

	slog.Info("page ready",
		"sections", len(p.layout.Sections),
		"page_height", p.layout.Height,
		"disabled", len(p.disabled),
	)
}

func (p *Page) initNetwork() error {
	surface, err := p.deps.Host.Surface()
	if err != nil {
		return fmt.Errorf("acquiring surface: %w", err)
	}
	params, err := field.ParamsFromConfig(p.cfg.Field)
	if err != nil {
		return err
	}
	w, h := p.deps.Host.Size()
	f, err := field.New(surface, w, h, params, p.deps.Rand)
	if err != nil {
		return err
	}
	if p.deps.Perf != nil {
		f.SetPhaseTimer(p.deps.Perf)
	}
	p.field = f
	return nil
}

func (p *Page) initTyping() error {
	d := p.cfg.Derived
	t, err := NewTyper(p.deps.Timers, p.cfg.Typing.Phrases, TyperTimings{
		Type:   d.TypeDelay,
		Delete: d.DeleteDelay,
		Hold:   d.Hold,
		Gap:    d.Gap,
	})
	if err != nil {
		return err
	}
	t.Start()
	p.typer = t
	return nil
}

func (p *Page) initNavigation() error {
	if len(p.layout.Links) == 0 {
		return fmt.Errorf("no navigation links")
	}
	nc := p.cfg.Navigation
	p.nav = NewNavigator(p.layout.Links, p.layout.Sections, NavTimings{
		Offset:  nc.ScrollOffset,
		FPS:     p.cfg.Screen.TargetFPS,
		Freq:    nc.SpringFreq,
		Damping: nc.SpringDamping,
	})
	p.nav.SetScrollLimit(p.cam.MaxScroll())
	p.nav.OnScroll(p.cam.ScrollY)
	return nil
}

func (p *Page) initReveal() error {
	rc := p.cfg.Reveal
	d := p.cfg.Derived
	p.reveal = NewRevealer(p.deps.Timers, p.layout.Blocks, RevealTimings{
		Threshold:     rc.Threshold,
		BottomMargin:  rc.BottomMargin,
		Stagger:       d.Stagger,
		Settle:        d.Settle,
		HiddenOpacity: rc.HiddenOpacity,
		DropOffset:    rc.TagDropOffset,
		Transition:    d.Transition,
	})
	// Initial observation, like an observer reporting targets already in view
	p.reveal.Observe(p.cam.ScrollY, p.cam.ViewportH)
	return nil
}

func (p *Page) initContact() error {
	hasForm := false
	for _, b := range p.layout.Blocks {
		if b.Kind == KindForm {
			hasForm = true
			break
		}
	}
	if !hasForm {
		return fmt.Errorf("no contact form on page")
	}
	cc := p.cfg.Contact
	p.contact = NewContact(p.deps.Timers, cc.Fields, cc.Message, p.cfg.Derived.AckDisplay)
	p.contact.OnSubmit(p.playChime)
	return nil
}

func (p *Page) initChime() error {
	if err := p.deps.Chime.Init(); err != nil {
		return err
	}
	p.chime = p.deps.Chime
	return nil
}

func (p *Page) playChime() {
	if p.chime != nil {
		p.chime.Play()
	}
}

func (p *Page) onResize(ev host.Event) {
	if p.field != nil {
		p.field.Resize(ev.W, ev.H)
	}
	p.cam.Resize(float64(ev.W), float64(ev.H))
	if p.nav != nil {
		p.nav.SetScrollLimit(p.cam.MaxScroll())
	}
	p.scrolled()
}

func (p *Page) onPointerMove(ev host.Event) {
	p.pointerX, p.pointerY = ev.X, ev.Y
	if p.field != nil {
		p.field.MovePointer(ev.X, ev.Y)
	}
}

func (p *Page) onScroll(ev host.Event) {
	if p.nav != nil {
		p.nav.CancelScroll()
	}
	if p.cam.Pan(ev.DY) != 0 {
		p.scrolled()
	}
}

// scrolled propagates a scroll position change to the scroll observers.
func (p *Page) scrolled() {
	if p.nav != nil {
		p.nav.OnScroll(p.cam.ScrollY)
	}
	if p.reveal != nil {
		p.reveal.Observe(p.cam.ScrollY, p.cam.ViewportH)
	}
}

func (p *Page) onClick(ev host.Event) {
	if p.nav == nil {
		return
	}
	if !p.nav.Click(ev.Target, p.cam.ScrollY) {
		slog.Debug("navigation target not found", "href", ev.Target)
	}
}

func (p *Page) onToggleMenu(host.Event) {
	if p.nav != nil {
		p.nav.ToggleMenu()
	}
}

func (p *Page) onSubmit(ev host.Event) {
	if p.contact != nil {
		p.contact.Submit(ev.Fields)
	}
}

func (p *Page) frame(n uint64) {
	perf := p.deps.Perf
	if perf != nil {
		perf.StartFrame()
		perf.StartPhase(telemetry.PhasePage)
	}

	if p.nav != nil {
		if y, ok := p.nav.Update(); ok {
			p.cam.ScrollTo(y)
			p.scrolled()
		}
	}

	if p.field != nil {
		p.field.Step()
	}

	if p.deps.Overlay != nil {
		if perf != nil {
			perf.StartPhase(telemetry.PhaseOverlay)
		}
		p.deps.Overlay.Draw(p)
	}

	if perf != nil {
		perf.EndFrame()
	}
	p.recordFrame(n)
}

// Loaded reports whether the content-ready routine has run.
func (p *Page) Loaded() bool { return p.loaded }

// Disabled returns the error a feature failed with, or nil.
func (p *Page) Disabled(feature string) error { return p.disabled[feature] }

// Layout returns the page layout.
func (p *Page) Layout() Layout { return p.layout }

// Camera returns the scroll viewport.
func (p *Page) Camera() *camera.Camera { return p.cam }

// Field returns the particle backdrop, or nil when disabled.
func (p *Page) Field() *field.Field { return p.field }

// Typer returns the headline rotator, or nil when disabled.
func (p *Page) Typer() *Typer { return p.typer }

// Nav returns the navigator, or nil when disabled.
func (p *Page) Nav() *Navigator { return p.nav }

// Reveal returns the scroll revealer, or nil when disabled.
func (p *Page) Reveal() *Revealer { return p.reveal }

// Contact returns the contact form, or nil when disabled.
func (p *Page) Contact() *Contact { return p.contact }

// Pointer returns the last pointer position in screen coordinates.
func (p *Page) Pointer() (x, y float64) { return p.pointerX, p.pointerY }

// Now returns the loop time used for animations.
func (p *Page) Now() time.Time { return p.deps.Timers.Now() }

// Config returns the configuration the page was built with.
func (p *Page) Config() *config.Config { return p.cfg }
