// Field preview tool - interactive particle network with parameter sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/renderer"
)

const panelWidth = 300

// slider describes one tunable bound to a field parameter.
type slider struct {
	label    string
	min, max float32
	get      func(*field.Params) float64
	set      func(*field.Params, float64)
}

var sliders = []slider{
	{"Area per particle (px²)", 2000, 40000,
		func(p *field.Params) float64 { return p.AreaPerParticle },
		func(p *field.Params, v float64) { p.AreaPerParticle = v }},
	{"Max speed", 0, 2,
		func(p *field.Params) float64 { return p.MaxSpeed },
		func(p *field.Params, v float64) { p.MaxSpeed = v }},
	{"Link distance", 20, 400,
		func(p *field.Params) float64 { return p.LinkDistance },
		func(p *field.Params, v float64) { p.LinkDistance = v }},
	{"Link alpha", 0, 1,
		func(p *field.Params) float64 { return p.LinkAlpha },
		func(p *field.Params, v float64) { p.LinkAlpha = v }},
	{"Pointer distance", 20, 500,
		func(p *field.Params) float64 { return p.PointerDistance },
		func(p *field.Params, v float64) { p.PointerDistance = v }},
	{"Pointer alpha", 0, 1,
		func(p *field.Params) float64 { return p.PointerAlpha },
		func(p *field.Params, v float64) { p.PointerAlpha = v }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	defaults, err := field.ParamsFromConfig(cfg.Field)
	if err != nil {
		slog.Error("invalid field config", "error", err)
		os.Exit(1)
	}

	win, err := renderer.Open(cfg.Screen.Width+panelWidth, cfg.Screen.Height, 60, "Particle Field Preview", cfg.Navigation.ScrollStep)
	if err != nil {
		slog.Error("failed to open window", "error", err)
		os.Exit(1)
	}
	defer win.Close()

	preview := &previewer{
		win:      win,
		defaults: defaults,
		params:   defaults,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	preview.reset()

	bus := host.NewBus()
	start := time.Now()
	loop := host.NewLoop(win, bus, host.NewTimers(start), host.SystemClock{})
	bus.Subscribe(host.EventResize, preview.onResize)
	bus.Subscribe(host.EventPointerMove, preview.onPointer)
	loop.OnFrame(preview.frame)

	if err := loop.Run(context.Background()); err != nil {
		slog.Error("preview stopped", "error", err)
	}
}

type previewer struct {
	win      *renderer.Window
	f        *field.Field
	defaults field.Params
	params   field.Params
	rng      *rand.Rand
	paused   bool
}

// fieldSize is the window minus the control panel.
func (pv *previewer) fieldSize() (int, int) {
	w, h := pv.win.Size()
	return max(w-panelWidth, 0), h
}

func (pv *previewer) reset() {
	w, h := pv.fieldSize()
	f, err := field.New(pv.win, w, h, pv.params, pv.rng)
	if err != nil {
		slog.Error("creating field", "error", err)
		return
	}
	pv.f = f
}

func (pv *previewer) onResize(host.Event) {
	pv.f.Resize(pv.fieldSize())
}

func (pv *previewer) onPointer(ev host.Event) {
	pv.f.MovePointer(ev.X, ev.Y)
}

func (pv *previewer) frame(uint64) {
	if !pv.paused {
		pv.f.Step()
	}

	fw, h := pv.fieldSize()
	panelX := float32(fw + 10)
	panelY := float32(10)
	rl.DrawRectangle(int32(fw), 0, panelWidth, int32(h), rl.RayWhite)

	rl.DrawText("Particle Field Parameters", int32(panelX), int32(panelY), 18, rl.DarkGray)
	panelY += 35

	next := pv.params
	for _, s := range sliders {
		v := float32(s.get(&next))
		rl.DrawText(fmt.Sprintf("%s: %.2f", s.label, v), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		v = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			fmt.Sprintf("%.0f", s.min), fmt.Sprintf("%.0f", s.max),
			v, s.min, s.max,
		)
		s.set(&next, float64(v))
		panelY += 35
	}
	if next != pv.params {
		pv.params = next
		pv.f.SetParams(next)
	}

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(pv.paused, "Resume", "Pause")) {
		pv.paused = !pv.paused
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reseed") {
		pv.reset()
	}
	panelY += 40
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
		pv.params = pv.defaults
		pv.reset()
	}
	panelY += 50

	pairs, pointer := pv.f.Links()
	stats := []string{
		fmt.Sprintf("Particles: %d", pv.f.Count()),
		fmt.Sprintf("Pair links: %d", pairs),
		fmt.Sprintf("Pointer links: %d", pointer),
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
	}
	for _, line := range stats {
		rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
