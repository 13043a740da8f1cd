package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/pthm-cable/backdrop/audio"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/page"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/terminal"
	"github.com/pthm-cable/backdrop/ui"
)

// Backend names accepted by -backend.
const (
	backendWindow   = "window"
	backendTerminal = "terminal"
	backendHeadless = "headless"
)

func main() {
	// CLI flags, with defaults from the environment (.env is loaded on import)
	configPath := flag.String("config", os.Getenv("BACKDROP_CONFIG"), "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", envOr("BACKDROP_BACKEND", backendWindow), "Display backend: window, terminal or headless")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output frame and perf stats via slog")
	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// The terminal backend owns stdout, so logs go to stderr there
	logOut := os.Stdout
	if *backend == backendTerminal {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	bus := host.NewBus()
	h, overlay, err := openBackend(*backend, cfg, bus)
	if err != nil {
		slog.Error("failed to open backend", "backend", *backend, "error", err)
		os.Exit(1)
	}
	defer h.Close()

	var chime page.Chime
	if cfg.Contact.Chime && *backend != backendHeadless {
		chime = audio.NewChime(cfg.Audio)
	}

	start := time.Now()
	timers := host.NewTimers(start)
	loop := host.NewLoop(h, bus, timers, host.SystemClock{})

	p := page.New(cfg, page.Deps{
		Host:     h,
		Loop:     loop,
		Bus:      bus,
		Timers:   timers,
		Perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		Output:   output,
		Chime:    chime,
		Overlay:  overlay,
		Rand:     rand.New(rand.NewSource(rngSeed)),
		LogStats: *logStats,
	})
	p.Attach()

	if *maxFrames > 0 {
		loop.OnFrame(func(frame uint64) {
			if frame+1 >= uint64(*maxFrames) {
				slog.Info("max frames reached", "frame", frame)
				loop.Stop()
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting",
		"backend", *backend,
		"seed", rngSeed,
		"max_frames", *maxFrames,
		"output_dir", *outputDir,
	)

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("loop stopped", "error", err)
	}
	slog.Info("stopped", "frames", loop.Frames(), "elapsed", time.Since(start).Round(time.Millisecond))
}

// openBackend creates the host for the named backend and the overlay that
// draws page content on it.
func openBackend(name string, cfg *config.Config, bus *host.Bus) (host.Host, page.Overlay, error) {
	params, err := field.ParamsFromConfig(cfg.Field)
	if err != nil {
		// The network feature reports this again; fall back to stock colours here
		params = field.DefaultParams()
	}

	switch name {
	case backendWindow:
		win, err := renderer.Open(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TargetFPS, cfg.Screen.Title, cfg.Navigation.ScrollStep)
		if err != nil {
			return nil, nil, err
		}
		return win, ui.NewOverlay(ui.DefaultTheme(params.Color, params.Background), bus), nil

	case backendTerminal:
		links := make([]string, len(cfg.Page.Links))
		for i, l := range cfg.Page.Links {
			links[i] = l.Href
		}
		term, err := terminal.Open(terminal.Options{
			CellWidth:  cfg.Terminal.CellWidth,
			CellHeight: cfg.Terminal.CellHeight,
			FPS:        cfg.Screen.TargetFPS,
			ScrollStep: cfg.Navigation.ScrollStep,
			Links:      links,
			Background: params.Background,
		})
		if err != nil {
			return nil, nil, err
		}
		text := host.Color{R: 230, G: 230, B: 230, A: 1}
		return term, terminal.NewOverlay(term, text, params.Color, params.Background), nil

	case backendHeadless:
		return host.NewHeadless(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TargetFPS), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q (want window, terminal or headless)", name)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
