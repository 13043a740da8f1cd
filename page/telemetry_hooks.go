package page

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/backdrop/telemetry"
)

// statsWindow accumulates per-frame samples between flushes.
type statsWindow struct {
	started      time.Time
	linksPerPart []float64
}

// recordFrame samples the frame and flushes stats every log interval.
func (p *Page) recordFrame(n uint64) {
	if p.stats.started.IsZero() {
		p.stats.started = p.deps.Timers.Now()
	}
	interval := p.cfg.Telemetry.LogInterval
	if interval <= 0 {
		return
	}
	if p.field != nil && p.field.Count() > 0 {
		pairs, _ := p.field.Links()
		p.stats.linksPerPart = append(p.stats.linksPerPart, float64(pairs)/float64(p.field.Count()))
	}
	if (n+1)%uint64(interval) != 0 {
		return
	}
	p.flushTelemetry(n)
}

// flushTelemetry logs and exports the current window.
func (p *Page) flushTelemetry(n uint64) {
	stats := p.Snapshot(n).WithLinks(telemetry.Summarize(p.stats.linksPerPart))
	p.stats.linksPerPart = p.stats.linksPerPart[:0]

	var perfStats telemetry.PerfStats
	if p.deps.Perf != nil {
		perfStats = p.deps.Perf.Stats(p.cfg.Derived.FrameBudget)
	}

	if p.deps.LogStats {
		slog.Info("frame", "stats", stats)
		if p.deps.Perf != nil {
			slog.Info("perf", "stats", perfStats)
		}
	}

	if p.deps.Output != nil {
		if err := p.deps.Output.WriteFrame(stats); err != nil {
			slog.Error("failed to write frame stats", "error", err)
		}
		if p.deps.Perf != nil {
			if err := p.deps.Output.WritePerf(perfStats, n); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
	}
}

// Snapshot captures the page state at frame n.
func (p *Page) Snapshot(n uint64) telemetry.FrameStats {
	w, h := p.deps.Host.Size()
	s := telemetry.FrameStats{
		Frame:      n,
		ElapsedSec: p.deps.Timers.Now().Sub(p.stats.started).Seconds(),
		Width:      w,
		Height:     h,
		ScrollY:    p.cam.ScrollY,
	}
	if p.field != nil {
		s.Particles = p.field.Count()
		s.PairLinks, s.PointerLinks = p.field.Links()
	}
	if p.nav != nil {
		s.ActiveLink = p.nav.Active()
	}
	if p.reveal != nil {
		s.Revealed = p.reveal.Revealed()
		s.Targets = len(p.reveal.States())
	}
	if p.typer != nil {
		s.Headline = p.typer.Text()
	}
	if p.contact != nil {
		s.Acks = len(p.contact.Acks())
	}
	return s
}
