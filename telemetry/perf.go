package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame. The first five are recorded by the particle
// field, the last two by the page.
const (
	PhaseClear     = "clear"
	PhaseIntegrate = "integrate"
	PhaseLinks     = "links"
	PhaseParticles = "particles"
	PhasePointer   = "pointer"
	PhasePage      = "page"
	PhaseOverlay   = "overlay"
)

var phaseOrder = []string{
	PhaseClear, PhaseIntegrate, PhaseLinks, PhaseParticles,
	PhasePointer, PhasePage, PhaseOverlay,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock interval between frames, including WaitFrame
	lastPresent     time.Time
	presentInterval time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames
// (e.g. 60 for one second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame and records the interval since the
// previous one.
func (p *PerfCollector) StartFrame() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
	p.frameStart = now
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the running phase and stores the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated frame statistics.
type PerfStats struct {
	Frames int

	AvgFrame    time.Duration
	StdDevFrame time.Duration
	P50Frame    time.Duration
	P95Frame    time.Duration
	MaxFrame    time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average frame

	// BudgetPct is the average frame cost as a share of the frame budget
	BudgetPct float64
	FPS       float64
}

// Stats aggregates the current window. budget is the target frame interval;
// zero leaves BudgetPct unset.
func (p *PerfCollector) Stats(budget time.Duration) PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	out := PerfStats{
		Frames:   p.sampleCount,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
		FPS:      fps,
	}
	if p.sampleCount == 0 {
		return out
	}

	durations := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.FrameDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}
	sort.Float64s(durations)

	mean, std := stat.MeanStdDev(durations, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	out.AvgFrame = time.Duration(mean)
	out.StdDevFrame = time.Duration(std)
	out.P50Frame = time.Duration(stat.Quantile(0.5, stat.Empirical, durations, nil))
	out.P95Frame = time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))
	out.MaxFrame = time.Duration(durations[len(durations)-1])

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgFrame > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgFrame) * 100
		}
	}
	if budget > 0 {
		out.BudgetPct = mean / float64(budget) * 100
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("budget_pct", s.BudgetPct),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	Frame        uint64  `csv:"frame"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	StdDevUS     int64   `csv:"stddev_frame_us"`
	P50FrameUS   int64   `csv:"p50_frame_us"`
	P95FrameUS   int64   `csv:"p95_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	BudgetPct    float64 `csv:"budget_pct"`
	FPS          float64 `csv:"fps"`
	ClearPct     float64 `csv:"clear_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	LinksPct     float64 `csv:"links_pct"`
	ParticlesPct float64 `csv:"particles_pct"`
	PointerPct   float64 `csv:"pointer_pct"`
	PagePct      float64 `csv:"page_pct"`
	OverlayPct   float64 `csv:"overlay_pct"`
}

// ToCSV flattens the stats for export.
func (s PerfStats) ToCSV(frame uint64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:        frame,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		StdDevUS:     s.StdDevFrame.Microseconds(),
		P50FrameUS:   s.P50Frame.Microseconds(),
		P95FrameUS:   s.P95Frame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		BudgetPct:    s.BudgetPct,
		FPS:          s.FPS,
		ClearPct:     s.PhasePct[PhaseClear],
		IntegratePct: s.PhasePct[PhaseIntegrate],
		LinksPct:     s.PhasePct[PhaseLinks],
		ParticlesPct: s.PhasePct[PhaseParticles],
		PointerPct:   s.PhasePct[PhasePointer],
		PagePct:      s.PhasePct[PhasePage],
		OverlayPct:   s.PhasePct[PhaseOverlay],
	}
}
