package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FrameStats is a snapshot of page state taken every log interval.
type FrameStats struct {
	Frame        uint64  `csv:"frame"`
	ElapsedSec   float64 `csv:"elapsed_sec"`
	Width        int     `csv:"width"`
	Height       int     `csv:"height"`
	Particles    int     `csv:"particles"`
	PairLinks    int     `csv:"pair_links"`
	PointerLinks int     `csv:"pointer_links"`
	ScrollY      float64 `csv:"scroll_y"`
	ActiveLink   string  `csv:"active_link"`
	Revealed     int     `csv:"revealed"`
	Targets      int     `csv:"targets"`
	Headline     string  `csv:"headline"`
	Acks         int     `csv:"acks"`

	// Pair links per particle over the window
	LinksMean float64 `csv:"links_mean"`
	LinksStd  float64 `csv:"links_std"`
	LinksP10  float64 `csv:"links_p10"`
	LinksP50  float64 `csv:"links_p50"`
	LinksP90  float64 `csv:"links_p90"`
}

// Summary describes a sample distribution.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, standard deviation and empirical percentiles.
// Returns the zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	s.Mean = stat.Mean(sorted, nil)
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// WithLinks fills the link distribution fields.
func (s FrameStats) WithLinks(sum Summary) FrameStats {
	s.LinksMean = sum.Mean
	s.LinksStd = sum.Std
	s.LinksP10 = sum.P10
	s.LinksP50 = sum.P50
	s.LinksP90 = sum.P90
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Float64("elapsed_sec", s.ElapsedSec),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("particles", s.Particles),
		slog.Int("pair_links", s.PairLinks),
		slog.Int("pointer_links", s.PointerLinks),
		slog.Float64("scroll_y", s.ScrollY),
		slog.String("active_link", s.ActiveLink),
		slog.Int("revealed", s.Revealed),
		slog.Int("targets", s.Targets),
		slog.String("headline", s.Headline),
		slog.Int("acks", s.Acks),
		slog.Float64("links_mean", s.LinksMean),
		slog.Float64("links_p50", s.LinksP50),
		slog.Float64("links_p90", s.LinksP90),
	)
}
