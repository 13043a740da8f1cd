package main

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/telemetry"
)

// Target describes the look the tuner aims for.
type Target struct {
	LinksPerParticle float64 // Mean pair links per particle
	PointerLinks     float64 // Mean lines to a pointer resting at the centre
	Width, Height    int     // Surface size to evaluate on
	Frames           int     // Frames per run
}

// Result summarises one evaluation.
type Result struct {
	Loss             float64
	LinksPerParticle telemetry.Summary
	PointerLinks     float64
	Particles        int
}

// FitnessEvaluator runs headless fields and scores them against a target.
type FitnessEvaluator struct {
	base   field.Params
	target Target
	seeds  []int64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(base field.Params, target Target, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{base: base, target: target, seeds: seeds}
}

// Evaluate runs one field per seed with the given knobs and returns the
// squared relative error from the target densities.
func (fe *FitnessEvaluator) Evaluate(k Knobs) Result {
	p := k.Params(fe.base)

	var lpp []float64
	var pointer float64
	var particles int
	for _, seed := range fe.seeds {
		rec := host.NewRecorder()
		f, err := field.New(rec, fe.target.Width, fe.target.Height, p, rand.New(rand.NewSource(seed)))
		if err != nil || f.Count() == 0 {
			return Result{Loss: math.Inf(1)}
		}
		f.MovePointer(float64(fe.target.Width)/2, float64(fe.target.Height)/2)
		particles = f.Count()

		for i := 0; i < fe.target.Frames; i++ {
			rec.Reset()
			f.Step()
			pairs, ptr := f.Links()
			lpp = append(lpp, float64(pairs)/float64(f.Count()))
			pointer += float64(ptr)
		}
	}
	pointer /= float64(len(lpp))

	summary := telemetry.Summarize(lpp)
	loss := relSq(summary.Mean, fe.target.LinksPerParticle) + relSq(pointer, fe.target.PointerLinks)
	return Result{Loss: loss, LinksPerParticle: summary, PointerLinks: pointer, Particles: particles}
}

// relSq is the squared error relative to want.
func relSq(got, want float64) float64 {
	if want == 0 {
		return got * got
	}
	d := (got - want) / want
	return d * d
}
