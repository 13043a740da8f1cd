package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
)

func TestKnobs_UnitRoundTrip(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	k := KnobsFromConfig(cfg.Field)
	back := KnobsAt(k.Unit())
	pairs := [][2]float64{
		{k.AreaPerParticle, back.AreaPerParticle},
		{k.LinkDistance, back.LinkDistance},
		{k.PointerDistance, back.PointerDistance},
		{k.MaxSpeed, back.MaxSpeed},
	}
	for i, p := range pairs {
		if math.Abs(p[0]-p[1]) > 1e-9 {
			t.Errorf("knob %d: round trip %v -> %v", i, p[0], p[1])
		}
	}
}

func TestKnobsAt_EdgesOfCube(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want Knobs
	}{
		{"origin", []float64{0, 0, 0, 0}, Knobs{4000, 40, 50, 0.05}},
		{"far corner", []float64{1, 1, 1, 1}, Knobs{40000, 300, 400, 1.5}},
		{"outside", []float64{-3, 2, -0.1, 1.7}, Knobs{4000, 300, 50, 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KnobsAt(tt.x); got != tt.want {
				t.Errorf("KnobsAt(%v) = %+v, want %+v", tt.x, got, tt.want)
			}
		})
	}
}

func TestKnobs_ParamsAndConfigClip(t *testing.T) {
	cfg, _ := config.Load("")
	base, err := field.ParamsFromConfig(cfg.Field)
	if err != nil {
		t.Fatal(err)
	}

	p := Knobs{1, 10000, 100, -1}.Params(base)
	if p.AreaPerParticle != 4000 || p.LinkDistance != 300 || p.PointerDistance != 100 || p.MaxSpeed != 0.05 {
		t.Errorf("params = %+v", p)
	}
	if p.Color != base.Color {
		t.Error("non-knob params not carried over from base")
	}

	Knobs{20000, 120, 180, 0.3}.WriteTo(&cfg.Field)
	if cfg.Field.AreaPerParticle != 20000 || cfg.Field.LinkDistance != 120 || cfg.Field.MaxSpeed != 0.3 {
		t.Errorf("config not updated: %+v", cfg.Field)
	}
}

func TestFitnessEvaluator_LongerLinksDenser(t *testing.T) {
	cfg, _ := config.Load("")
	base, err := field.ParamsFromConfig(cfg.Field)
	if err != nil {
		t.Fatal(err)
	}
	target := Target{LinksPerParticle: 2, PointerLinks: 8, Width: 640, Height: 480, Frames: 10}
	fe := NewFitnessEvaluator(base, target, []int64{42})

	short := fe.Evaluate(Knobs{15000, 60, 200, 0.25})
	long := fe.Evaluate(Knobs{15000, 250, 200, 0.25})
	if long.LinksPerParticle.Mean <= short.LinksPerParticle.Mean {
		t.Errorf("links/particle short=%v long=%v, want long > short",
			short.LinksPerParticle.Mean, long.LinksPerParticle.Mean)
	}
	if short.Particles != field.ParticleCount(640, 480, 15000) {
		t.Errorf("particles = %d", short.Particles)
	}
	if math.IsInf(short.Loss, 0) || short.Loss < 0 {
		t.Errorf("loss = %v", short.Loss)
	}
}

func TestRelSq(t *testing.T) {
	if got := relSq(3, 2); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("relSq(3, 2) = %v, want 0.25", got)
	}
	if got := relSq(2, 0); got != 4 {
		t.Errorf("relSq(2, 0) = %v, want 4", got)
	}
}
