package main

import (
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
)

// Knobs are the field settings the tuner searches over.
type Knobs struct {
	AreaPerParticle float64
	LinkDistance    float64
	PointerDistance float64
	MaxSpeed        float64
}

// span is the searched interval of one knob.
type span struct{ lo, hi float64 }

var (
	areaSpan    = span{4000, 40000}
	linkSpan    = span{40, 300}
	pointerSpan = span{50, 400}
	speedSpan   = span{0.05, 1.5}
)

// knobCount is the dimension of the search cube.
const knobCount = 4

func (s span) toUnit(v float64) float64 { return (v - s.lo) / (s.hi - s.lo) }
func (s span) fromUnit(u float64) float64 { return s.lo + min(max(u, 0), 1)*(s.hi-s.lo) }
func (s span) clip(v float64) float64 { return min(max(v, s.lo), s.hi) }

// KnobsFromConfig reads the current knob settings.
func KnobsFromConfig(fc config.FieldConfig) Knobs {
	return Knobs{
		AreaPerParticle: fc.AreaPerParticle,
		LinkDistance:    fc.LinkDistance,
		PointerDistance: fc.PointerDistance,
		MaxSpeed:        fc.MaxSpeed,
	}
}

// KnobsAt maps a point of the unit search cube to knob settings. Coordinates
// outside [0,1] land on the nearest edge.
func KnobsAt(x []float64) Knobs {
	return Knobs{
		AreaPerParticle: areaSpan.fromUnit(x[0]),
		LinkDistance:    linkSpan.fromUnit(x[1]),
		PointerDistance: pointerSpan.fromUnit(x[2]),
		MaxSpeed:        speedSpan.fromUnit(x[3]),
	}
}

// Unit returns k as a point of the search cube.
func (k Knobs) Unit() []float64 {
	return []float64{
		areaSpan.toUnit(k.AreaPerParticle),
		linkSpan.toUnit(k.LinkDistance),
		pointerSpan.toUnit(k.PointerDistance),
		speedSpan.toUnit(k.MaxSpeed),
	}
}

// Clipped returns k with every knob inside its searched span.
func (k Knobs) Clipped() Knobs {
	return Knobs{
		AreaPerParticle: areaSpan.clip(k.AreaPerParticle),
		LinkDistance:    linkSpan.clip(k.LinkDistance),
		PointerDistance: pointerSpan.clip(k.PointerDistance),
		MaxSpeed:        speedSpan.clip(k.MaxSpeed),
	}
}

// Params overlays the clipped knobs on base.
func (k Knobs) Params(base field.Params) field.Params {
	c := k.Clipped()
	base.AreaPerParticle = c.AreaPerParticle
	base.LinkDistance = c.LinkDistance
	base.PointerDistance = c.PointerDistance
	base.MaxSpeed = c.MaxSpeed
	return base
}

// WriteTo stores the clipped knobs in the field section of a config.
func (k Knobs) WriteTo(fc *config.FieldConfig) {
	c := k.Clipped()
	fc.AreaPerParticle = c.AreaPerParticle
	fc.LinkDistance = c.LinkDistance
	fc.PointerDistance = c.PointerDistance
	fc.MaxSpeed = c.MaxSpeed
}
