// Package components defines ECS components for backdrop particles.
package components

// Position represents a particle's surface position in pixels.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's displacement per frame.
// Components are sampled once at spawn and only ever sign-flipped.
type Velocity struct {
	X, Y float64
}

// Body holds drawing-only particle data.
type Body struct {
	Radius float64
}
