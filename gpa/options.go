// SPDX-License-Identifier: MIT
// Package gpa: functional configuration for the alignment loop.
// Option constructors panic only on nonsensical parameters (programmer
// error); user-data problems surface as sentinel errors from Align.

package gpa

// Defaults (single source of truth).
const (
	// DefaultTolerance is the convergence threshold on the summed squared
	// coordinate change of the reference shape between iterations.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps the alignment loop. GPA on well-posed input
	// typically converges in well under ten iterations.
	DefaultMaxIterations = 50

	// DefaultAllowReflection permits improper rotations (reflections) in
	// the Procrustes solution — the full orthogonal alignment. Disable via
	// WithoutReflection for side-consistent data (e.g. all left wings).
	DefaultAllowReflection = true

	// DefaultScale enables scaling to unit centroid size (classical GPA).
	// Disable via WithoutScaling for size-and-shape alignment.
	DefaultScale = true

	// DegenerateEps is the centroid-size threshold below which a
	// configuration is treated as degenerate (all landmarks coincident).
	DegenerateEps = 1e-12
)

const (
	panicToleranceInvalid  = "gpa: WithTolerance: tol must be finite and > 0"
	panicIterationsInvalid = "gpa: WithMaxIterations: n must be >= 1"
)

// Option mutates internal options. Safe to apply repeatedly; last-writer-wins.
type Option func(*options)

// options is the resolved configuration. Unexported: public entry points
// accept ...Option and resolve against the documented defaults.
type options struct {
	tolerance       float64
	maxIterations   int
	allowReflection bool
	scale           bool
}

// WithTolerance sets the convergence threshold for the reference-change
// metric. Panics if tol is not a finite positive number.
func WithTolerance(tol float64) Option {
	if !isFinite(tol) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tolerance = tol }
}

// WithMaxIterations caps the alignment loop. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(panicIterationsInvalid)
	}

	return func(o *options) { o.maxIterations = n }
}

// WithReflection permits improper rotations (default).
func WithReflection() Option {
	return func(o *options) { o.allowReflection = true }
}

// WithoutReflection restricts the Procrustes solution to proper rotations
// (det = +1). Use when mirrored configurations must stay distinguishable.
func WithoutReflection() Option {
	return func(o *options) { o.allowReflection = false }
}

// WithScaling scales configurations to unit centroid size (default,
// classical GPA).
func WithScaling() Option {
	return func(o *options) { o.scale = true }
}

// WithoutScaling preserves scale: size-and-shape alignment. Centroid
// sizes are still recorded, but coordinates keep their original norm.
func WithoutScaling() Option {
	return func(o *options) { o.scale = false }
}

// gatherOptions resolves user setters against the documented defaults.
func gatherOptions(user ...Option) options {
	o := options{
		tolerance:       DefaultTolerance,
		maxIterations:   DefaultMaxIterations,
		allowReflection: DefaultAllowReflection,
		scale:           DefaultScale,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
