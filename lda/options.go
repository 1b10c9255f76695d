// Package lda: functional configuration. Option constructors panic only
// on nonsensical parameters (programmer error).

package lda

import "math"

// Defaults (single source of truth).
const (
	// DefaultHoldout is the held-out fraction of the visualization split.
	DefaultHoldout = 0.2

	// DefaultSeed seeds the k-fold shuffle and the holdout split.
	DefaultSeed uint64 = 1

	// DefaultRidge is the trace-scaled regularization added to the pooled
	// covariance diagonal, keeping the solve well-posed when coordinates
	// outnumber specimens.
	DefaultRidge = 1e-6
)

const (
	panicKFoldInvalid   = "lda: WithKFold: k must be >= 2"
	panicHoldoutInvalid = "lda: WithHoldout: fraction must be in (0, 1)"
	panicRidgeInvalid   = "lda: WithRidge: ridge must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly; last-writer-wins.
type Option func(*options)

type options struct {
	kfold   int // 0 means leave-one-out
	holdout float64
	seed    uint64
	ridge   float64
}

// WithLeaveOneOut selects leave-one-out cross-validation (default).
func WithLeaveOneOut() Option {
	return func(o *options) { o.kfold = 0 }
}

// WithKFold selects k-fold cross-validation over a seeded shuffle of the
// specimen order. Panics if k < 2.
func WithKFold(k int) Option {
	if k < 2 {
		panic(panicKFoldInvalid)
	}

	return func(o *options) { o.kfold = k }
}

// WithSeed seeds the deterministic shuffles (k-fold assignment and the
// holdout split). Identical seeds reproduce identical folds and scores.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithHoldout sets the held-out fraction of the visualization split.
// Panics unless the fraction lies strictly between 0 and 1.
func WithHoldout(fraction float64) Option {
	if math.IsNaN(fraction) || fraction <= 0 || fraction >= 1 {
		panic(panicHoldoutInvalid)
	}

	return func(o *options) { o.holdout = fraction }
}

// WithRidge sets the covariance regularization strength. Panics on a
// negative or non-finite value.
func WithRidge(ridge float64) Option {
	if math.IsNaN(ridge) || math.IsInf(ridge, 0) || ridge < 0 {
		panic(panicRidgeInvalid)
	}

	return func(o *options) { o.ridge = ridge }
}

// gatherOptions resolves user setters against the documented defaults.
func gatherOptions(user ...Option) options {
	o := options{
		kfold:   0,
		holdout: DefaultHoldout,
		seed:    DefaultSeed,
		ridge:   DefaultRidge,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
