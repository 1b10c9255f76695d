// Package permtest: functional configuration. Option constructors panic
// only on nonsensical parameters (programmer error).

package permtest

import "runtime"

// Alternative selects the tail(s) of the null distribution compared
// against the observed statistic.
type Alternative int

const (
	// TwoSided counts |null| >= |observed| (default).
	TwoSided Alternative = iota

	// Greater counts null >= observed. The natural choice for F-ratios
	// and variance differences, which are extreme only upward.
	Greater

	// Less counts null <= observed.
	Less
)

// String implements fmt.Stringer for diagnostics.
func (a Alternative) String() string {
	switch a {
	case Greater:
		return "greater"
	case Less:
		return "less"
	default:
		return "two-sided"
	}
}

// Defaults (single source of truth).
const (
	// DefaultPermutations is the trial count; 999 gives the conventional
	// p-value floor of 1/1000.
	DefaultPermutations = 999

	// DefaultSeed seeds the per-trial PCG streams.
	DefaultSeed uint64 = 1
)

const (
	panicPermutationsInvalid = "permtest: WithPermutations: n must be >= 1"
	panicWorkersInvalid      = "permtest: WithWorkers: n must be >= 1"
)

// Option mutates internal options. Safe to apply repeatedly; last-writer-wins.
type Option func(*options)

type options struct {
	permutations int
	seed         uint64
	workers      int
	keepNull     bool
	alternative  Alternative
}

// WithPermutations sets the trial count. Panics if n < 1.
func WithPermutations(n int) Option {
	if n < 1 {
		panic(panicPermutationsInvalid)
	}

	return func(o *options) { o.permutations = n }
}

// WithSeed sets the base seed for the per-trial RNG streams.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers caps the number of concurrent trial workers. Results do
// not depend on this value. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithKeepNull retains the full null-distribution sample on the Result
// (in trial order) for callers that want to render or re-test it.
func WithKeepNull() Option {
	return func(o *options) { o.keepNull = true }
}

// WithAlternative selects the test sidedness.
func WithAlternative(alt Alternative) Option {
	return func(o *options) { o.alternative = alt }
}

// gatherOptions resolves user setters against the documented defaults.
func gatherOptions(user ...Option) options {
	o := options{
		permutations: DefaultPermutations,
		seed:         DefaultSeed,
		workers:      runtime.GOMAXPROCS(0),
		keepNull:     false,
		alternative:  TwoSided,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
