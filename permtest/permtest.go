package permtest

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNilStatistic indicates a nil statistic function.
	ErrNilStatistic = errors.New("permtest: statistic function is nil")

	// ErrNilPermuter indicates a nil permutation operator.
	ErrNilPermuter = errors.New("permtest: permutation operator is nil")

	// ErrNonFiniteObserved indicates the statistic returned NaN or ±Inf on
	// the unpermuted data. The statistic must map every input — including
	// degenerate, all-identical data — to a finite value.
	ErrNonFiniteObserved = errors.New("permtest: observed statistic is not finite")
)

// Result is the immutable outcome of one permutation test.
type Result struct {
	// Observed is the statistic on the unpermuted data.
	Observed float64

	// Permutations is the number of null trials run.
	Permutations int

	// P is the Laplace-smoothed empirical p-value,
	// always within [1/(Permutations+1), 1].
	P float64

	// Alternative records the sidedness the p-value was computed under.
	Alternative Alternative

	// Null holds the full null-distribution sample in trial order, or nil
	// unless WithKeepNull was set.
	Null []float64
}

// Run executes a permutation test.
//
// Procedure:
//   - compute the observed statistic on data;
//   - for each trial t in 0..permutations-1, permute data with an RNG
//     seeded deterministically from (seed, t) and recompute the statistic;
//   - p = (1 + #{trials at least as extreme}) / (permutations + 1).
//
// Inputs:
//   - data: the unpermuted dataset; shared read-only across trials.
//   - statistic: real-valued summary; must be finite on the observed data.
//   - permute: returns a relabeled copy of data; must not mutate its input.
//
// Determinism:
//   - Bit-for-bit reproducible for a fixed seed, independent of worker
//     count: trial t's RNG is rand.New(rand.NewPCG(seed, t)) and each
//     trial writes only null[t].
//
// Complexity:
//   - Time O(permutations · (cost(permute) + cost(statistic))) across
//     workers, Space O(permutations).
func Run[D any](data D, statistic func(D) float64, permute func(D, *rand.Rand) D, opts ...Option) (*Result, error) {
	if statistic == nil {
		return nil, ErrNilStatistic
	}
	if permute == nil {
		return nil, ErrNilPermuter
	}
	o := gatherOptions(opts...)

	observed := statistic(data)
	if math.IsNaN(observed) || math.IsInf(observed, 0) {
		return nil, fmt.Errorf("got %v: %w", observed, ErrNonFiniteObserved)
	}

	null := make([]float64, o.permutations)
	runTrials(data, statistic, permute, o, null)

	count := 0
	switch o.alternative {
	case Greater:
		for _, v := range null {
			if v >= observed {
				count++
			}
		}
	case Less:
		for _, v := range null {
			if v <= observed {
				count++
			}
		}
	default: // TwoSided
		absObs := math.Abs(observed)
		for _, v := range null {
			if math.Abs(v) >= absObs {
				count++
			}
		}
	}

	res := &Result{
		Observed:     observed,
		Permutations: o.permutations,
		P:            float64(1+count) / float64(o.permutations+1),
		Alternative:  o.alternative,
	}
	if o.keepNull {
		res.Null = null
	}

	return res, nil
}

// runTrials fills null[t] for every trial, fanning out over disjoint
// index ranges. Each trial owns its RNG; the only shared write target is
// the preallocated null slice at distinct indices.
func runTrials[D any](data D, statistic func(D) float64, permute func(D, *rand.Rand) D, o options, null []float64) {
	trial := func(t int) {
		rng := rand.New(rand.NewPCG(o.seed, uint64(t)))
		null[t] = statistic(permute(data, rng))
	}

	workers := o.workers
	if workers > len(null) {
		workers = len(null)
	}
	if workers <= 1 {
		for t := range null {
			trial(t)
		}

		return
	}

	var g errgroup.Group
	chunk := (len(null) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > len(null) {
			hi = len(null)
		}
		g.Go(func() error {
			for t := lo; t < hi; t++ {
				trial(t)
			}

			return nil
		})
	}
	_ = g.Wait() // trials cannot fail; Wait only joins the workers
}

// PermuteIndices returns a uniformly random permutation of 0..n-1 drawn
// from rng — the shared shuffling primitive for row- and label-permuting
// callers (Fisher–Yates under the hood).
func PermuteIndices(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}
