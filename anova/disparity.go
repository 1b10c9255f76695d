package anova

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Joysaath/bachelordata/gpa"
	"github.com/Joysaath/bachelordata/permtest"
	"github.com/Joysaath/bachelordata/specimen"
)

const (
	opDisparity     = "Disparity"
	opSizeDisparity = "SizeDisparity"
)

// GroupDisparity is one group's Procrustes variance.
type GroupDisparity struct {
	// Group is the group name, in grouping order.
	Group string

	// N is the member count.
	N int

	// Variance is the mean squared distance of members from the group
	// mean — the trace of the group's covariance.
	Variance float64
}

// PairwiseDisparity is one permutation test of |var(A) − var(B)|.
type PairwiseDisparity struct {
	GroupA, GroupB string

	// Diff is the observed absolute variance difference.
	Diff float64

	// Test holds the permutation outcome (group labels reshuffled within
	// the pooled pair; one-sided, larger difference is more extreme).
	Test *permtest.Result
}

// DisparityResult is the immutable outcome of one disparity analysis.
type DisparityResult struct {
	// Groups lists per-group variances in grouping order.
	Groups []GroupDisparity

	// Pairwise lists tests for every group pair (i<j in grouping order).
	Pairwise []PairwiseDisparity
}

// Disparity computes morphological disparity on aligned shape
// coordinates: the Procrustes variance per group plus pairwise
// permutation tests of variance differences.
//
// Every group needs at least two members (ErrInsufficientData names the
// offender — a singleton has no variance to speak of).
func Disparity(res *gpa.Result, g *specimen.Grouping, opts ...permtest.Option) (*DisparityResult, error) {
	if res == nil {
		return nil, fmt.Errorf("%s: %w", opDisparity, ErrNilResult)
	}

	return disparity(opDisparity, res.Coordinates(), g, opts)
}

// SizeDisparity runs the same analysis on log centroid size instead of
// shape — the alternate distance mode for size-based questions (shape
// variance and size variance need not agree).
func SizeDisparity(res *gpa.Result, g *specimen.Grouping, opts ...permtest.Option) (*DisparityResult, error) {
	if res == nil {
		return nil, fmt.Errorf("%s: %w", opSizeDisparity, ErrNilResult)
	}

	rows := make([][]float64, res.Len())
	for i, size := range res.CentroidSizes() {
		rows[i] = []float64{math.Log(size)}
	}

	return disparity(opSizeDisparity, rows, g, opts)
}

// pooled is the permutation datum for one group pair: the pooled member
// rows with the first nA rows belonging to group A.
type pooled struct {
	rows [][]float64
	nA   int
}

func disparity(opTag string, rows [][]float64, g *specimen.Grouping, opts []permtest.Option) (*DisparityResult, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: %w", opTag, ErrNilGrouping)
	}
	if len(g.Assignments()) != len(rows) {
		return nil, fmt.Errorf("%s: %d assignments for %d specimens: %w",
			opTag, len(g.Assignments()), len(rows), ErrLabelMismatch)
	}

	groups := g.Groups()
	out := &DisparityResult{Groups: make([]GroupDisparity, len(groups))}
	members := make([][][]float64, len(groups))
	for i, name := range groups {
		idx := g.Members(name)
		if len(idx) < 2 {
			return nil, fmt.Errorf("%s: group %q has %d member(s): %w",
				opTag, name, len(idx), ErrInsufficientData)
		}
		rowsOf := make([][]float64, len(idx))
		for j, p := range idx {
			rowsOf[j] = rows[p]
		}
		members[i] = rowsOf
		out.Groups[i] = GroupDisparity{
			Group:    name,
			N:        len(idx),
			Variance: procrustesVariance(rowsOf),
		}
	}

	// Pairwise tests: reshuffle the pooled pair's labels, holding the
	// two group sizes fixed.
	statistic := func(d pooled) float64 {
		return math.Abs(procrustesVariance(d.rows[:d.nA]) - procrustesVariance(d.rows[d.nA:]))
	}
	permute := func(d pooled, rng *rand.Rand) pooled {
		perm := permtest.PermuteIndices(len(d.rows), rng)
		shuffled := make([][]float64, len(d.rows))
		for i, p := range perm {
			shuffled[i] = d.rows[p] // rows are read-only; sharing is safe
		}

		return pooled{rows: shuffled, nA: d.nA}
	}

	engineOpts := append([]permtest.Option{permtest.WithAlternative(permtest.Greater)}, opts...)
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			pair := pooled{
				rows: append(append([][]float64{}, members[i]...), members[j]...),
				nA:   len(members[i]),
			}
			test, err := permtest.Run(pair, statistic, permute, engineOpts...)
			if err != nil {
				return nil, fmt.Errorf("%s: %s vs %s: %w", opTag, groups[i], groups[j], err)
			}
			out.Pairwise = append(out.Pairwise, PairwiseDisparity{
				GroupA: groups[i],
				GroupB: groups[j],
				Diff:   test.Observed,
				Test:   test,
			})
		}
	}

	return out, nil
}

// procrustesVariance is the mean squared distance of rows from their
// mean vector.
func procrustesVariance(rows [][]float64) float64 {
	p := len(rows[0])
	mean := make([]float64, p)
	for _, row := range rows {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(rows))
	}

	var sq float64
	for _, row := range rows {
		for j, v := range row {
			diff := v - mean[j]
			sq += diff * diff
		}
	}

	return sq / float64(len(rows))
}
