package mantel

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"github.com/Joysaath/bachelordata/distmat"
	"github.com/Joysaath/bachelordata/permtest"
)

// Operation name constants for unified error wrapping.
const (
	opMantel  = "Mantel"
	opPartial = "Partial"
)

// Mantel tests the association between two distance matrices.
//
// Preconditions: a and b are non-nil and carry identical ordered
// identifiers — distmat.ErrLabelMismatch otherwise (run Reconcile
// first). Defaults: 999 permutations, two-sided; override via permtest
// options.
//
// Degenerate input (a flat matrix with zero variance across pairs)
// yields observed r = 0 and a full-null p-value rather than an error:
// an uninformative result is still a result.
func Mantel(a, b *distmat.Matrix, opts ...permtest.Option) (*permtest.Result, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", opMantel, distmat.ErrNilMatrix)
	}
	if !distmat.SameLabels(a, b) {
		return nil, fmt.Errorf("%s: run Reconcile first: %w", opMantel, distmat.ErrLabelMismatch)
	}

	x := a.CondensedUpper()
	statistic := func(m *distmat.Matrix) float64 {
		return pearson(x, m.CondensedUpper())
	}

	res, err := permtest.Run(b, statistic, permuteMatrix, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opMantel, err)
	}

	return res, nil
}

// Partial tests the association between a and b with the effect of a
// third matrix c partialled out of both (first-order partial
// correlation). All three matrices must share identical ordered
// identifiers. Permutation relabels b, holding a and c fixed.
func Partial(a, b, c *distmat.Matrix, opts ...permtest.Option) (*permtest.Result, error) {
	if a == nil || b == nil || c == nil {
		return nil, fmt.Errorf("%s: %w", opPartial, distmat.ErrNilMatrix)
	}
	if !distmat.SameLabels(a, b) || !distmat.SameLabels(a, c) {
		return nil, fmt.Errorf("%s: run Reconcile first: %w", opPartial, distmat.ErrLabelMismatch)
	}

	x := a.CondensedUpper()
	z := c.CondensedUpper()
	rxz := pearson(x, z)
	statistic := func(m *distmat.Matrix) float64 {
		y := m.CondensedUpper()

		return partialCorr(pearson(x, y), rxz, pearson(y, z))
	}

	res, err := permtest.Run(b, statistic, permuteMatrix, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPartial, err)
	}

	return res, nil
}

// permuteMatrix applies one shared random row/column reordering,
// preserving the matrix's internal relational structure.
func permuteMatrix(m *distmat.Matrix, rng *rand.Rand) *distmat.Matrix {
	p, err := m.Permuted(permtest.PermuteIndices(m.Size(), rng))
	if err != nil {
		// PermuteIndices always yields a valid permutation of m.Size().
		panic(fmt.Sprintf("mantel: permute: %v", err))
	}

	return p
}

// pearson is the Pearson correlation with a zero-variance guard:
// flat input correlates with nothing, reported as 0 rather than NaN.
func pearson(x, y []float64) float64 {
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}

	return r
}

// partialCorr is the first-order partial correlation r_xy·z.
// Degenerate denominators (|r|≈1 with the control) report 0.
func partialCorr(rxy, rxz, ryz float64) float64 {
	den := math.Sqrt((1 - rxz*rxz) * (1 - ryz*ryz))
	if den < 1e-15 {
		return 0
	}
	r := (rxy - rxz*ryz) / den
	if math.IsNaN(r) {
		return 0
	}

	return r
}
