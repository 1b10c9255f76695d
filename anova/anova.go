package anova

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/Joysaath/bachelordata/gpa"
	"github.com/Joysaath/bachelordata/permtest"
	"github.com/Joysaath/bachelordata/specimen"
)

// Operation name constants for unified error wrapping.
const (
	opANOVA      = "ProcrustesANOVA"
	opRegression = "ProcrustesRegression"
)

// degenerateSS is the sum-of-squares floor below which variation is
// treated as absent, keeping every F-statistic finite. Aligned shapes
// are unit-norm, so genuine variation sits many orders above this while
// pure float error (squared ~1e-32 per coordinate) stays below.
const degenerateSS = 1e-24

// ANOVAResult is the immutable outcome of one Procrustes linear model.
type ANOVAResult struct {
	// SSModel, SSResidual and SSTotal are summed squared Procrustes
	// distances: explained, residual and total.
	SSModel, SSResidual, SSTotal float64

	// DFModel and DFResidual are the model and residual degrees of freedom.
	DFModel, DFResidual int

	// F is the observed model F-ratio.
	F float64

	// RSquared is SSModel/SSTotal.
	RSquared float64

	// Test holds the permutation outcome for F (one-sided: larger is
	// more extreme).
	Test *permtest.Result
}

// ProcrustesANOVA fits flattened aligned coordinates on a categorical
// grouping and tests the group effect by row permutation.
//
// Preconditions:
//   - res and g non-nil, built over the same specimens (ErrLabelMismatch
//     when counts differ),
//   - at least two groups (ErrSingleGroup),
//   - at least one residual degree of freedom (ErrInsufficientData).
//
// Permutation options (count, seed, workers) pass through to permtest;
// the alternative is fixed one-sided since F is non-negative.
func ProcrustesANOVA(res *gpa.Result, g *specimen.Grouping, opts ...permtest.Option) (*ANOVAResult, error) {
	if res == nil {
		return nil, fmt.Errorf("%s: %w", opANOVA, ErrNilResult)
	}
	if g == nil {
		return nil, fmt.Errorf("%s: %w", opANOVA, ErrNilGrouping)
	}
	assign := g.Assignments()
	if len(assign) != res.Len() {
		return nil, fmt.Errorf("%s: %d assignments for %d specimens: %w",
			opANOVA, len(assign), res.Len(), ErrLabelMismatch)
	}
	if g.Len() < 2 {
		return nil, fmt.Errorf("%s: %w", opANOVA, ErrSingleGroup)
	}

	design := designFromGrouping(g, res.Len())

	return runModel(opANOVA, res.Coordinates(), design, opts)
}

// ProcrustesRegression fits flattened aligned coordinates on one numeric
// predictor (intercept + slope) and tests the slope by row permutation.
func ProcrustesRegression(res *gpa.Result, covariate []float64, opts ...permtest.Option) (*ANOVAResult, error) {
	if res == nil {
		return nil, fmt.Errorf("%s: %w", opRegression, ErrNilResult)
	}
	if len(covariate) != res.Len() {
		return nil, fmt.Errorf("%s: %d values for %d specimens: %w",
			opRegression, len(covariate), res.Len(), ErrBadCovariate)
	}
	for i, v := range covariate {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: value %d: %w", opRegression, i, ErrBadCovariate)
		}
	}

	n := res.Len()
	design := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		design.Set(i, 1, covariate[i])
	}

	return runModel(opRegression, res.Coordinates(), design, opts)
}

// runModel computes the observed fit and delegates significance to the
// permutation engine: rows of the response are shuffled against the
// fixed design.
func runModel(opTag string, rows [][]float64, design *mat.Dense, opts []permtest.Option) (*ANOVAResult, error) {
	n, q := design.Dims()
	dfModel, dfResid := q-1, n-q
	if dfResid < 1 {
		return nil, fmt.Errorf("%s: n=%d predictors=%d: %w", opTag, n, q, ErrInsufficientData)
	}

	ssm, ssr, sst, err := fitSums(rows, design)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTag, err)
	}

	statistic := func(y [][]float64) float64 {
		m, r, _, ferr := fitSums(y, design)
		if ferr != nil {
			// The design was already validated on the observed fit; a
			// permuted response cannot change its rank.
			panic(fmt.Sprintf("anova: permuted fit: %v", ferr))
		}

		return fRatio(m, r, dfModel, dfResid)
	}
	permute := func(y [][]float64, rng *rand.Rand) [][]float64 {
		perm := permtest.PermuteIndices(len(y), rng)
		out := make([][]float64, len(y))
		for i, p := range perm {
			out[i] = y[p] // rows are read-only; sharing them is safe
		}

		return out
	}

	engineOpts := append([]permtest.Option{permtest.WithAlternative(permtest.Greater)}, opts...)
	test, err := permtest.Run(rows, statistic, permute, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTag, err)
	}

	out := &ANOVAResult{
		SSModel:     ssm,
		SSResidual:  ssr,
		SSTotal:     sst,
		DFModel:     dfModel,
		DFResidual:  dfResid,
		F:           test.Observed,
		Test:        test,
	}
	if sst > degenerateSS {
		out.RSquared = ssm / sst
	}

	return out, nil
}

// fitSums solves the least-squares fit Y ≈ X·B and returns the model,
// residual and total sums of squared Procrustes distances.
func fitSums(rows [][]float64, design *mat.Dense) (ssm, ssr, sst float64, err error) {
	n, _ := design.Dims()
	p := len(rows[0])

	y := mat.NewDense(n, p, nil)
	for i, row := range rows {
		y.SetRow(i, row)
	}

	var qr mat.QR
	qr.Factorize(design)
	var beta mat.Dense
	if err = qr.SolveTo(&beta, false, y); err != nil {
		return 0, 0, 0, ErrSingularDesign
	}

	var fitted mat.Dense
	fitted.Mul(design, &beta)

	grand := make([]float64, p)
	for _, row := range rows {
		for j, v := range row {
			grand[j] += v
		}
	}
	for j := range grand {
		grand[j] /= float64(n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			fm := fitted.At(i, j) - grand[j]
			rs := rows[i][j] - fitted.At(i, j)
			tt := rows[i][j] - grand[j]
			ssm += fm * fm
			ssr += rs * rs
			sst += tt * tt
		}
	}

	return ssm, ssr, sst, nil
}

// fRatio forms the F-statistic with degenerate-variation guards so the
// permutation engine always receives a finite value.
func fRatio(ssm, ssr float64, dfModel, dfResid int) float64 {
	if ssm < degenerateSS {
		return 0 // nothing explained, flat statistic
	}
	if ssr < degenerateSS {
		return math.MaxFloat64 // model explains everything
	}

	return (ssm / float64(dfModel)) / (ssr / float64(dfResid))
}

// designFromGrouping builds the one-way design matrix: intercept plus
// g-1 dummy columns in group order (first group is the baseline).
func designFromGrouping(g *specimen.Grouping, n int) *mat.Dense {
	groups := g.Groups()
	col := make(map[string]int, len(groups))
	for i, name := range groups[1:] {
		col[name] = 1 + i
	}

	design := mat.NewDense(n, len(groups), nil)
	for i, name := range g.Assignments() {
		design.Set(i, 0, 1)
		if c, ok := col[name]; ok {
			design.Set(i, c, 1)
		}
	}

	return design
}
