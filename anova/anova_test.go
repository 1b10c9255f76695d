// Package anova_test drives the Procrustes linear models and disparity
// analysis on synthetic shape classes with known structure: separated
// classes must light up, degenerate data must yield flat results, and
// everything must be reproducible under a fixed seed.
package anova_test

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Joysaath/bachelordata/anova"
	"github.com/Joysaath/bachelordata/gpa"
	"github.com/Joysaath/bachelordata/permtest"
	"github.com/Joysaath/bachelordata/specimen"
)

// Two clearly distinct 4-landmark 2D templates.
var (
	shapeA = []float64{0, 0, 3, 0.2, 2.5, 2, 0.3, 1.1}
	shapeB = []float64{0, 0, 1, 2.5, 3, 2.8, 2.2, 0.3}
)

// groupSpec describes one synthetic group: n noisy copies of a template,
// each uniformly rescaled within [scaleLo, scaleHi].
type groupSpec struct {
	name             string
	template         []float64
	noise            float64
	n                int
	scaleLo, scaleHi float64
}

// buildAligned synthesizes specimens per spec, aligns them, and returns
// the alignment plus the site grouping.
func buildAligned(t *testing.T, seed uint64, groups []groupSpec) (*gpa.Result, *specimen.Grouping) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))

	var sps []specimen.Specimen
	for _, gs := range groups {
		for i := 0; i < gs.n; i++ {
			scale := 1.0
			if gs.scaleHi > gs.scaleLo {
				scale = gs.scaleLo + (gs.scaleHi-gs.scaleLo)*rng.Float64()
			}
			coords := make([]float64, len(gs.template))
			for j, v := range gs.template {
				coords[j] = scale*v + gs.noise*rng.NormFloat64()
			}
			cfg, err := specimen.NewConfiguration(4, 2, coords)
			require.NoError(t, err)
			sps = append(sps, specimen.New(gs.name+strconv.Itoa(i), cfg,
				map[string]string{"site": gs.name}, nil))
		}
	}

	set, err := specimen.NewSet(sps)
	require.NoError(t, err)
	res, err := gpa.Align(set)
	require.NoError(t, err)
	grouping, err := specimen.GroupBy(set, "site")
	require.NoError(t, err)

	return res, grouping
}

// ------------------------------------------------------------------------
// Procrustes ANOVA
// ------------------------------------------------------------------------

func TestProcrustesANOVA_SeparatedGroups(t *testing.T) {
	t.Parallel()

	res, g := buildAligned(t, 1, []groupSpec{
		{name: "north", template: shapeA, noise: 0.02, n: 10},
		{name: "south", template: shapeB, noise: 0.02, n: 10},
	})

	out, err := anova.ProcrustesANOVA(res, g,
		permtest.WithPermutations(99), permtest.WithSeed(42))
	require.NoError(t, err)

	require.Equal(t, 1, out.DFModel)
	require.Equal(t, 18, out.DFResidual)
	require.InDelta(t, out.SSTotal, out.SSModel+out.SSResidual, 1e-9)
	require.Greater(t, out.F, 10.0, "distinct templates must dominate noise")
	require.Greater(t, out.RSquared, 0.5)
	require.LessOrEqual(t, out.Test.P, 0.05)
	require.Equal(t, permtest.Greater, out.Test.Alternative)
}

func TestProcrustesANOVA_IdenticalShapesAreFlat(t *testing.T) {
	t.Parallel()

	res, g := buildAligned(t, 2, []groupSpec{
		{name: "north", template: shapeA, noise: 0, n: 6},
		{name: "south", template: shapeA, noise: 0, n: 6},
	})

	// No shape variation at all: F is 0 and the p-value is 1 — a flat
	// result object, never a division by zero.
	out, err := anova.ProcrustesANOVA(res, g, permtest.WithPermutations(99))
	require.NoError(t, err)
	require.Equal(t, 0.0, out.F)
	require.Equal(t, 1.0, out.Test.P)
	require.Equal(t, 0.0, out.RSquared)
}

func TestProcrustesANOVA_Deterministic(t *testing.T) {
	t.Parallel()

	res, g := buildAligned(t, 3, []groupSpec{
		{name: "north", template: shapeA, noise: 0.1, n: 8},
		{name: "south", template: shapeA, noise: 0.1, n: 8},
	})

	first, err := anova.ProcrustesANOVA(res, g,
		permtest.WithPermutations(199), permtest.WithSeed(5))
	require.NoError(t, err)
	second, err := anova.ProcrustesANOVA(res, g,
		permtest.WithPermutations(199), permtest.WithSeed(5))
	require.NoError(t, err)

	require.Equal(t, first.F, second.F)
	require.Equal(t, first.Test.P, second.Test.P)
}

func TestProcrustesANOVA_Validation(t *testing.T) {
	t.Parallel()

	res, g := buildAligned(t, 4, []groupSpec{
		{name: "north", template: shapeA, noise: 0.05, n: 4},
		{name: "south", template: shapeB, noise: 0.05, n: 4},
	})

	_, err := anova.ProcrustesANOVA(nil, g)
	require.ErrorIs(t, err, anova.ErrNilResult)

	_, err = anova.ProcrustesANOVA(res, nil)
	require.ErrorIs(t, err, anova.ErrNilGrouping)

	// Grouping over a different specimen count.
	_, gSmall := buildAligned(t, 4, []groupSpec{
		{name: "north", template: shapeA, noise: 0.05, n: 2},
		{name: "south", template: shapeB, noise: 0.05, n: 2},
	})
	_, err = anova.ProcrustesANOVA(res, gSmall)
	require.ErrorIs(t, err, anova.ErrLabelMismatch)

	// Single group: nothing to compare.
	resOne, gOne := buildAligned(t, 5, []groupSpec{
		{name: "only", template: shapeA, noise: 0.05, n: 6},
	})
	_, err = anova.ProcrustesANOVA(resOne, gOne)
	require.ErrorIs(t, err, anova.ErrSingleGroup)

	// No residual degrees of freedom.
	resTiny, gTiny := buildAligned(t, 6, []groupSpec{
		{name: "north", template: shapeA, noise: 0.05, n: 1},
		{name: "south", template: shapeB, noise: 0.05, n: 1},
	})
	_, err = anova.ProcrustesANOVA(resTiny, gTiny)
	require.ErrorIs(t, err, anova.ErrInsufficientData)
}

// ------------------------------------------------------------------------
// Procrustes regression
// ------------------------------------------------------------------------

func TestProcrustesRegression_GradientDrivenShape(t *testing.T) {
	t.Parallel()

	// Shapes morph linearly from template A toward template B along the
	// gradient; regression must recover a strong slope effect.
	rng := rand.New(rand.NewPCG(9, 0))
	n := 16
	sps := make([]specimen.Specimen, n)
	covariate := make([]float64, n)
	for i := 0; i < n; i++ {
		w := float64(i) / float64(n-1)
		covariate[i] = w
		coords := make([]float64, len(shapeA))
		for j := range coords {
			coords[j] = (1-w)*shapeA[j] + w*shapeB[j] + 0.02*rng.NormFloat64()
		}
		cfg, err := specimen.NewConfiguration(4, 2, coords)
		require.NoError(t, err)
		sps[i] = specimen.New("s"+strconv.Itoa(i), cfg, nil, nil)
	}
	set, err := specimen.NewSet(sps)
	require.NoError(t, err)
	res, err := gpa.Align(set)
	require.NoError(t, err)

	out, err := anova.ProcrustesRegression(res, covariate,
		permtest.WithPermutations(99), permtest.WithSeed(11))
	require.NoError(t, err)
	require.Greater(t, out.F, 10.0)
	require.LessOrEqual(t, out.Test.P, 0.05)
}

func TestProcrustesRegression_BadCovariate(t *testing.T) {
	t.Parallel()

	res, _ := buildAligned(t, 10, []groupSpec{
		{name: "north", template: shapeA, noise: 0.05, n: 6},
	})

	_, err := anova.ProcrustesRegression(res, []float64{1, 2})
	require.ErrorIs(t, err, anova.ErrBadCovariate)

	bad := make([]float64, res.Len())
	bad[3] = math.NaN()
	_, err = anova.ProcrustesRegression(res, bad)
	require.ErrorIs(t, err, anova.ErrBadCovariate)
}

// ------------------------------------------------------------------------
// Disparity
// ------------------------------------------------------------------------

func TestDisparity_NoisyGroupHasHigherVariance(t *testing.T) {
	t.Parallel()

	res, g := buildAligned(t, 20, []groupSpec{
		{name: "scattered", template: shapeA, noise: 0.30, n: 12},
		{name: "uniform", template: shapeA, noise: 0.02, n: 12},
	})

	out, err := anova.Disparity(res, g,
		permtest.WithPermutations(199), permtest.WithSeed(13))
	require.NoError(t, err)

	require.Len(t, out.Groups, 2)
	require.Equal(t, "scattered", out.Groups[0].Group, "grouping order preserved")
	require.Equal(t, 12, out.Groups[0].N)
	require.Greater(t, out.Groups[0].Variance, out.Groups[1].Variance*2,
		"the noisy group must show clearly higher Procrustes variance")

	require.Len(t, out.Pairwise, 1)
	pw := out.Pairwise[0]
	require.Equal(t, "scattered", pw.GroupA)
	require.Equal(t, "uniform", pw.GroupB)
	require.Greater(t, pw.Diff, 0.0)
	require.LessOrEqual(t, pw.Test.P, 0.05)
}

func TestDisparity_SingletonGroupFails(t *testing.T) {
	t.Parallel()

	res, g := buildAligned(t, 21, []groupSpec{
		{name: "many", template: shapeA, noise: 0.05, n: 6},
		{name: "lonely", template: shapeB, noise: 0.05, n: 1},
	})

	_, err := anova.Disparity(res, g)
	require.ErrorIs(t, err, anova.ErrInsufficientData)
	require.Contains(t, err.Error(), "\"lonely\"", "error should name the group")
}

func TestSizeDisparity_SizeSpreadDetected(t *testing.T) {
	t.Parallel()

	// Same shape everywhere; only size varies, and only in one group.
	res, g := buildAligned(t, 22, []groupSpec{
		{name: "spread", template: shapeA, noise: 0.01, n: 12, scaleLo: 0.5, scaleHi: 2.0},
		{name: "constant", template: shapeA, noise: 0.01, n: 12, scaleLo: 1.0, scaleHi: 1.0},
	})

	out, err := anova.SizeDisparity(res, g,
		permtest.WithPermutations(199), permtest.WithSeed(17))
	require.NoError(t, err)

	require.Greater(t, out.Groups[0].Variance, out.Groups[1].Variance*5,
		"log centroid size variance must expose the size spread")
	require.LessOrEqual(t, out.Pairwise[0].Test.P, 0.05)

	// Shape disparity on the same data stays near-symmetric: scaling is
	// removed by alignment, so neither group is meaningfully noisier.
	shape, err := anova.Disparity(res, g, permtest.WithPermutations(99))
	require.NoError(t, err)
	ratio := shape.Groups[0].Variance / shape.Groups[1].Variance
	require.Greater(t, ratio, 0.2)
	require.Less(t, ratio, 5.0)
}
