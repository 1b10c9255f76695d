// Package mantel_test verifies the self-test identity (r=1, p at the
// smoothing floor), label preconditions, determinism, and degenerate
// flat-matrix behavior.
package mantel_test

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Joysaath/bachelordata/distmat"
	"github.com/Joysaath/bachelordata/mantel"
	"github.com/Joysaath/bachelordata/permtest"
)

// randomMatrix builds an n×n distance matrix with i.i.d. positive
// off-diagonal entries — generic enough that no non-identity relabeling
// reproduces it exactly.
func randomMatrix(t *testing.T, n int, seed uint64) *distmat.Matrix {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	labels := make([]string, n)
	rows := make([][]float64, n)
	for i := range rows {
		labels[i] = "e" + strconv.Itoa(i)
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.1 + rng.Float64()
			rows[i][j] = v
			rows[j][i] = v
		}
	}
	m, err := distmat.New(labels, rows)
	require.NoError(t, err)

	return m
}

func TestMantel_SelfTest(t *testing.T) {
	t.Parallel()

	a := randomMatrix(t, 20, 5)

	res, err := mantel.Mantel(a, a,
		permtest.WithPermutations(999), permtest.WithSeed(1))
	require.NoError(t, err)

	// A matrix against itself: perfect correlation, and with 20 generic
	// entities no random relabeling of 999 ties it — p sits exactly on
	// the smoothing floor.
	require.InDelta(t, 1.0, res.Observed, 1e-12)
	require.Equal(t, 1.0/1000.0, res.P)
}

func TestMantel_Deterministic(t *testing.T) {
	t.Parallel()

	a := randomMatrix(t, 12, 7)
	b := randomMatrix(t, 12, 8)

	first, err := mantel.Mantel(a, b,
		permtest.WithPermutations(499), permtest.WithSeed(123), permtest.WithKeepNull())
	require.NoError(t, err)
	second, err := mantel.Mantel(a, b,
		permtest.WithPermutations(499), permtest.WithSeed(123), permtest.WithKeepNull())
	require.NoError(t, err)

	require.Equal(t, first.Observed, second.Observed)
	require.Equal(t, first.P, second.P)
	require.Equal(t, first.Null, second.Null)
}

func TestMantel_BoundsAlwaysHold(t *testing.T) {
	t.Parallel()

	a := randomMatrix(t, 10, 1)
	b := randomMatrix(t, 10, 2)

	res, err := mantel.Mantel(a, b, permtest.WithPermutations(199))
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Observed, -1.0)
	require.LessOrEqual(t, res.Observed, 1.0)
	require.GreaterOrEqual(t, res.P, 1.0/200.0)
	require.LessOrEqual(t, res.P, 1.0)
}

func TestMantel_FlatMatrixYieldsResultNotError(t *testing.T) {
	t.Parallel()

	n := 6
	labels := make([]string, n)
	rows := make([][]float64, n)
	for i := range rows {
		labels[i] = "e" + strconv.Itoa(i)
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i != j {
				rows[i][j] = 1 // all pairs equidistant: zero variance
			}
		}
	}
	flat, err := distmat.New(labels, rows)
	require.NoError(t, err)
	b := randomMatrix(t, n, 3)

	res, err := mantel.Mantel(flat, b, permtest.WithPermutations(99))
	require.NoError(t, err)
	require.Equal(t, 0.0, res.Observed, "flat matrix correlates with nothing")
	require.Equal(t, 1.0, res.P, "every trial ties the zero observed value")
}

func TestMantel_LabelPreconditions(t *testing.T) {
	t.Parallel()

	a := randomMatrix(t, 5, 1)
	b := randomMatrix(t, 6, 2) // different size → different label set

	_, err := mantel.Mantel(a, b)
	require.ErrorIs(t, err, distmat.ErrLabelMismatch)

	_, err = mantel.Mantel(nil, a)
	require.ErrorIs(t, err, distmat.ErrNilMatrix)

	// Reconcile repairs the precondition when sets overlap.
	ra, rb, err := distmat.Reconcile(a, b)
	require.NoError(t, err)
	_, err = mantel.Mantel(ra, rb, permtest.WithPermutations(99))
	require.NoError(t, err)
}

func TestPartial_ControlRemovesSharedStructure(t *testing.T) {
	t.Parallel()

	a := randomMatrix(t, 15, 11)

	// Partialling a out of the a~a association leaves nothing.
	res, err := mantel.Partial(a, a, a, permtest.WithPermutations(99))
	require.NoError(t, err)
	require.Equal(t, 0.0, res.Observed)

	// Independent control barely changes the perfect self-association.
	c := randomMatrix(t, 15, 12)
	res, err = mantel.Partial(a, a, c, permtest.WithPermutations(99))
	require.NoError(t, err)
	require.Greater(t, res.Observed, 0.9)
}
