// Package specimen_test validates the fail-fast data-model constructors:
// configuration shape/finiteness checks, set uniformity and identifier
// uniqueness, and deterministic grouping order.
package specimen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Joysaath/bachelordata/specimen"
)

// square4 builds a 4-landmark 2D unit square configuration.
func square4(t *testing.T) specimen.Configuration {
	t.Helper()
	c, err := specimen.NewConfiguration(4, 2, []float64{0, 0, 1, 0, 1, 1, 0, 1})
	require.NoError(t, err)

	return c
}

// ------------------------------------------------------------------------
// Configuration
// ------------------------------------------------------------------------

func TestNewConfiguration_RejectsBadShape(t *testing.T) {
	t.Parallel()

	_, err := specimen.NewConfiguration(0, 2, nil)
	require.ErrorIs(t, err, specimen.ErrBadShape)

	_, err = specimen.NewConfiguration(3, 4, make([]float64, 12))
	require.ErrorIs(t, err, specimen.ErrBadShape, "d must be 2 or 3")

	_, err = specimen.NewConfiguration(3, 2, make([]float64, 5))
	require.ErrorIs(t, err, specimen.ErrBadShape, "len(coords) != k*d")
}

func TestNewConfiguration_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	_, err := specimen.NewConfiguration(2, 2, []float64{0, 0, math.NaN(), 1})
	require.ErrorIs(t, err, specimen.ErrMissingData)

	_, err = specimen.NewConfiguration(2, 2, []float64{0, 0, math.Inf(1), 1})
	require.ErrorIs(t, err, specimen.ErrMissingData)
}

func TestConfiguration_CopiesNotAliases(t *testing.T) {
	t.Parallel()

	raw := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	c, err := specimen.NewConfiguration(4, 2, raw)
	require.NoError(t, err)

	raw[0] = 99 // caller-side mutation must not reach the configuration
	require.Equal(t, 0.0, c.Coords()[0])

	got := c.Coords()
	got[1] = 99 // accessor copies must not alias internal storage
	require.Equal(t, 0.0, c.Coords()[1])
}

func TestConfiguration_Centroid(t *testing.T) {
	t.Parallel()

	c := square4(t)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, c.Centroid(), 1e-15)
}

func TestConfiguration_AtBounds(t *testing.T) {
	t.Parallel()

	c := square4(t)
	p, err := c.At(2)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, p)

	_, err = c.At(4)
	require.ErrorIs(t, err, specimen.ErrOutOfRange)
	_, err = c.At(-1)
	require.ErrorIs(t, err, specimen.ErrOutOfRange)
}

// ------------------------------------------------------------------------
// Set
// ------------------------------------------------------------------------

func TestNewSet_Validation(t *testing.T) {
	t.Parallel()

	_, err := specimen.NewSet(nil)
	require.ErrorIs(t, err, specimen.ErrEmptySet)

	c4 := square4(t)
	c3, err := specimen.NewConfiguration(3, 2, []float64{0, 0, 1, 0, 0, 1})
	require.NoError(t, err)

	_, err = specimen.NewSet([]specimen.Specimen{
		specimen.New("a", c4, nil, nil),
		specimen.New("b", c3, nil, nil),
	})
	require.ErrorIs(t, err, specimen.ErrDimensionMismatch)

	_, err = specimen.NewSet([]specimen.Specimen{
		specimen.New("a", c4, nil, nil),
		specimen.New("a", c4, nil, nil),
	})
	require.ErrorIs(t, err, specimen.ErrDuplicateID)
}

func TestSet_OrderAndLookup(t *testing.T) {
	t.Parallel()

	c := square4(t)
	set, err := specimen.NewSet([]specimen.Specimen{
		specimen.New("w1", c, map[string]string{"site": "north"}, nil),
		specimen.New("w2", c, map[string]string{"site": "south"}, nil),
		specimen.New("w3", c, map[string]string{"site": "north"}, nil),
	})
	require.NoError(t, err)

	require.Equal(t, 3, set.Len())
	require.Equal(t, 4, set.Landmarks())
	require.Equal(t, 2, set.Dims())
	require.Equal(t, []string{"w1", "w2", "w3"}, set.IDs())

	sp, ok := set.ByID("w2")
	require.True(t, ok)
	require.Equal(t, "w2", sp.ID())

	_, ok = set.ByID("w9")
	require.False(t, ok)

	_, err = set.At(3)
	require.ErrorIs(t, err, specimen.ErrOutOfRange)
}

func TestSet_Covariates(t *testing.T) {
	t.Parallel()

	c := square4(t)
	set, err := specimen.NewSet([]specimen.Specimen{
		specimen.New("w1", c, nil, map[string]float64{"elev": 120}),
		specimen.New("w2", c, nil, map[string]float64{"elev": 340}),
	})
	require.NoError(t, err)

	elev, err := set.Covariates("elev")
	require.NoError(t, err)
	require.Equal(t, []float64{120, 340}, elev)

	_, err = set.Covariates("slope")
	require.ErrorIs(t, err, specimen.ErrUnknownLabel)
}

// ------------------------------------------------------------------------
// Grouping
// ------------------------------------------------------------------------

func TestGroupBy_DeterministicFirstOccurrenceOrder(t *testing.T) {
	t.Parallel()

	c := square4(t)
	set, err := specimen.NewSet([]specimen.Specimen{
		specimen.New("w1", c, map[string]string{"site": "south"}, nil),
		specimen.New("w2", c, map[string]string{"site": "north"}, nil),
		specimen.New("w3", c, map[string]string{"site": "south"}, nil),
		specimen.New("w4", c, map[string]string{"site": "east"}, nil),
	})
	require.NoError(t, err)

	g, err := specimen.GroupBy(set, "site")
	require.NoError(t, err)

	// Group order follows first occurrence over the set, not lexical order.
	require.Equal(t, []string{"south", "north", "east"}, g.Groups())
	require.Equal(t, []int{0, 2}, g.Members("south"))
	require.Equal(t, []int{1}, g.Members("north"))
	require.Equal(t, []string{"south", "north", "south", "east"}, g.Assignments())
	require.Equal(t, 3, g.Len())
	require.Equal(t, 2, g.Size("south"))
	require.Equal(t, 0, g.Size("missing"))
}

func TestGroupBy_MissingKeyIsFatal(t *testing.T) {
	t.Parallel()

	c := square4(t)
	set, err := specimen.NewSet([]specimen.Specimen{
		specimen.New("w1", c, map[string]string{"site": "north"}, nil),
		specimen.New("w2", c, nil, nil), // no labels at all
	})
	require.NoError(t, err)

	_, err = specimen.GroupBy(set, "site")
	require.ErrorIs(t, err, specimen.ErrUnknownLabel)
}
