// SPDX-License-Identifier: MIT

package gpa

import "errors"

var (
	// ErrNilSet indicates a nil specimen set was passed to Align.
	ErrNilSet = errors.New("gpa: specimen set is nil")

	// ErrDegenerateShape indicates a configuration with (near-)zero
	// centroid size: all landmarks coincide, so no rotation or scale is
	// defined for it.
	ErrDegenerateShape = errors.New("gpa: degenerate configuration (zero centroid size)")

	// ErrRotationFailed indicates the SVD underlying the orthogonal
	// Procrustes solution did not factorize. With finite input this is
	// not expected; it is surfaced rather than swallowed.
	ErrRotationFailed = errors.New("gpa: procrustes rotation SVD failed")
)

// AlignedShape is one specimen's alignment output: the transformed
// coordinates together with the parameters that produced them.
// AlignedShapes are produced once per Align run and never mutated;
// treat the slices as read-only.
type AlignedShape struct {
	// ID is the specimen identifier, copied from the input set.
	ID string

	// Coords holds the aligned flat row-major landmark coordinates
	// (len k*d). Centroid is at the origin; under the default scaling
	// convention the Frobenius norm is 1.
	Coords []float64

	// CentroidSize is the pre-scaling Euclidean norm of the centered
	// configuration — the size proxy used by size-based analyses.
	CentroidSize float64

	// Rotation is the cumulative d×d row-major orthogonal matrix
	// accumulated across all sweeps (plus the final orientation fix): it
	// maps the centered, scaled configuration to Coords.
	Rotation []float64

	// Scale is the multiplicative factor applied after centering
	// (1/CentroidSize under the default convention, 1 without scaling).
	Scale float64
}

// Result is the immutable outcome of one Align run.
type Result struct {
	// Shapes holds per-specimen alignment output in set order.
	Shapes []AlignedShape

	// Reference is the consensus (mean) shape at convergence, flat
	// row-major, centered, unit-size under the default convention.
	Reference []float64

	// Iterations is the number of rotate-and-average sweeps performed.
	Iterations int

	// Converged reports whether the reference-change metric met the
	// tolerance before the iteration cap. False is a quality warning,
	// not an error: the alignment is approximate but usable.
	Converged bool

	// RMSChange is the final summed squared reference change — the
	// convergence metric at the last iteration, for quality reporting.
	RMSChange float64

	k, d int
}

// Landmarks reports the landmark count k.
func (r *Result) Landmarks() int { return r.k }

// Dims reports the dimensionality d.
func (r *Result) Dims() int { return r.d }

// Len reports the number of aligned specimens.
func (r *Result) Len() int { return len(r.Shapes) }

// Coordinates returns the n×(k·d) matrix of flattened aligned
// coordinates, one row per specimen in set order. Rows are fresh copies.
func (r *Result) Coordinates() [][]float64 {
	out := make([][]float64, len(r.Shapes))
	for i, s := range r.Shapes {
		row := make([]float64, len(s.Coords))
		copy(row, s.Coords)
		out[i] = row
	}

	return out
}

// IDs returns the specimen identifiers in set order.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Shapes))
	for i, s := range r.Shapes {
		ids[i] = s.ID
	}

	return ids
}

// CentroidSizes returns the pre-scaling centroid sizes in set order.
func (r *Result) CentroidSizes() []float64 {
	out := make([]float64, len(r.Shapes))
	for i, s := range r.Shapes {
		out[i] = s.CentroidSize
	}

	return out
}
