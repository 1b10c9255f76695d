// SPDX-License-Identifier: MIT

package gpa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Joysaath/bachelordata/specimen"
)

// Operation name constants for unified error wrapping.
const opAlign = "Align"

// gpaErrorf wraps err with an operation tag, preserving the sentinel via %w.
func gpaErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Align performs Generalized Procrustes Alignment over a specimen set.
//
// Behavior highlights:
//   - Every returned AlignedShape is centered at the origin; under the
//     default scaling convention its Frobenius norm is 1.
//   - Raw centroid sizes (pre-scaling norms) are preserved on each
//     AlignedShape for size-based analyses.
//   - Hitting the iteration cap is reported via Result.Converged=false
//     and Result.RMSChange, never silently accepted as exact.
//
// Inputs:
//   - set: validated specimen set (uniform k,d; finite coordinates —
//     both guaranteed by specimen.NewSet / NewConfiguration).
//   - opts: tolerance, iteration cap, reflection and scaling policy.
//
// Returns:
//   - *Result: aligned shapes in set order plus the consensus reference.
//   - error: ErrNilSet, ErrDegenerateShape (names the specimen), or
//     ErrRotationFailed, wrapped with the Align operation tag.
//
// Determinism:
//   - Pure function of (set, opts); fixed specimen and loop order.
//
// Complexity:
//   - Time O(iter · n · (k·d² + d³)), Space O(n·k·d).
func Align(set *specimen.Set, opts ...Option) (*Result, error) {
	if set == nil {
		return nil, gpaErrorf(opAlign, ErrNilSet)
	}
	o := gatherOptions(opts...)

	n, k, d := set.Len(), set.Landmarks(), set.Dims()

	// Stage 1+2: center each configuration, record its centroid size,
	// scale to unit size under the default convention.
	shapes := make([]*mat.Dense, n)
	sizes := make([]float64, n)
	scales := make([]float64, n)
	ids := make([]string, n)
	for i := 0; i < n; i++ { // deterministic set order
		sp, err := set.At(i)
		if err != nil {
			return nil, gpaErrorf(opAlign, err)
		}
		ids[i] = sp.ID()

		centered, size := centerAndSize(sp.Config().Coords(), k, d)
		if size < DegenerateEps {
			return nil, gpaErrorf(opAlign,
				fmt.Errorf("specimen %q: %w", sp.ID(), ErrDegenerateShape))
		}
		sizes[i] = size
		scales[i] = 1.0
		if o.scale {
			scales[i] = 1.0 / size
			scaleInPlace(centered, scales[i])
		}
		shapes[i] = mat.NewDense(k, d, centered)
	}

	// Stage 3: the first scaled configuration seeds the reference.
	ref := mat.DenseCopyOf(shapes[0])

	// Cumulative per-specimen rotations across sweeps.
	rotations := make([]*mat.Dense, n)
	for i := range rotations {
		rotations[i] = identity(d)
	}

	// Stage 4: rotate-and-average until the reference settles.
	var (
		iterations int
		converged  bool
		change     float64
	)
	for iterations = 1; iterations <= o.maxIterations; iterations++ {
		for i := 0; i < n; i++ {
			rot, err := procrustesRotation(shapes[i], ref, o.allowReflection)
			if err != nil {
				return nil, gpaErrorf(opAlign, err)
			}
			shapes[i].Mul(mat.DenseCopyOf(shapes[i]), rot)
			rotations[i].Mul(mat.DenseCopyOf(rotations[i]), rot)
		}

		// New reference: mean of rotated configurations, re-centered and
		// re-scaled to unit centroid size (when scaling).
		next := meanShape(shapes, k, d)
		recenter(next, k, d)
		if o.scale {
			norm := mat.Norm(next, 2)
			if norm < DegenerateEps {
				return nil, gpaErrorf(opAlign, ErrDegenerateShape)
			}
			next.Scale(1.0/norm, next)
		}

		change = squaredChange(ref, next)
		ref = next
		if change < o.tolerance {
			converged = true
			break
		}
	}
	if iterations > o.maxIterations {
		iterations = o.maxIterations
	}

	// Fix the global orientation: without this, the whole solution would
	// inherit an arbitrary rotation from the first specimen's original
	// pose, and alignment would not be invariant to rigid transforms of
	// the input.
	if err := canonicalize(ref, shapes, rotations); err != nil {
		return nil, gpaErrorf(opAlign, err)
	}

	res := &Result{
		Shapes:     make([]AlignedShape, n),
		Reference:  flatten(ref),
		Iterations: iterations,
		Converged:  converged,
		RMSChange:  change,
		k:          k,
		d:          d,
	}
	for i := 0; i < n; i++ {
		res.Shapes[i] = AlignedShape{
			ID:           ids[i],
			Coords:       flatten(shapes[i]),
			CentroidSize: sizes[i],
			Rotation:     flatten(rotations[i]),
			Scale:        scales[i],
		}
	}

	return res, nil
}

// procrustesRotation solves the orthogonal Procrustes problem: the
// d×d orthogonal R minimizing ‖X·R − ref‖_F, from the SVD of the
// cross-covariance Xᵀ·ref. When reflections are disallowed and the
// unconstrained optimum is improper (det < 0), the singular direction
// with the smallest singular value is flipped, yielding the optimal
// proper rotation.
func procrustesRotation(x, ref *mat.Dense, allowReflection bool) (*mat.Dense, error) {
	_, d := x.Dims()

	var cross mat.Dense
	cross.Mul(x.T(), ref)

	var svd mat.SVD
	if ok := svd.Factorize(&cross, mat.SVDFull); !ok {
		return nil, ErrRotationFailed
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	rot := mat.NewDense(d, d, nil)
	rot.Mul(&u, v.T())

	if !allowReflection && mat.Det(rot) < 0 {
		// Singular values come out descending: the last column of U spans
		// the cheapest direction to flip.
		for i := 0; i < d; i++ {
			u.Set(i, d-1, -u.At(i, d-1))
		}
		rot.Mul(&u, v.T())
	}

	return rot, nil
}

// canonicalize rotates the converged solution so the reference lies
// along its principal axes, with a deterministic sign convention
// (largest-magnitude loading per axis positive) and det=+1 so no
// mirroring is introduced. After this, aligned output depends only on
// shape content, never on the input's original orientation.
func canonicalize(ref *mat.Dense, shapes, rotations []*mat.Dense) error {
	_, d := ref.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(ref, mat.SVDThin); !ok {
		return ErrRotationFailed
	}
	var v mat.Dense
	svd.VTo(&v)

	// Sign convention per axis.
	for j := 0; j < d; j++ {
		best, bestAbs := 0, 0.0
		for i := 0; i < d; i++ {
			if a := math.Abs(v.At(i, j)); a > bestAbs {
				best, bestAbs = i, a
			}
		}
		if v.At(best, j) < 0 {
			for i := 0; i < d; i++ {
				v.Set(i, j, -v.At(i, j))
			}
		}
	}
	// Keep the basis proper: flip the weakest axis rather than mirror.
	if mat.Det(&v) < 0 {
		for i := 0; i < d; i++ {
			v.Set(i, d-1, -v.At(i, d-1))
		}
	}

	ref.Mul(mat.DenseCopyOf(ref), &v)
	for i := range shapes {
		shapes[i].Mul(mat.DenseCopyOf(shapes[i]), &v)
		rotations[i].Mul(mat.DenseCopyOf(rotations[i]), &v)
	}

	return nil
}

// centerAndSize centers flat row-major coords at their centroid and
// returns the centered copy plus its Frobenius norm (centroid size).
func centerAndSize(coords []float64, k, d int) ([]float64, float64) {
	centroid := make([]float64, d)
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ { // deterministic i→j order
			centroid[j] += coords[i*d+j]
		}
	}
	for j := 0; j < d; j++ {
		centroid[j] /= float64(k)
	}

	var sq float64
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ {
			coords[i*d+j] -= centroid[j]
			sq += coords[i*d+j] * coords[i*d+j]
		}
	}

	return coords, math.Sqrt(sq)
}

// scaleInPlace multiplies every coordinate by s.
func scaleInPlace(coords []float64, s float64) {
	for i := range coords {
		coords[i] *= s
	}
}

// recenter subtracts the centroid from every landmark of m in place.
func recenter(m *mat.Dense, k, d int) {
	centroid := make([]float64, d)
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ {
			centroid[j] += m.At(i, j)
		}
	}
	for j := 0; j < d; j++ {
		centroid[j] /= float64(k)
	}
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ {
			m.Set(i, j, m.At(i, j)-centroid[j])
		}
	}
}

// meanShape returns the arithmetic mean of the configurations.
func meanShape(shapes []*mat.Dense, k, d int) *mat.Dense {
	mean := mat.NewDense(k, d, nil)
	for _, s := range shapes {
		mean.Add(mean, s)
	}
	mean.Scale(1.0/float64(len(shapes)), mean)

	return mean
}

// squaredChange is the summed squared elementwise difference between two
// equally shaped matrices — the GPA convergence metric.
func squaredChange(a, b *mat.Dense) float64 {
	r, c := a.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			diff := a.At(i, j) - b.At(i, j)
			sum += diff * diff
		}
	}

	return sum
}

// identity builds a d×d identity matrix.
func identity(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}

	return m
}

// flatten copies a matrix into a fresh flat row-major slice.
func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = m.At(i, j)
		}
	}

	return out
}
