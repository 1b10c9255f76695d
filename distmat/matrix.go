// SPDX-License-Identifier: MIT

package distmat

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the non-negative tolerance for the structural checks
// (symmetry, zero diagonal, non-negativity) applied at ingestion.
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "distmat: WithEpsilon: eps must be finite, non-negative"

// Option mutates ingestion options. Safe to apply repeatedly.
type Option func(*options)

type options struct {
	eps float64
}

// WithEpsilon sets the structural-check tolerance for New. Panics on a
// negative or non-finite value (programmer error).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

func gatherOptions(user ...Option) options {
	o := options{eps: DefaultEpsilon}
	for _, set := range user {
		set(&o)
	}

	return o
}

// Matrix is an immutable symmetric distance matrix over an ordered set
// of entity identifiers. Storage is flat row-major; the exact symmetric
// value is stored on both triangles so At(i,j)==At(j,i) bitwise.
type Matrix struct {
	labels []string
	index  map[string]int
	data   []float64 // flat row-major, len n*n
	n      int
}

// New validates and ingests an externally computed distance matrix
// (e.g. genetic distances).
//
// Validation (fail-fast, first violation wins):
//   - n >= 1 rows, len(labels) == n, every row length n (ErrBadShape),
//   - unique labels (ErrDuplicateLabel),
//   - finite entries (ErrNaNInf),
//   - non-negative entries within eps (ErrNegative),
//   - zero diagonal within eps (ErrNonZeroDiagonal),
//   - symmetry within eps (ErrAsymmetry).
//
// Small asymmetries within eps are repaired by averaging the two
// triangles; the diagonal is forced to exact zero. Input is copied.
func New(labels []string, rows [][]float64, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)

	n := len(rows)
	if n == 0 || len(labels) != n {
		return nil, fmt.Errorf("%d labels, %d rows: %w", len(labels), n, ErrBadShape)
	}

	m := &Matrix{
		labels: make([]string, n),
		index:  make(map[string]int, n),
		data:   make([]float64, n*n),
		n:      n,
	}
	for i, lbl := range labels {
		if _, dup := m.index[lbl]; dup {
			return nil, fmt.Errorf("label %q: %w", lbl, ErrDuplicateLabel)
		}
		m.index[lbl] = i
		m.labels[i] = lbl
	}

	for i := 0; i < n; i++ { // deterministic i→j order
		if len(rows[i]) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(rows[i]), n, ErrBadShape)
		}
		for j := 0; j < n; j++ {
			v := rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("entry (%d,%d): %w", i, j, ErrNaNInf)
			}
			if v < -o.eps {
				return nil, fmt.Errorf("entry (%d,%d)=%g: %w", i, j, v, ErrNegative)
			}
		}
		if math.Abs(rows[i][i]) > o.eps {
			return nil, fmt.Errorf("diagonal (%d,%d)=%g: %w", i, i, rows[i][i], ErrNonZeroDiagonal)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(rows[i][j]-rows[j][i]) > o.eps {
				return nil, fmt.Errorf("entries (%d,%d)=%g vs (%d,%d)=%g: %w",
					i, j, rows[i][j], j, i, rows[j][i], ErrAsymmetry)
			}
			v := (rows[i][j] + rows[j][i]) / 2 // repair sub-eps asymmetry
			m.data[i*n+j] = v
			m.data[j*n+i] = v
		}
	}
	// Diagonal stays exactly zero.

	return m, nil
}

// newSymmetric wraps builder output without re-validation: callers fill
// only the strict upper triangle and this constructor mirrors it.
func newSymmetric(labels []string, upper []float64) *Matrix {
	n := len(labels)
	m := &Matrix{
		labels: make([]string, n),
		index:  make(map[string]int, n),
		data:   make([]float64, n*n),
		n:      n,
	}
	copy(m.labels, labels)
	for i, lbl := range labels {
		m.index[lbl] = i
	}
	pos := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.data[i*n+j] = upper[pos]
			m.data[j*n+i] = upper[pos]
			pos++
		}
	}

	return m
}

// Size reports the number of entities n.
func (m *Matrix) Size() int { return m.n }

// Labels returns the ordered identifiers (copy).
func (m *Matrix) Labels() []string {
	out := make([]string, m.n)
	copy(out, m.labels)

	return out
}

// Label returns the identifier at position i.
func (m *Matrix) Label(i int) (string, error) {
	if i < 0 || i >= m.n {
		return "", fmt.Errorf("label %d of %d: %w", i, m.n, ErrOutOfRange)
	}

	return m.labels[i], nil
}

// Index returns the position of an identifier (exact match).
func (m *Matrix) Index(label string) (int, bool) {
	i, ok := m.index[label]

	return i, ok
}

// At returns the distance between entities i and j.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("entry (%d,%d) of %dx%d: %w", i, j, m.n, m.n, ErrOutOfRange)
	}

	return m.data[i*m.n+j], nil
}

// CondensedUpper returns the strict upper triangle row-major, the
// canonical vectorization for matrix-correlation statistics
// (len n(n-1)/2). The slice is a fresh copy.
func (m *Matrix) CondensedUpper() []float64 {
	out := make([]float64, m.n*(m.n-1)/2)
	pos := 0
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			out[pos] = m.data[i*m.n+j]
			pos++
		}
	}

	return out
}

// SameLabels reports whether two matrices share identical ordered
// identifier sets — the precondition for Mantel-style tests.
func SameLabels(a, b *Matrix) bool {
	if a == nil || b == nil || a.n != b.n {
		return false
	}
	for i := range a.labels {
		if a.labels[i] != b.labels[i] {
			return false
		}
	}

	return true
}

// Permuted returns a copy of m with rows and columns reordered by perm:
// entry (i,j) of the result equals m(perm[i], perm[j]). The internal
// relational structure is preserved; only entity order changes. Labels
// follow the permutation. perm must be a permutation of 0..n-1.
func (m *Matrix) Permuted(perm []int) (*Matrix, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if len(perm) != m.n {
		return nil, fmt.Errorf("perm length %d, want %d: %w", len(perm), m.n, ErrBadShape)
	}
	seen := make([]bool, m.n)
	for _, p := range perm {
		if p < 0 || p >= m.n || seen[p] {
			return nil, fmt.Errorf("perm is not a permutation of 0..%d: %w", m.n-1, ErrBadShape)
		}
		seen[p] = true
	}

	out := &Matrix{
		labels: make([]string, m.n),
		index:  make(map[string]int, m.n),
		data:   make([]float64, m.n*m.n),
		n:      m.n,
	}
	for i, p := range perm {
		out.labels[i] = m.labels[p]
		out.index[m.labels[p]] = i
	}
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			out.data[i*m.n+j] = m.data[perm[i]*m.n+perm[j]]
		}
	}

	return out, nil
}
