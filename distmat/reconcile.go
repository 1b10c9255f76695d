// SPDX-License-Identifier: MIT

package distmat

// Reconcile restricts two distance matrices to the intersection of their
// identifier sets, in one consistent order, so that position i refers to
// the same entity in both outputs. This is the mandatory precondition
// for any two-matrix statistic (Mantel).
//
// Behavior highlights:
//   - Matching is exact string equality on identifiers — nothing fuzzy.
//   - Output order is a's order filtered to the shared identifiers, so
//     reconciling is deterministic and idempotent.
//   - Inputs are untouched; outputs are fresh matrices (inputs are
//     returned as-is only when the label sets are already identical in
//     identical order, in which case there is nothing to do).
//
// Errors:
//   - ErrNilMatrix when either input is nil.
//   - ErrLabelMismatch when the intersection is empty.
//
// Complexity: Time O(n_a·n_b + m²) for m shared identifiers, Space O(m²).
func Reconcile(a, b *Matrix) (*Matrix, *Matrix, error) {
	if a == nil || b == nil {
		return nil, nil, ErrNilMatrix
	}
	if SameLabels(a, b) {
		return a, b, nil
	}

	shared := make([]string, 0, min(a.n, b.n))
	aIdx := make([]int, 0, min(a.n, b.n))
	bIdx := make([]int, 0, min(a.n, b.n))
	for i, lbl := range a.labels { // a's order wins
		if j, ok := b.index[lbl]; ok {
			shared = append(shared, lbl)
			aIdx = append(aIdx, i)
			bIdx = append(bIdx, j)
		}
	}
	if len(shared) == 0 {
		return nil, nil, ErrLabelMismatch
	}

	return a.restrict(shared, aIdx), b.restrict(shared, bIdx), nil
}

// restrict builds the submatrix over the given source positions with the
// given labels. Caller guarantees positions are valid and labels unique.
func (m *Matrix) restrict(labels []string, positions []int) *Matrix {
	n := len(positions)
	out := &Matrix{
		labels: make([]string, n),
		index:  make(map[string]int, n),
		data:   make([]float64, n*n),
		n:      n,
	}
	copy(out.labels, labels)
	for i, lbl := range labels {
		out.index[lbl] = i
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = m.data[positions[i]*m.n+positions[j]]
		}
	}

	return out
}
