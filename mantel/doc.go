// Package mantel implements the Mantel test: permutation-based
// correlation between two distance matrices over the same ordered
// entities (e.g. shape distance vs. genetic distance, or geographic
// vs. environmental distance), plus the three-matrix partial variant.
//
// The observed statistic is the Pearson correlation between the
// vectorized strict upper triangles. Each permutation trial applies one
// shared random reordering to the rows AND columns of the second matrix
// — preserving its internal relational structure — and recomputes the
// correlation. Significance comes from the shared permtest engine, so
// determinism and p-value smoothing follow its contract.
//
// Both inputs must already share identical ordered identifiers; run
// distmat.Reconcile first when entity sets differ.
package mantel
