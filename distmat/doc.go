// SPDX-License-Identifier: MIT

// Package distmat provides symmetric, labeled distance matrices and the
// builders the analysis pipeline needs:
//
//   - Matrix — an immutable n×n symmetric matrix with zero diagonal,
//     indexed by a shared ordered set of entity identifiers. Externally
//     computed matrices (e.g. genetic distances) enter through New,
//     which validates symmetry, diagonal and finiteness fail-fast.
//   - FromShapes — pairwise Euclidean distance between flattened aligned
//     landmark coordinates (Procrustes distance in the tangent sense).
//   - FromGeo — great-circle (haversine) distance in kilometres from
//     latitude/longitude pairs.
//   - FromPoints — plain Euclidean distance over arbitrary numeric
//     vectors (projected coordinates, environmental gradients).
//   - Reconcile — restriction of two matrices to the intersection of
//     their identifier sets in one consistent order, the precondition
//     for any two-matrix test (Mantel).
//
// Identifier matching is exact string equality, always: fuzzy or
// substring joins belong to ingestion, never to the core, where a
// partial match would silently pair the wrong entities.
//
// Matrices are value-like: builders allocate fresh storage, accessors
// return copies, nothing is mutated after construction.
package distmat
