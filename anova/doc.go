// Package anova provides permutation-based linear models on aligned
// shape data:
//
//   - ProcrustesANOVA — one-way ANOVA of flattened aligned coordinates
//     on a categorical grouping. The statistic is the model F-ratio
//     computed from summed squared Procrustes distances (explained vs.
//     residual, scaled by degrees of freedom); significance comes from
//     permuting response rows against the fixed design matrix.
//   - ProcrustesRegression — the same machinery for a single numeric
//     predictor (environmental gradient, latitude, size).
//   - Disparity / SizeDisparity — morphological disparity: the
//     Procrustes variance of each group (mean squared distance of
//     members from their group mean shape, equivalently the trace of
//     the group covariance), with pairwise permutation tests on the
//     absolute variance differences. SizeDisparity runs the same test
//     on log centroid size instead of shape — the alternate distance
//     mode for size-based questions.
//
// Parametric F-distributions are never consulted: every p-value is
// empirical, produced by the shared permtest engine, with its
// determinism and Laplace-smoothing guarantees.
package anova
