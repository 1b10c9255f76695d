// Package bachelordata is an in-memory engine for landmark-based
// geometric morphometrics — from Procrustes alignment of raw landmark
// configurations to permutation-based inference and cross-validated
// classification.
//
// What it does:
//
//	A batch, no-I/O analysis core that brings together:
//		• Data model: validated landmark configurations, specimens & groupings
//		• Alignment: Generalized Procrustes Alignment (GPA) with SVD rotations
//		• Distances: shape, geographic and externally supplied distance matrices
//		• Inference: a generic, reproducible permutation-test engine
//		• Models: Procrustes ANOVA, morphological disparity, Mantel tests
//		• Classification: cross-validated linear discriminant analysis
//
// Why this shape?
//
//   - Deterministic by construction — every randomized routine is seeded per
//     trial, so results are bit-identical across runs and worker counts
//   - Fail-fast validation — invalid input returns package sentinel errors,
//     never panics
//   - Value semantics — alignment results, distance matrices and test results
//     are never mutated after construction; stages consume, never write back
//
// Everything is organized under flat, single-concern subpackages:
//
//	specimen/ — landmark Configuration, Specimen, Set & Grouping primitives
//	gpa/      — Generalized Procrustes Alignment
//	distmat/  — symmetric labeled distance matrices + Reconcile
//	permtest/ — generic permutation-test engine (statistic × permuter)
//	anova/    — Procrustes ANOVA, regression & morphological disparity
//	mantel/   — Mantel and partial Mantel correlation of distance matrices
//	lda/      — cross-validated linear discriminant classification
//
// Ingestion (file parsing, deduplication) and export (tables, plots) are
// collaborators outside this module: the core accepts validated in-memory
// structures and returns plain result values.
package bachelordata
