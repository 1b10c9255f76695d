// Package lda provides cross-validated linear discriminant
// classification of aligned shapes: can group membership (species,
// site, tree-cover category) be read back from shape alone?
//
// The model is classical LDA — per-class mean vectors with one pooled
// within-class covariance (homogeneity assumption), prediction by
// maximum discriminant score. Honesty comes from cross-validation:
// every specimen is predicted by a model that never saw it
// (leave-one-out by default, or k-fold), and predictions accumulate
// into a confusion matrix with per-class recall.
//
// Alongside the honest error estimate, a deterministic stratified
// holdout split (80/20 by default, seeded) fits a visualization model
// and projects the held-out specimens onto the first two discriminant
// axes. Rendering the projection is the caller's concern; the package
// returns plain scores.
//
// Shape data routinely has more coordinates than specimens, which makes
// the pooled covariance singular; a small trace-scaled ridge keeps the
// solve well-posed, deterministically.
package lda
