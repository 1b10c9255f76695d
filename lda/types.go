package lda

import "errors"

var (
	// ErrNilResult indicates a nil alignment result.
	ErrNilResult = errors.New("lda: alignment result is nil")

	// ErrNilGrouping indicates a nil grouping.
	ErrNilGrouping = errors.New("lda: grouping is nil")

	// ErrLabelMismatch indicates the grouping covers a different specimen
	// count than the alignment result.
	ErrLabelMismatch = errors.New("lda: grouping does not align with specimens")

	// ErrTooFewClasses indicates fewer than two classes.
	ErrTooFewClasses = errors.New("lda: at least two classes required")

	// ErrInsufficientData indicates a class with fewer than two training
	// members after folding; the wrapped message names the class.
	ErrInsufficientData = errors.New("lda: class has too few training members")

	// ErrSingularCovariance indicates the pooled covariance could not be
	// factorized even after regularization.
	ErrSingularCovariance = errors.New("lda: pooled covariance is singular")
)

// Projection is the 2D visualization output of the holdout split: the
// held-out specimens' scores on the first two discriminant axes. With
// two classes only one axis exists; the second score is then zero.
type Projection struct {
	// IDs are the held-out specimen identifiers, in set order.
	IDs []string

	// TrueClasses are the held-out specimens' actual classes.
	TrueClasses []string

	// Scores are the per-specimen coordinates on the first two
	// discriminant axes.
	Scores [][2]float64
}

// ClassificationResult is the immutable outcome of one cross-validated
// classification run.
type ClassificationResult struct {
	// Classes lists class names in grouping order; confusion-matrix
	// indices refer to this order.
	Classes []string

	// Confusion is the accumulated confusion matrix:
	// Confusion[predicted][true], indices into Classes.
	Confusion [][]int

	// Recall is the per-class recall: correctly predicted members of a
	// class over all its members (the confusion diagonal over the true
	// class total).
	Recall []float64

	// Folds is the number of cross-validation folds run (n for
	// leave-one-out).
	Folds int

	// Projection holds the deterministic holdout visualization split,
	// or nil when every class was too small to spare a test specimen.
	Projection *Projection
}
