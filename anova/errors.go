// Package anova: sentinel error set, matched via errors.Is.

package anova

import "errors"

var (
	// ErrNilResult indicates a nil alignment result.
	ErrNilResult = errors.New("anova: alignment result is nil")

	// ErrNilGrouping indicates a nil grouping.
	ErrNilGrouping = errors.New("anova: grouping is nil")

	// ErrLabelMismatch indicates the grouping was built over a different
	// specimen count than the alignment result — the two inputs do not
	// describe the same specimens.
	ErrLabelMismatch = errors.New("anova: grouping does not align with specimens")

	// ErrSingleGroup indicates fewer than two groups, leaving nothing to
	// compare.
	ErrSingleGroup = errors.New("anova: at least two groups required")

	// ErrInsufficientData indicates too few specimens for the requested
	// model: no residual degrees of freedom, or a disparity group with
	// fewer than two members. The wrapped message names the culprit.
	ErrInsufficientData = errors.New("anova: insufficient data to fit")

	// ErrBadCovariate indicates a covariate vector of the wrong length or
	// containing non-finite values.
	ErrBadCovariate = errors.New("anova: invalid covariate vector")

	// ErrSingularDesign indicates the design matrix is rank-deficient, so
	// the least-squares fit is not identifiable.
	ErrSingularDesign = errors.New("anova: singular design matrix")
)
