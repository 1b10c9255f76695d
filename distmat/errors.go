// SPDX-License-Identifier: MIT
// Package distmat: sentinel error set. All builders and accessors return
// these sentinels (optionally wrapped with context via %w); tests match
// them with errors.Is. No user-triggered condition panics.

package distmat

import "errors"

var (
	// ErrBadShape is returned when inputs disagree on length: labels vs
	// rows, ragged rows, or empty input.
	ErrBadShape = errors.New("distmat: invalid shape")

	// ErrDuplicateLabel is returned when two rows share an identifier.
	ErrDuplicateLabel = errors.New("distmat: duplicate label")

	// ErrAsymmetry is returned when an ingested matrix violates symmetry
	// beyond the numeric tolerance.
	ErrAsymmetry = errors.New("distmat: matrix is not symmetric within eps")

	// ErrNonZeroDiagonal is returned when an ingested matrix has a
	// diagonal entry beyond the numeric tolerance.
	ErrNonZeroDiagonal = errors.New("distmat: diagonal not zero within eps")

	// ErrNaNInf is returned when a NaN or ±Inf value is encountered where
	// finite distances are required.
	ErrNaNInf = errors.New("distmat: NaN or Inf encountered")

	// ErrNegative is returned when an ingested distance is negative beyond
	// the numeric tolerance. Distances are non-negative by definition.
	ErrNegative = errors.New("distmat: negative distance")

	// ErrOutOfRange indicates a row/column index outside valid bounds.
	ErrOutOfRange = errors.New("distmat: index out of range")

	// ErrGeoRange is returned when a latitude falls outside [-90, 90] or a
	// longitude outside [-180, 180].
	ErrGeoRange = errors.New("distmat: coordinate outside valid geographic range")

	// ErrLabelMismatch is returned when two matrices share no identifiers,
	// or when an operation requires identical ordered identifier sets and
	// they differ.
	ErrLabelMismatch = errors.New("distmat: label sets do not align")

	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("distmat: nil matrix")

	// ErrNilInput indicates a nil alignment result or input slice where a
	// value is required.
	ErrNilInput = errors.New("distmat: nil input")
)
