// Package specimen: sentinel error set.
// All constructors and accessors return these sentinels; tests match them
// via errors.Is. Callers wrapping for context must use fmt.Errorf with %w
// so sentinel identity survives.

package specimen

import "errors"

var (
	// ErrBadShape is returned when a configuration's declared shape is
	// unusable: fewer than one landmark, or a dimensionality outside {2,3},
	// or a coordinate slice whose length is not k*d.
	ErrBadShape = errors.New("specimen: invalid configuration shape")

	// ErrMissingData is returned when a coordinate is NaN or ±Inf.
	// Incomplete configurations must be resolved (or dropped) by the
	// ingestion collaborator before reaching this package.
	ErrMissingData = errors.New("specimen: missing or non-finite coordinate")

	// ErrDimensionMismatch is returned by NewSet when specimens disagree on
	// landmark count or dimensionality.
	ErrDimensionMismatch = errors.New("specimen: landmark count or dimension differs across specimens")

	// ErrDuplicateID is returned by NewSet when two specimens share an
	// identifier. Identity must be unique; resolving duplicates (e.g. one
	// wing side per individual) is the ingestion collaborator's job.
	ErrDuplicateID = errors.New("specimen: duplicate specimen identifier")

	// ErrEmptySet is returned when an operation requires at least one
	// specimen and the set has none.
	ErrEmptySet = errors.New("specimen: empty specimen set")

	// ErrUnknownLabel is returned by GroupBy when a specimen lacks the
	// requested label key. Grouping is all-or-nothing: a partial grouping
	// would silently bias downstream tests.
	ErrUnknownLabel = errors.New("specimen: specimen lacks requested label key")

	// ErrOutOfRange is returned by index-based accessors for invalid indices.
	ErrOutOfRange = errors.New("specimen: index out of range")
)
