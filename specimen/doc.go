// Package specimen defines the landmark data model shared by every
// analysis stage: Configuration (one specimen's landmark coordinates),
// Specimen (identifier + configuration + optional metadata), Set (an
// ordered collection with uniform landmark count and dimensionality)
// and Grouping (a deterministic, ordered mapping from a categorical
// label to member indices).
//
// The package is validation-first: constructors reject malformed input
// with package sentinel errors (matched via errors.Is) and never panic
// on user data. Values handed out by this package are immutable by
// contract — downstream stages consume them by copy or read-only
// reference and never write back.
//
// Landmark correspondence (landmark i denotes the same anatomical point
// on every specimen) is assumed, not verified: it is a property of the
// digitization protocol, invisible to coordinate data.
package specimen
