package specimen

import "fmt"

// Set is an ordered collection of Specimens sharing one landmark count
// and dimensionality. Order is the ingestion order and is stable: every
// downstream stage (alignment, distances, grouping, folds) indexes
// specimens by their position in the Set.
type Set struct {
	specimens []Specimen
	index     map[string]int // id → position
	k, d      int
}

// NewSet validates and wraps an ordered specimen slice.
//
// Validation (fail-fast, first violation wins):
//   - at least one specimen (ErrEmptySet),
//   - uniform k and d across all configurations (ErrDimensionMismatch),
//   - unique identifiers (ErrDuplicateID).
//
// The slice is copied; Specimens themselves are already immutable values.
func NewSet(specimens []Specimen) (*Set, error) {
	if len(specimens) == 0 {
		return nil, ErrEmptySet
	}

	k, d := specimens[0].config.k, specimens[0].config.d
	set := &Set{
		specimens: make([]Specimen, len(specimens)),
		index:     make(map[string]int, len(specimens)),
		k:         k,
		d:         d,
	}
	for i, s := range specimens {
		if s.config.k != k || s.config.d != d {
			return nil, fmt.Errorf("specimen %q is %dx%d, set is %dx%d: %w",
				s.id, s.config.k, s.config.d, k, d, ErrDimensionMismatch)
		}
		if _, dup := set.index[s.id]; dup {
			return nil, fmt.Errorf("id %q: %w", s.id, ErrDuplicateID)
		}
		set.index[s.id] = i
		set.specimens[i] = s
	}

	return set, nil
}

// Len reports the number of specimens.
func (s *Set) Len() int { return len(s.specimens) }

// Landmarks reports the shared landmark count k.
func (s *Set) Landmarks() int { return s.k }

// Dims reports the shared dimensionality d.
func (s *Set) Dims() int { return s.d }

// At returns the specimen at position i.
func (s *Set) At(i int) (Specimen, error) {
	if i < 0 || i >= len(s.specimens) {
		return Specimen{}, fmt.Errorf("specimen %d of %d: %w", i, len(s.specimens), ErrOutOfRange)
	}

	return s.specimens[i], nil
}

// ByID returns the specimen with the given identifier.
func (s *Set) ByID(id string) (Specimen, bool) {
	i, ok := s.index[id]
	if !ok {
		return Specimen{}, false
	}

	return s.specimens[i], true
}

// IDs returns the specimen identifiers in set order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.specimens))
	for i, sp := range s.specimens {
		ids[i] = sp.id
	}

	return ids
}

// Covariates collects one numeric covariate across the set, in set order.
// Returns ErrUnknownLabel if any specimen lacks the key: a partial
// covariate vector would silently misalign against the specimen order.
func (s *Set) Covariates(key string) ([]float64, error) {
	out := make([]float64, len(s.specimens))
	for i, sp := range s.specimens {
		v, ok := sp.Covariate(key)
		if !ok {
			return nil, fmt.Errorf("specimen %q, covariate %q: %w", sp.id, key, ErrUnknownLabel)
		}
		out[i] = v
	}

	return out, nil
}
