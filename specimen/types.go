package specimen

import (
	"fmt"
	"math"
)

// Configuration is one specimen's ordered landmark coordinates: k points
// in d dimensions, stored row-major (landmark-major) in a flat slice.
// A Configuration is immutable after construction; accessors return copies.
type Configuration struct {
	coords []float64 // row-major, len == k*d
	k, d   int
}

// NewConfiguration validates and wraps a flat row-major coordinate slice.
//
// Inputs:
//   - k: landmark count (>= 1).
//   - d: dimensionality (2 or 3).
//   - coords: len k*d, landmark-major ([x0,y0, x1,y1, ...] for d=2).
//
// Returns ErrBadShape on shape violations and ErrMissingData if any
// coordinate is NaN or ±Inf. The slice is copied; the caller's backing
// array is never aliased.
func NewConfiguration(k, d int, coords []float64) (Configuration, error) {
	if k < 1 || (d != 2 && d != 3) {
		return Configuration{}, fmt.Errorf("k=%d d=%d: %w", k, d, ErrBadShape)
	}
	if len(coords) != k*d {
		return Configuration{}, fmt.Errorf("len(coords)=%d, want %d: %w", len(coords), k*d, ErrBadShape)
	}
	for i, v := range coords {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Configuration{}, fmt.Errorf("coordinate %d: %w", i, ErrMissingData)
		}
	}

	c := Configuration{coords: make([]float64, len(coords)), k: k, d: d}
	copy(c.coords, coords)

	return c, nil
}

// Landmarks reports the landmark count k.
func (c Configuration) Landmarks() int { return c.k }

// Dims reports the dimensionality d.
func (c Configuration) Dims() int { return c.d }

// At returns a copy of landmark i's coordinates (length d).
func (c Configuration) At(i int) ([]float64, error) {
	if i < 0 || i >= c.k {
		return nil, fmt.Errorf("landmark %d of %d: %w", i, c.k, ErrOutOfRange)
	}
	out := make([]float64, c.d)
	copy(out, c.coords[i*c.d:(i+1)*c.d])

	return out, nil
}

// Coords returns a copy of the flat row-major coordinate slice (len k*d).
func (c Configuration) Coords() []float64 {
	out := make([]float64, len(c.coords))
	copy(out, c.coords)

	return out
}

// Centroid returns the mean landmark position (length d).
func (c Configuration) Centroid() []float64 {
	cen := make([]float64, c.d)
	for i := 0; i < c.k; i++ {
		for j := 0; j < c.d; j++ { // deterministic i→j order
			cen[j] += c.coords[i*c.d+j]
		}
	}
	inv := 1.0 / float64(c.k)
	for j := 0; j < c.d; j++ {
		cen[j] *= inv
	}

	return cen
}

// Specimen couples an identifier with a landmark configuration and
// optional categorical labels (species, site, tree-cover category) and
// numeric covariates (environmental gradients, latitude/longitude).
// Specimens are value-like: constructed once by the ingestion
// collaborator, never mutated inside the core.
type Specimen struct {
	id         string
	config     Configuration
	labels     map[string]string
	covariates map[string]float64
}

// New builds a Specimen. Both metadata maps may be nil; they are copied
// so later caller-side mutation cannot reach the core.
func New(id string, config Configuration, labels map[string]string, covariates map[string]float64) Specimen {
	s := Specimen{id: id, config: config}
	if len(labels) > 0 {
		s.labels = make(map[string]string, len(labels))
		for k, v := range labels {
			s.labels[k] = v
		}
	}
	if len(covariates) > 0 {
		s.covariates = make(map[string]float64, len(covariates))
		for k, v := range covariates {
			s.covariates[k] = v
		}
	}

	return s
}

// ID returns the specimen's unique identifier.
func (s Specimen) ID() string { return s.id }

// Config returns the specimen's landmark configuration.
func (s Specimen) Config() Configuration { return s.config }

// Label looks up a categorical label by key.
func (s Specimen) Label(key string) (string, bool) {
	v, ok := s.labels[key]

	return v, ok
}

// Covariate looks up a numeric covariate by key.
func (s Specimen) Covariate(key string) (float64, bool) {
	v, ok := s.covariates[key]

	return v, ok
}
