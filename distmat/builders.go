// SPDX-License-Identifier: MIT

package distmat

import (
	"fmt"
	"math"

	"github.com/Joysaath/bachelordata/gpa"
)

// EarthRadiusKm is the WGS84 mean Earth radius used by FromGeo.
const EarthRadiusKm = 6371.0088

// FromShapes builds the pairwise Euclidean distance matrix between
// flattened aligned landmark coordinates — the shape-space distances
// downstream tests correlate against genetic or geographic structure.
//
// Complexity: Time O(n²·k·d), Space O(n²).
func FromShapes(res *gpa.Result) (*Matrix, error) {
	if res == nil {
		return nil, ErrNilInput
	}
	n := res.Len()
	if n == 0 {
		return nil, ErrBadShape
	}

	coords := res.Coordinates()
	upper := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ { // deterministic i→j order
		for j := i + 1; j < n; j++ {
			upper = append(upper, euclidean(coords[i], coords[j]))
		}
	}

	return newSymmetric(res.IDs(), upper), nil
}

// FromGeo builds the great-circle (haversine) distance matrix, in
// kilometres, from per-entity latitude/longitude in decimal degrees.
//
// Validation: equal slice lengths and one label per entity (ErrBadShape),
// finite values (ErrNaNInf), latitude in [-90,90] and longitude in
// [-180,180] (ErrGeoRange), unique labels (ErrDuplicateLabel).
func FromGeo(labels []string, lat, lon []float64) (*Matrix, error) {
	n := len(labels)
	if n == 0 || len(lat) != n || len(lon) != n {
		return nil, fmt.Errorf("%d labels, %d lat, %d lon: %w", n, len(lat), len(lon), ErrBadShape)
	}
	for i := 0; i < n; i++ {
		if !isFinite(lat[i]) || !isFinite(lon[i]) {
			return nil, fmt.Errorf("entity %q: %w", labels[i], ErrNaNInf)
		}
		if lat[i] < -90 || lat[i] > 90 || lon[i] < -180 || lon[i] > 180 {
			return nil, fmt.Errorf("entity %q (%g,%g): %w", labels[i], lat[i], lon[i], ErrGeoRange)
		}
	}
	if err := checkUnique(labels); err != nil {
		return nil, err
	}

	upper := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			upper = append(upper, haversineKm(lat[i], lon[i], lat[j], lon[j]))
		}
	}

	return newSymmetric(labels, upper), nil
}

// FromPoints builds the pairwise Euclidean distance matrix over
// arbitrary equal-length numeric vectors — projected coordinates,
// environmental gradients, or any caller-supplied feature space.
func FromPoints(labels []string, points [][]float64) (*Matrix, error) {
	n := len(labels)
	if n == 0 || len(points) != n {
		return nil, fmt.Errorf("%d labels, %d points: %w", n, len(points), ErrBadShape)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("point %d has %d dims, want %d: %w", i, len(p), dim, ErrBadShape)
		}
		for _, v := range p {
			if !isFinite(v) {
				return nil, fmt.Errorf("entity %q: %w", labels[i], ErrNaNInf)
			}
		}
	}
	if err := checkUnique(labels); err != nil {
		return nil, err
	}

	upper := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			upper = append(upper, euclidean(points[i], points[j]))
		}
	}

	return newSymmetric(labels, upper), nil
}

// euclidean returns the L2 distance between equal-length vectors.
func euclidean(a, b []float64) float64 {
	var sq float64
	for i := range a {
		diff := a[i] - b[i]
		sq += diff * diff
	}

	return math.Sqrt(sq)
}

// haversineKm returns the great-circle distance between two points given
// in decimal degrees.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	phi1, phi2 := lat1*degToRad, lat2*degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkUnique rejects duplicate identifiers.
func checkUnique(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, lbl := range labels {
		if _, dup := seen[lbl]; dup {
			return fmt.Errorf("label %q: %w", lbl, ErrDuplicateLabel)
		}
		seen[lbl] = struct{}{}
	}

	return nil
}
