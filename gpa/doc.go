// SPDX-License-Identifier: MIT

// Package gpa implements Generalized Procrustes Alignment (GPA):
// the iterative removal of translation, rotation and (optionally) scale
// differences among landmark configurations, isolating shape.
//
// The gpa package provides:
//
//   - Align — full GPA over a specimen.Set, producing per-specimen
//     aligned coordinates, centroid sizes and applied rotations, plus the
//     consensus (mean) reference shape.
//   - Functional options for tolerance, iteration cap, reflection policy
//     (full orthogonal vs. proper rotations) and the size-and-shape
//     variant that preserves scale.
//
// Algorithm outline:
//
//  1. Center each configuration at its own centroid; record the
//     pre-scaling Frobenius norm as the specimen's centroid size.
//  2. Scale each centered configuration to unit centroid size (unless
//     WithoutScaling).
//  3. Initialize the reference as the first scaled configuration.
//  4. Iterate: rotate every configuration onto the reference via the
//     orthogonal Procrustes solution (SVD of the cross-covariance),
//     recompute the reference as the mean of the rotated configurations,
//     re-center and re-scale it to unit size.
//  5. Stop when the summed squared reference change drops below the
//     tolerance, or at the iteration cap. Hitting the cap is not fatal:
//     the Result reports Converged=false and the final RMSChange so
//     callers can decide whether the approximate alignment is usable.
//
// Determinism: specimen order is the set order, loop orders are fixed,
// and no randomness is involved — Align is a pure function of its input
// and options.
package gpa
