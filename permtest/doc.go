// Package permtest is a generic permutation-test engine: one statistic
// function plus one permutation operator yield an observed value, a null
// distribution and an empirical p-value. Procrustes ANOVA, morphological
// disparity and Mantel correlation are all instantiations of this single
// engine rather than three bespoke loops.
//
// Contract:
//
//	res, err := permtest.Run(data, statistic, permute,
//	    permtest.WithPermutations(999), permtest.WithSeed(42))
//
// where statistic computes a real-valued summary of the data and permute
// returns a relabeled copy. permute must treat its input as read-only:
// trials run concurrently over the same data value.
//
// Reproducibility: trial t draws from rand.New(rand.NewPCG(seed, t)),
// so the null distribution is bit-for-bit identical across runs and
// across worker counts — parallelism never changes results, only wall
// time. The only shared state is the preallocated null slice, written at
// disjoint indices.
//
// The p-value uses the Laplace-smoothed form
// (1 + #{null at least as extreme as observed}) / (permutations + 1),
// which guarantees p ∈ [1/(perm+1), 1] — a permutation test can never
// report zero.
package permtest
