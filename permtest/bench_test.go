package permtest_test

import (
	"math/rand/v2"
	"testing"

	"github.com/Joysaath/bachelordata/permtest"
)

// benchmarkRun measures engine overhead with a statistic of tunable cost.
func benchmarkRun(b *testing.B, workers, perms, size int) {
	data := make([]float64, size)
	for i := range data {
		data[i] = float64(i % 7)
	}
	shuffle := func(xs []float64, rng *rand.Rand) []float64 {
		out := make([]float64, len(xs))
		for i, p := range rng.Perm(len(xs)) {
			out[i] = xs[p]
		}

		return out
	}

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		_, err := permtest.Run(data, meanStat, shuffle,
			permtest.WithPermutations(perms),
			permtest.WithWorkers(workers))
		if err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkRun_Sequential runs 999 trials on one worker.
func BenchmarkRun_Sequential(b *testing.B) { benchmarkRun(b, 1, 999, 512) }

// BenchmarkRun_Parallel8 runs 999 trials on eight workers.
func BenchmarkRun_Parallel8(b *testing.B) { benchmarkRun(b, 8, 999, 512) }
