// Package workload generates reproducible key access sequences
// used to compare cache replacement behavior.
//
// Sequence lengths are rounded up to a power of two,
// so callers may cycle through them with a mask.
package workload

import (
	"fmt"
	"math/bits"
	"math/rand"
)

type (
	// Pattern names an access sequence generator.
	Pattern struct {
		Name string
		// Generate returns a sequence sized for a cache of capacity entries.
		Generate func(capacity int) []int
	}
)

// Patterns returns the standard set of patterns,
// each seeded with seed.
func Patterns(seed int64) []Pattern {
	return []Pattern{
		{
			"sequential",
			func(int) []int {
				const (
					universe = 1 << 16 // Key space large enough to force misses.
					seqLen   = 1 << 15
				)
				return Sequential(universe, seqLen)
			},
		},
		{
			"loop",
			func(capacity int) []int {
				const (
					universe = 8192 // Moderately larger than capacity.
					seqLen   = 1 << 16
					hotRatio = 0.9 // 90% of accesses hit hot set.
				)
				return Looping(capacity, universe, seqLen, hotRatio, seed)
			},
		},
		{
			"zipf",
			func(int) []int {
				const (
					universe = 16384 // Large enough to show skew.
					seqLen   = 1 << 16
					skew     = 1.2
					bias     = 1.0
				)
				return Zipf(universe, seqLen, skew, bias, seed)
			},
		},
		{
			"uniform",
			func(capacity int) []int {
				const seqLen = 1 << 16
				return Uniform(capacity*4, seqLen, seed) // Universe bigger than capacity.
			},
		},
	}
}

// Lookup returns the standard pattern called name.
func Lookup(name string, seed int64) (Pattern, error) {
	for _, pattern := range Patterns(seed) {
		if pattern.Name == name {
			return pattern, nil
		}
	}
	return Pattern{}, fmt.Errorf("unknown workload pattern: %q", name)
}

// Sequential cycles through [0, universe).
func Sequential(universe, seqLen int) []int {
	seq := make([]int, NextPow2(seqLen))
	for i := range seq {
		seq[i] = i % universe
	}
	return seq
}

// Looping accesses a hot set the size of capacity with probability hotRatio,
// and the rest of the universe otherwise.
func Looping(capacity, universe, seqLen int, hotRatio float64, seed int64) []int {
	var (
		seq      = make([]int, NextPow2(seqLen))
		rng      = newRNG(seed)
		hotSize  = max(1, capacity)
		coldSize = max(1, universe-hotSize)
	)
	for i := range seq {
		if rng.Float64() < hotRatio {
			seq[i] = rng.Intn(hotSize)
		} else {
			seq[i] = hotSize + rng.Intn(coldSize)
		}
	}
	return seq
}

// Zipf draws keys from a Zipf distribution over [0, universe).
// skew must be > 1 and bias >= 1.
func Zipf(universe, seqLen int, skew, bias float64, seed int64) []int {
	var (
		seq  = make([]int, NextPow2(seqLen))
		rng  = newRNG(seed)
		imax = uint64(max(universe, 2) - 1)
		zipf = rand.NewZipf(rng, skew, bias, imax)
	)
	for i := range seq {
		seq[i] = int(zipf.Uint64())
	}
	return seq
}

// Uniform draws keys uniformly from [0, upperBound).
func Uniform(upperBound, seqLen int, seed int64) []int {
	var (
		rng = newRNG(seed)
		seq = make([]int, NextPow2(seqLen))
	)
	for i := range seq {
		seq[i] = rng.Intn(max(upperBound, 1))
	}
	return seq
}

// NextPow2 returns the smallest power of two >= x (and >= 1).
func NextPow2(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x)-1)
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
