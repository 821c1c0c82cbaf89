package offsets

import (
	"math/rand"
)

type Mode int

const (
	// Strided probes one random cache line per page, so every load walks
	// the page table but the prefetcher has no learnable pattern.
	Strided Mode = iota
	// Random spreads the probes uniformly over the whole buffer.
	Random
)

func (m Mode) String() string {
	switch m {
	case Random:
		return "random"
	default:
		return "strided"
	}
}

// New returns n offsets for a buffer of n 64-bit slots; every offset
// lies in [0, n). Counts below one yield an empty array.
func New(n int, mode Mode, pageSize int, rng *rand.Rand) []uint64 {
	if n < 0 {
		n = 0
	}

	dst := make([]uint64, n)

	Fill(dst, mode, pageSize, rng)

	return dst
}

func Fill(dst []uint64, mode Mode, pageSize int, rng *rand.Rand) {
	n := uint64(len(dst))
	if n == 0 {
		return
	}

	if mode == Random {
		for i := range dst {
			dst[i] = (uint64(i) + rng.Uint64()) % n
		}

		return
	}

	stride := uint64(pageSize) / 8
	if stride < 1 {
		stride = 1
	}

	for i := range dst {
		r := uint64(rng.Int63n(int64(stride)))

		// The inner modulo lands each probe on its page, the outer one
		// keeps the last partial page in bounds when n is not a
		// multiple of the stride.
		dst[i] = ((uint64(i)*stride)%n + r) % n
	}
}
