package bench

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pojntfx/hugepage-latency/pkg/mem"
	"github.com/pojntfx/hugepage-latency/pkg/offsets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkMeasuresHeapBuffers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	size := 1 << 16
	offs := offsets.New(size/8, offsets.Strided, 4096, rng)

	elapsed, err := Walk(mem.Heap(mem.HeapOptions{}), offs, size, 1, NewWallClock())

	require.NoError(t, err)
	assert.Greater(t, elapsed, 0.0)
}

func TestWalkSkipsEmptyBuffers(t *testing.T) {
	calls := 0

	allocator := mem.Allocator{
		Name: "counting allocator",
		Allocate: func(size int) ([]byte, error) {
			calls++

			return make([]byte, size), nil
		},
		Release: func(b []byte) error {
			return nil
		},
	}

	elapsed, err := Walk(allocator, nil, 0, 1, NewWallClock())

	require.NoError(t, err)
	assert.Zero(t, elapsed)
	assert.Zero(t, calls)
}

func TestWalkReportsFailedAllocationsWithoutReleasing(t *testing.T) {
	released := false

	allocator := mem.Allocator{
		Name: "failing allocator",
		Allocate: func(size int) ([]byte, error) {
			return nil, errors.New("out of memory")
		},
		Release: func(b []byte) error {
			released = true

			return nil
		},
	}

	offs := offsets.New(8, offsets.Strided, 4096, rand.New(rand.NewSource(1)))

	elapsed, err := Walk(allocator, offs, 64, 1, NewWallClock())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to allocate 64B using failing allocator")
	assert.Equal(t, 0.0, elapsed)
	assert.False(t, released)
}

func TestWalkRejectsShortBuffers(t *testing.T) {
	allocator := mem.Allocator{
		Name: "short allocator",
		Allocate: func(size int) ([]byte, error) {
			return make([]byte, size/2), nil
		},
		Release: func(b []byte) error {
			return nil
		},
	}

	offs := offsets.New(8, offsets.Strided, 4096, rand.New(rand.NewSource(1)))

	_, err := Walk(allocator, offs, 64, 1, NewWallClock())

	require.Error(t, err)
}

func TestWalkDoesNotMutateTheOffsetArray(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	size := 1 << 14
	offs := offsets.New(size/8, offsets.Random, 4096, rng)

	snapshot := make([]uint64, len(offs))
	copy(snapshot, offs)

	_, err := Walk(mem.Heap(mem.HeapOptions{}), offs, size, 2, NewWallClock())

	require.NoError(t, err)
	assert.Equal(t, snapshot, offs)
}

func BenchmarkWalk(b *testing.B) {
	rng := rand.New(rand.NewSource(1))

	size := 1 << 22
	offs := offsets.New(size/8, offsets.Strided, 4096, rng)

	allocator := mem.Heap(mem.HeapOptions{})
	clk := NewWallClock()

	b.SetBytes(int64(size))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Walk(allocator, offs, size, 1, clk); err != nil {
			b.Fatal(err)
		}
	}
}
