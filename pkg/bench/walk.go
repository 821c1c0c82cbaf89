package bench

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/pojntfx/hugepage-latency/pkg/mem"
)

// sink publishes each walk's accumulated value so the loads cannot be
// eliminated as dead code; together with the load before the timed
// region it brackets the measurement with acquire/release ordering.
var sink atomic.Uint64

// Walk allocates size bytes, fills them with the offset array and walks
// them passes times with data-dependent loads. It returns the elapsed
// time of the walk alone in seconds.
//
// A failed allocation is reported as an error with 0 elapsed time and
// nothing is released in that case.
func Walk(allocator mem.Allocator, offs []uint64, size int, passes int, clk Clock) (float64, error) {
	if size <= 0 || len(offs) == 0 {
		return 0, nil
	}

	buf, err := allocator.Allocate(size)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %vB using %v: %w", size, allocator.Name, err)
	}

	n := len(offs)

	if len(buf) < n*8 {
		_ = allocator.Release(buf)

		return 0, fmt.Errorf("%v returned %vB for a %vB request", allocator.Name, len(buf), n*8)
	}

	items := unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), n)

	// Loading the pattern also faults in every page before the clock
	// starts.
	copy(items, offs)

	_ = sink.Load()

	begin := clk.Start()

	value := uint64(0)
	for pass := 0; pass < passes; pass++ {
		for j := 0; j < n; j++ {
			b := items[j]
			c := items[b]

			value += b * c
		}
	}

	sink.Store(value)

	end := clk.End()

	elapsed := 0.0
	if end > begin {
		elapsed = float64(end-begin) / float64(clk.Frequency())
	}

	if err := allocator.Release(buf); err != nil {
		return elapsed, fmt.Errorf("failed to release %vB using %v: %w", size, allocator.Name, err)
	}

	return elapsed, nil
}
