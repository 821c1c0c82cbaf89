package bench

import (
	"fmt"
	"io"
	"math"
)

// Improvement returns how much faster the large page series was than
// the heap series as a percentage, truncated to two decimals. ok is
// false when no heap time was accumulated, which leaves the ratio
// undefined.
func Improvement(heapSeconds, largePageSeconds float64) (pct float64, ok bool) {
	if heapSeconds == 0 {
		return 0, false
	}

	return math.Floor(((heapSeconds-largePageSeconds)/heapSeconds)*10000) / 100, true
}

func (r *Results) HeapAvg() float64 {
	if r.Samples == 0 {
		return 0
	}

	return r.Heap.Seconds / float64(r.Samples)
}

func (r *Results) LargePageAvg() float64 {
	if r.Samples == 0 {
		return 0
	}

	return r.LargePage.Seconds / float64(r.Samples)
}

func WriteReport(w io.Writer, results *Results) {
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "heap time: %.6gs (avg: %.6gs)\n", results.Heap.Seconds, results.HeapAvg())
	fmt.Fprintf(w, "large page time: %.6gs (avg: %.6gs)\n", results.LargePage.Seconds, results.LargePageAvg())

	if pct, ok := Improvement(results.Heap.Seconds, results.LargePage.Seconds); ok {
		fmt.Fprintf(w, "(h - l) / h = %.6g%%\n", pct)
	} else {
		fmt.Fprintln(w, "(h - l) / h = undefined (no heap time was recorded)")
	}

	fmt.Fprintln(w, "\th: heap allocator")
	fmt.Fprintln(w, "\tl: large page allocator")
}
