package bench

import (
	"fmt"
	"io"
	"log"

	"github.com/pojntfx/hugepage-latency/pkg/mem"
)

type Runner struct {
	Size    int
	Samples int
	Passes  int

	// Offsets is built once and shared read-only by every trial of both
	// allocators.
	Offsets []uint64

	LargePage mem.Allocator
	Heap      mem.Allocator

	Clock Clock

	Verbose bool
	Out     io.Writer
}

type Series struct {
	Allocator string  `json:"allocator"`
	Seconds   float64 `json:"seconds"`
	Failures  int     `json:"failures"`
}

type Results struct {
	Size    int    `json:"size"`
	Samples int    `json:"samples"`
	Passes  int    `json:"passes"`
	Clock   string `json:"clock"`

	LargePage Series `json:"largePage"`
	Heap      Series `json:"heap"`
}

// RoundUpSize rounds size up to the next multiple of granule; a nonzero
// size below one granule becomes exactly one granule.
func RoundUpSize(size, granule int) int {
	if granule <= 0 {
		return size
	}

	return ((size + granule - 1) / granule) * granule
}

// Run takes all large page samples first, then all heap samples.
func (r *Runner) Run() *Results {
	if r.Out == nil {
		r.Out = io.Discard
	}

	results := &Results{
		Size:    r.Size,
		Samples: r.Samples,
		Passes:  r.Passes,
		Clock:   r.Clock.Name(),

		LargePage: Series{Allocator: r.LargePage.Name},
		Heap:      Series{Allocator: r.Heap.Name},
	}

	r.sample(r.LargePage, &results.LargePage)
	r.sample(r.Heap, &results.Heap)

	return results
}

func (r *Runner) sample(allocator mem.Allocator, series *Series) {
	for i := 0; i < r.Samples; i++ {
		elapsed, err := Walk(allocator, r.Offsets, r.Size, r.Passes, r.Clock)
		if err != nil {
			fmt.Fprintln(r.Out, err)

			series.Failures++
		}

		series.Seconds += elapsed

		if r.Verbose {
			log.Printf("Sampled %v pass(es) in %v seconds using %v (%v/%v)", r.Passes, elapsed, allocator.Name, i+1, r.Samples)
		}
	}
}
