package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pojntfx/hugepage-latency/pkg/bench"
	"github.com/pojntfx/hugepage-latency/pkg/mem"
	"github.com/pojntfx/hugepage-latency/pkg/offsets"
)

func main() {
	size := flag.Int("size", 256*1024*1024, "Amount of bytes to walk")
	passes := flag.Int("passes", 1, "Walks over the full buffer")
	random := flag.Bool("random", false, "Use random instead of strided offsets")
	large := flag.Bool("large", false, "Use the large page allocator instead of the heap")
	strategy := flag.String("strategy", "hugetlb", "Large page strategy (hugetlb, hugetlbfs or thp)")
	seed := flag.Int64("seed", 1, "Offset array seed")

	flag.Parse()

	allocator := mem.Heap(mem.HeapOptions{})

	testSize := *size

	if *large {
		options := mem.LargePageOptions{Strategy: mem.Strategy(*strategy)}

		if err := mem.AcquireLargePages(options); err != nil {
			panic(err)
		}

		granule, err := mem.LargePageSize(options)
		if err != nil {
			panic(err)
		}

		testSize = bench.RoundUpSize(*size, granule)

		allocator = mem.LargePage(options)
	}

	mode := offsets.Strided
	if *random {
		mode = offsets.Random
	}

	offs := offsets.New(testSize/8, mode, os.Getpagesize(), rand.New(rand.NewSource(*seed)))

	elapsed, err := bench.Walk(allocator, offs, testSize, *passes, bench.NewWallClock())
	if err != nil {
		panic(err)
	}

	fmt.Println(elapsed)
}
