package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/pojntfx/hugepage-latency/pkg/bench"
	"github.com/pojntfx/hugepage-latency/pkg/config"
	"github.com/pojntfx/hugepage-latency/pkg/mem"
	"github.com/pojntfx/hugepage-latency/pkg/offsets"
)

func main() {
	cfg := config.Default()
	if err := cfg.Load(os.Args[1:]); err != nil {
		panic(err)
	}

	options := mem.LargePageOptions{
		Strategy: mem.Strategy(cfg.LargePageStrategy),
		PageSize: cfg.HugePageSize,
		Dir:      cfg.HugetlbfsDir,
	}

	if err := mem.AcquireLargePages(options); err != nil {
		fmt.Println("failed to acquire large pages:", err)

		os.Exit(1)
	}

	granule, err := mem.LargePageSize(options)
	if err != nil {
		panic(err)
	}

	fmt.Printf("default page size: %vB\n", os.Getpagesize())
	fmt.Printf("large page size: %vB\n", granule)

	size := bench.RoundUpSize(cfg.Size, granule)

	fmt.Printf("test memory size: %vB\n", size)

	mode := offsets.Strided
	if cfg.UseRandomOffsets {
		mode = offsets.Random
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	offs := offsets.New(size/8, mode, os.Getpagesize(), rng)

	clk := bench.NewWallClock()
	if cfg.Clock == "tsc" {
		c, err := bench.NewTSCClock()
		if err != nil {
			panic(err)
		}

		clk = c
	}

	if cfg.Verbose {
		log.Printf("Sampling %v offsets in %v mode using the %v clock at %v ticks per second", len(offs), mode, clk.Name(), clk.Frequency())
	}

	runner := &bench.Runner{
		Size:    size,
		Samples: cfg.SampleNum,
		Passes:  cfg.SamplePassNum,

		Offsets: offs,

		LargePage: mem.LargePage(options),
		Heap:      mem.Heap(mem.HeapOptions{DisableTransparentHugePages: cfg.DisableTHP}),

		Clock: clk,

		Verbose: cfg.Verbose,
		Out:     os.Stdout,
	}

	results := runner.Run()

	bench.WriteReport(os.Stdout, results)

	if cfg.JSONOut != "" {
		f, err := os.Create(cfg.JSONOut)
		if err != nil {
			panic(err)
		}
		defer f.Close()

		if err := bench.WriteJSON(f, results); err != nil {
			panic(err)
		}
	}
}
