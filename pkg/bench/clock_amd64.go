//go:build amd64

package bench

import (
	"errors"
	"runtime"
	"time"

	"github.com/dterei/gotsc"
)

type tscClock struct {
	overhead uint64
	freq     uint64
}

// NewTSCClock returns a Clock backed by serialized time stamp counter
// reads. It locks the calling goroutine to its OS thread so all reads
// come from the same core and calibrates the tick rate against the
// monotonic wall clock once.
func NewTSCClock() (Clock, error) {
	runtime.LockOSThread()

	overhead := gotsc.TSCOverhead()

	base := time.Now()

	begin := gotsc.BenchStart()
	for time.Since(base) < 50*time.Millisecond {
	}
	end := gotsc.BenchEnd()

	elapsed := time.Since(base)

	if end <= begin+overhead {
		return nil, errors.New("the time stamp counter did not advance")
	}

	freq := uint64(float64(end-begin-overhead) / elapsed.Seconds())
	if freq == 0 {
		return nil, errors.New("calibrated a zero tick rate")
	}

	return &tscClock{overhead: overhead, freq: freq}, nil
}

func (c *tscClock) Start() uint64 {
	return gotsc.BenchStart()
}

func (c *tscClock) End() uint64 {
	end := gotsc.BenchEnd()
	if end < c.overhead {
		return 0
	}

	return end - c.overhead
}

func (c *tscClock) Frequency() uint64 {
	return c.freq
}

func (c *tscClock) Name() string {
	return "tsc"
}
