package bench

import "time"

// Clock is a monotonic high-resolution counter with a known tick rate.
type Clock interface {
	// Start reads the counter at the entry of a timed region.
	Start() uint64
	// End reads the counter at the exit of a timed region.
	End() uint64
	// Frequency returns the counter's ticks per second.
	Frequency() uint64
	Name() string
}

type wallClock struct {
	base time.Time
}

func NewWallClock() Clock {
	return &wallClock{base: time.Now()}
}

func (c *wallClock) Start() uint64 {
	return uint64(time.Since(c.base))
}

func (c *wallClock) End() uint64 {
	return uint64(time.Since(c.base))
}

func (c *wallClock) Frequency() uint64 {
	return uint64(time.Second / time.Nanosecond)
}

func (c *wallClock) Name() string {
	return "wall"
}
