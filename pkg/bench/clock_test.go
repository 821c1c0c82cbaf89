package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallClockMeasuresSleeps(t *testing.T) {
	clk := NewWallClock()

	begin := clk.Start()
	time.Sleep(10 * time.Millisecond)
	end := clk.End()

	require.Greater(t, end, begin)

	elapsed := float64(end-begin) / float64(clk.Frequency())

	assert.Greater(t, elapsed, 0.005)
	assert.Less(t, elapsed, 1.0)
}

func TestTSCClockMeasuresSleeps(t *testing.T) {
	clk, err := NewTSCClock()
	if err != nil {
		t.Skipf("time stamp counter unavailable: %v", err)
	}

	begin := clk.Start()
	time.Sleep(10 * time.Millisecond)
	end := clk.End()

	require.Greater(t, end, begin)

	elapsed := float64(end-begin) / float64(clk.Frequency())

	assert.Greater(t, elapsed, 0.005)
	assert.Less(t, elapsed, 1.0)
}
