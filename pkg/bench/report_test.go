package bench

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImprovementMatchesTheKnownRatio(t *testing.T) {
	pct, ok := Improvement(10.0, 8.0)

	require.True(t, ok)
	assert.Equal(t, 20.0, pct)
}

func TestImprovementTruncatesInsteadOfRounding(t *testing.T) {
	pct, ok := Improvement(3.0, 2.0)

	require.True(t, ok)
	assert.Equal(t, 33.33, pct)
}

func TestImprovementCanBeNegative(t *testing.T) {
	pct, ok := Improvement(8.0, 10.0)

	require.True(t, ok)
	assert.Equal(t, -25.0, pct)
}

func TestImprovementIsUndefinedWithoutHeapTime(t *testing.T) {
	_, ok := Improvement(0, 5)

	assert.False(t, ok)
}

func TestWriteReport(t *testing.T) {
	out := &bytes.Buffer{}

	WriteReport(out, &Results{
		Size:    1 << 21,
		Samples: 2,
		Passes:  1,

		Heap:      Series{Allocator: "heap allocator", Seconds: 10},
		LargePage: Series{Allocator: "large page allocator", Seconds: 8},
	})

	report := out.String()

	assert.Contains(t, report, "heap time: 10s (avg: 5s)")
	assert.Contains(t, report, "large page time: 8s (avg: 4s)")
	assert.Contains(t, report, "(h - l) / h = 20%")
	assert.Contains(t, report, "\th: heap allocator")
	assert.Contains(t, report, "\tl: large page allocator")
}

func TestWriteReportHandlesRunsWithoutHeapTime(t *testing.T) {
	out := &bytes.Buffer{}

	WriteReport(out, &Results{Samples: 2})

	assert.Contains(t, out.String(), "(h - l) / h = undefined")
}
