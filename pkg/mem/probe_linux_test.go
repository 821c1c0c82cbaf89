//go:build linux

package mem

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHugePageInfo(t *testing.T) {
	info, err := ReadHugePageInfo()
	if err != nil {
		t.Skipf("could not read the huge page info: %v", err)
	}

	assert.Greater(t, info.DefaultSize, 0)
	assert.GreaterOrEqual(t, info.Total, info.Free)
}

func TestHugePagePoolsMatchMeminfo(t *testing.T) {
	info, err := ReadHugePageInfo()
	if err != nil {
		t.Skipf("could not read the huge page info: %v", err)
	}

	pool, err := HugePagePool(info.DefaultSize)
	if err != nil {
		t.Skipf("could not read the default pool: %v", err)
	}

	assert.Equal(t, info.Total, pool.Total)
	assert.Equal(t, info.Free, pool.Free)
}

func TestTransparentHugePageMode(t *testing.T) {
	mode, err := TransparentHugePageMode()
	if err != nil {
		t.Skipf("could not read the transparent huge page mode: %v", err)
	}

	assert.Contains(t, []string{"always", "madvise", "never"}, mode)
}

func TestTransparentHugePageSizeIsAPowerOfTwo(t *testing.T) {
	size, err := TransparentHugePageSize()
	if err != nil {
		t.Skipf("could not read the transparent huge page size: %v", err)
	}

	require.Greater(t, size, 0)
	assert.Equal(t, 1, bits.OnesCount64(uint64(size)))
}

func TestMemlockLimits(t *testing.T) {
	soft, hard, err := MemlockLimits()

	require.NoError(t, err)
	assert.LessOrEqual(t, soft, hard)
}
