package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocZeroed(t *testing.T) {
	a := New(64)
	buf := a.Alloc(8, 1)
	require.Len(t, buf, 8)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}

func TestAllocGrowsBlocks(t *testing.T) {
	a := New(16)
	first := a.Alloc(12, 1)
	second := a.Alloc(12, 1)
	require.Len(t, first, 12)
	require.Len(t, second, 12)
	assert.Equal(t, 2, len(a.blocks), "second alloc should not fit in the first block")
}

func TestAllocOverflowList(t *testing.T) {
	a := New(16)
	big := a.Alloc(64, 1)
	require.Len(t, big, 64)
	assert.Len(t, a.overflow, 1)
	assert.Equal(t, 1, len(a.blocks), "oversized request must not touch the block list")
}

func TestNonAliasing(t *testing.T) {
	a := New(128)
	bufs := make([][]byte, 0, 8)
	for i := 0; i < 8; i++ {
		bufs = append(bufs, a.Alloc(8, 1))
	}
	for i := range bufs {
		bufs[i][0] = byte(i + 1)
	}
	for i := range bufs {
		assert.Equal(t, byte(i+1), bufs[i][0], "allocation %d must not alias a neighbor", i)
	}
}

func TestResetInvalidatesHandles(t *testing.T) {
	a := New(256)
	h := Alloc(a, 42)
	v, ok := h.Get(a)
	require.True(t, ok)
	assert.Equal(t, 42, *v)

	a.Reset()

	_, ok = h.Get(a)
	assert.False(t, ok, "handle allocated before Reset must not validate afterward")

	h2 := Alloc(a, 7)
	v2, ok := h2.Get(a)
	require.True(t, ok)
	assert.Equal(t, 7, *v2)
}

func TestResetRetainsBlockCapacity(t *testing.T) {
	a := New(16)
	a.Alloc(12, 1)
	a.Alloc(12, 1)
	require.Equal(t, 2, len(a.blocks))
	a.Reset()
	assert.Equal(t, 2, len(a.blocks), "reset retains blocks for reuse")
	assert.Equal(t, 0, a.used[0])
}

func TestAlignmentRejectsNonPowerOfTwo(t *testing.T) {
	a := New(64)
	assert.Nil(t, a.Alloc(4, 3))
}

func TestTotalAllocatedAccumulates(t *testing.T) {
	a := New(64)
	a.Alloc(8, 1)
	a.Alloc(16, 1)
	assert.Equal(t, uint64(24), a.TotalAllocated())
	a.Reset()
	assert.Equal(t, uint64(24), a.TotalAllocated(), "TotalAllocated is a lifetime counter, not reduced by Reset")
}

func TestDestroy(t *testing.T) {
	a := New(64)
	a.Alloc(8, 1)
	a.Destroy()
	assert.Nil(t, a.Alloc(8, 1), "alloc after destroy must fail")
}
