package stream

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadValues_WriteValues(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenWithOptions(filepath.Join(dir, "a.tmp"), "w+", privateOptions())
	require.Nil(t, err)
	defer f.Close()

	ints := []int32{1, -2, 3, 1 << 30}
	floats := []float64{0.5, -1.25}
	assert.Equal(t, 4, WriteValues(f, ints))
	assert.Equal(t, 2, WriteValues(f, floats))
	assert.Equal(t, 0, WriteValues(f, []int64{}))

	f.Rewind()
	gotInts := make([]int32, 4)
	assert.Equal(t, 4, ReadValues(f, gotInts))
	assert.Equal(t, ints, gotInts)
	gotFloats := make([]float64, 2)
	assert.Equal(t, 2, ReadValues(f, gotFloats))
	assert.Equal(t, floats, gotFloats)
	assert.Equal(t, 0, ReadValues(f, gotFloats))
	assert.True(t, f.EOF())
}

func TestReadValues_Partial(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenWithOptions(filepath.Join(dir, "a.tmp"), "w+", privateOptions())
	require.Nil(t, err)
	defer f.Close()

	// 3 个 uint16 共 6 字节，按 uint32 读只能得到 1 个完整元素
	assert.Equal(t, 3, WriteValues(f, []uint16{1, 2, 3}))
	f.Rewind()
	got := make([]uint32, 4)
	assert.Equal(t, 1, ReadValues(f, got))
	assert.Equal(t, uint32(0), got[1])
	assert.True(t, f.EOF())
}
