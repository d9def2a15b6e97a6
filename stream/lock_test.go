package stream

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Lock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tmp")
	f1, err := OpenWithOptions(path, "w", privateOptions())
	require.Nil(t, err)
	f2, err := OpenWithOptions(path, "r", privateOptions())
	require.Nil(t, err)
	defer f2.Close()

	// 没有加锁时 Unlock 什么都不做
	assert.Nil(t, f1.Unlock())

	assert.Nil(t, f1.Lock())
	ok, err := f2.TryLock()
	assert.Nil(t, err)
	assert.False(t, ok)

	assert.Nil(t, f1.Unlock())
	ok, err = f2.TryLock()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Nil(t, f2.Unlock())

	// 关闭流时释放锁
	ok, err = f1.TryLock()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Nil(t, f1.Close())
	ok, err = f2.TryLock()
	assert.Nil(t, err)
	assert.True(t, ok)

	_, err = f1.TryLock()
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, f1.Lock())
}
