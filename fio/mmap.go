package fio

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// MMap IO，内存文件映射，只能用来读取
type MMap struct {
	readerAt *mmap.ReaderAt // 空文件不做映射，此时为 nil
}

// NewMMapIOManager 初始化 MMap IO
func NewMMapIOManager(fileName string) (*MMap, error) {
	stat, err := os.Stat(fileName)
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &MMap{}, nil
	}
	readerAt, err := mmap.Open(fileName)
	if err != nil {
		return nil, err
	}
	return &MMap{readerAt: readerAt}, nil
}

func (mmap *MMap) Read(b []byte, offset int64) (int, error) {
	if mmap.readerAt == nil {
		return 0, io.EOF
	}
	return mmap.readerAt.ReadAt(b, offset)
}

func (mmap *MMap) Write([]byte, int64) (int, error) {
	return 0, ErrReadOnly
}

func (mmap *MMap) Sync() error {
	return nil
}

func (mmap *MMap) Close() error {
	if mmap.readerAt == nil {
		return nil
	}
	return mmap.readerAt.Close()
}

func (mmap *MMap) Size() (int64, error) {
	if mmap.readerAt == nil {
		return 0, nil
	}
	return int64(mmap.readerAt.Len()), nil
}
