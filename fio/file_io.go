package fio

import (
	"errors"
	"os"
	"syscall"
)

// FileIO 标准系统文件 IO
type FileIO struct {
	fd     *os.File // 系统文件描述符
	append bool     // 以 O_APPEND 打开，写入总是在文件末尾
}

// NewFileIOManager 初始化标准文件 IO
func NewFileIOManager(fileName string, flag int, perm uint32) (*FileIO, error) {
	fd, err := os.OpenFile(fileName, flag, os.FileMode(perm))
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd, append: flag&os.O_APPEND != 0}, nil
}

// NewFileIOFromFile 接管一个已经打开的 *os.File
func NewFileIOFromFile(fd *os.File, append bool) *FileIO {
	return &FileIO{fd: fd, append: append}
}

func (fio *FileIO) Read(b []byte, offset int64) (int, error) {
	n, err := fio.fd.ReadAt(b, offset)
	if err != nil && isNotSeekable(err) {
		// 管道、终端等不支持 pread，退化为顺序读取
		return fio.fd.Read(b)
	}
	return n, err
}

func (fio *FileIO) Write(b []byte, offset int64) (int, error) {
	if fio.append {
		return fio.fd.Write(b)
	}
	n, err := fio.fd.WriteAt(b, offset)
	if err != nil && isNotSeekable(err) {
		return fio.fd.Write(b)
	}
	return n, err
}

func (fio *FileIO) Sync() error {
	return fio.fd.Sync()
}

func (fio *FileIO) Close() error {
	return fio.fd.Close()
}

func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// isNotSeekable 判断错误是否因为设备不支持定位读写
func isNotSeekable(err error) bool {
	return errors.Is(err, syscall.ESPIPE)
}
