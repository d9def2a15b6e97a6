package stream

import (
	"io"
)

// Pos 流位置，由 GetPos 获得，只能用于同一个流的 SetPos
type Pos struct {
	off int64
}

// Offset 位置对应的字节偏移
func (p Pos) Offset() int64 {
	return p.off
}

// Tell 获取当前的逻辑位置
func (f *File) Tell() (int64, error) {
	if f.closed {
		return -1, ErrClosed
	}
	return f.logicalOffset(), nil
}

// Seek 实现 io.Seeker，移动到新的位置
// 会先写入缓冲区中的数据，丢弃预读和回退的字符，并清除文件结束标志
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return -1, ErrClosed
	}
	if err := f.flushWrite(); err != nil {
		return -1, err
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = f.logicalOffset()
	case io.SeekEnd:
		size, err := f.dev.Size()
		if err != nil {
			return -1, err
		}
		base = size
	default:
		return -1, ErrInvalidWhence
	}
	target := base + offset
	if target < 0 {
		return -1, ErrNegativeOffset
	}

	f.rpos, f.rend = 0, 0
	f.ungot = f.ungot[:0]
	f.lastN = 0
	f.off = target
	f.eof = false
	return target, nil
}

// Rewind 回到流的开头，并清除错误标志
func (f *File) Rewind() {
	_, _ = f.Seek(0, io.SeekStart)
	f.ClearErr()
}

// GetPos 获取当前位置
func (f *File) GetPos() (Pos, error) {
	off, err := f.Tell()
	if err != nil {
		return Pos{}, err
	}
	return Pos{off: off}, nil
}

// SetPos 回到 GetPos 获取的位置
func (f *File) SetPos(pos Pos) error {
	_, err := f.Seek(pos.off, io.SeekStart)
	return err
}
