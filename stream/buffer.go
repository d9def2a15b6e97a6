package stream

import (
	"bytes"
	"fmt"
	"io"
)

// Flush 将缓冲区中待写入的数据写入设备
func (f *File) Flush() error {
	if f.closed {
		return ErrClosed
	}
	return f.flushWrite()
}

// SetBuf 设置流的缓冲区，buf 的长度在编译期就固定为 BufSize
// buf 为 nil 时流变为无缓冲
func (f *File) SetBuf(buf *[BufSize]byte) {
	if buf == nil {
		_ = f.SetVBuf(nil, Unbuffered, 0)
		return
	}
	_ = f.SetVBuf(buf[:], FullyBuffered, BufSize)
}

// SetVBuf 设置流的缓冲方式和缓冲区
// buf 为 nil 时由流自己分配 size 大小的缓冲区，否则直接使用调用方的 buf[:size]
// 调用方在流关闭或者更换缓冲区之前不能再使用 buf
func (f *File) SetVBuf(buf []byte, mode BufferMode, size int) error {
	if f.closed {
		return ErrClosed
	}
	switch mode {
	case FullyBuffered, LineBuffered:
		if size <= 0 || (buf != nil && len(buf) < size) {
			return fmt.Errorf("%w: size %d", ErrInvalidBuffer, size)
		}
	case Unbuffered:
	default:
		return fmt.Errorf("%w: unknown buffer mode %d", ErrInvalidBuffer, mode)
	}

	if err := f.flushWrite(); err != nil {
		return err
	}
	if f.rend > f.rpos {
		return ErrBufferInUse
	}
	f.rpos, f.rend = 0, 0

	f.bufMode = mode
	switch {
	case mode == Unbuffered:
		f.buf = f.short[:]
	case buf == nil:
		f.buf = make([]byte, size)
	default:
		f.buf = buf[:size]
	}
	return nil
}

// fill 从设备读取数据填充读窗口，读窗口中还有数据时不做任何事
func (f *File) fill() error {
	if f.rpos < f.rend {
		return nil
	}
	if f.wend > 0 {
		if err := f.flushWrite(); err != nil {
			return err
		}
	}
	// 文件结束标志是粘滞的，清除之前不再读取设备
	if f.eof {
		return io.EOF
	}

	f.rpos, f.rend = 0, 0
	n, err := f.dev.Read(f.buf, f.off)
	if n > 0 {
		f.off += int64(n)
		f.rend = n
	}
	if err != nil && err != io.EOF {
		return f.setErr(err)
	}
	if n == 0 {
		// 设备返回 0 字节但没有报错，也视为文件结束
		return f.setErr(io.EOF)
	}
	return nil
}

// readFrom 绕过缓冲区直接从设备读取，用于大块读取
func (f *File) readFrom(p []byte) (int, error) {
	if f.eof {
		return 0, io.EOF
	}
	n, err := f.dev.Read(p, f.off)
	f.off += int64(n)
	if err != nil && err != io.EOF {
		return n, f.setErr(err)
	}
	if n == 0 {
		return 0, f.setErr(io.EOF)
	}
	return n, nil
}

// flushWrite 将 buf[:wend] 写入设备
func (f *File) flushWrite() error {
	if f.wend == 0 {
		return nil
	}
	n, err := f.writeTo(f.buf[:f.wend])
	if n < f.wend {
		// 保留没有写出去的部分
		copy(f.buf, f.buf[n:f.wend])
	}
	f.wend -= n
	return err
}

// writeTo 绕过缓冲区直接写入设备，并推进设备偏移
func (f *File) writeTo(p []byte) (int, error) {
	n, err := f.dev.Write(p, f.off)
	if f.mode.append {
		// 追加写总是落在文件末尾，写完后偏移即为文件大小
		if size, sizeErr := f.dev.Size(); sizeErr == nil {
			f.off = size
		} else {
			f.off += int64(n)
		}
	} else {
		f.off += int64(n)
	}
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return n, f.setErr(err)
	}
	return n, nil
}

// discardRead 丢弃预读的数据和回退的字符，将设备偏移移回逻辑位置
func (f *File) discardRead() {
	if f.rend > f.rpos || len(f.ungot) > 0 {
		f.off = f.logicalOffset()
	}
	f.rpos, f.rend = 0, 0
	f.ungot = f.ungot[:0]
	f.lastN = 0
}

// logicalOffset 流的逻辑位置
func (f *File) logicalOffset() int64 {
	if f.wend > 0 {
		return f.off + int64(f.wend)
	}
	return f.off - int64(f.rend-f.rpos) - int64(len(f.ungot))
}

// bufferWrite 将 p 写入缓冲区，根据缓冲方式决定何时写入设备
func (f *File) bufferWrite(p []byte) (int, error) {
	if f.bufMode == Unbuffered {
		if err := f.flushWrite(); err != nil {
			return 0, err
		}
		return f.writeTo(p)
	}

	var written int
	for len(p) > 0 {
		// 缓冲区为空并且数据比缓冲区还大，直接写入设备
		if f.wend == 0 && len(p) >= len(f.buf) {
			n, err := f.writeTo(p)
			return written + n, err
		}
		n := copy(f.buf[f.wend:], p)
		f.wend += n
		written += n
		p = p[n:]
		if f.wend == len(f.buf) {
			if err := f.flushWrite(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// afterWrite 行缓冲的流在写入换行符后刷新
func (f *File) afterWrite(p []byte) error {
	if f.bufMode == LineBuffered && bytes.IndexByte(p, '\n') >= 0 {
		return f.flushWrite()
	}
	return nil
}
