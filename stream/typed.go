package stream

import (
	"bytes"
	"encoding/binary"
)

// Fixed 可以按字节直接读写的定长类型
type Fixed interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// ReadValues 按本机字节序读取 len(dst) 个元素，返回完整读取的元素个数
func ReadValues[T Fixed](f *File, dst []T) int {
	if len(dst) == 0 {
		return 0
	}
	size := binary.Size(dst[0])
	buf := make([]byte, size*len(dst))
	n := f.ReadN(buf, size, len(dst))
	if n > 0 {
		_ = binary.Read(bytes.NewReader(buf[:n*size]), binary.NativeEndian, dst[:n])
	}
	return n
}

// WriteValues 按本机字节序写入 src 中的元素，返回完整写入的元素个数
func WriteValues[T Fixed](f *File, src []T) int {
	if len(src) == 0 {
		return 0
	}
	size := binary.Size(src[0])
	var buf bytes.Buffer
	buf.Grow(size * len(src))
	_ = binary.Write(&buf, binary.NativeEndian, src)
	return f.WriteN(buf.Bytes(), size, len(src))
}
