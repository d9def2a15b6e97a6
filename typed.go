package cfile_go

import "cfile-go/stream"

// Fixed 可以按字节直接读写的定长类型
type Fixed = stream.Fixed

// ReadValues 按本机字节序读取 len(dst) 个元素，返回完整读取的元素个数
func ReadValues[T Fixed](h *Handle, dst []T) int {
	return stream.ReadValues(h.file(), dst)
}

// WriteValues 按本机字节序写入 src 中的元素，返回完整写入的元素个数
func WriteValues[T Fixed](h *Handle, src []T) int {
	return stream.WriteValues(h.file(), src)
}
