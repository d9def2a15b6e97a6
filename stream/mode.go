package stream

import (
	"fmt"
	"os"

	"cfile-go/fio"
)

// openMode fopen 风格的打开模式解析结果
type openMode struct {
	flag     int
	readable bool
	writable bool
	append   bool
	ioType   fio.FileIOType
}

// parseMode 解析 fopen 风格的模式字符串
//
//	r  只读            w  只写，截断或新建      a  追加，新建
//	+  读写            b t  忽略（POSIX 下文本和二进制没有区别）
//	x  独占创建（只能和 w、a 一起使用）
//	e  close-on-exec（Go 打开的文件总是如此）
//	m  只读时通过内存映射读取
//	,  之后的内容（如 ,ccs=UTF-8）忽略
func parseMode(mode string) (openMode, error) {
	var m openMode
	if mode == "" {
		return m, fmt.Errorf("%w: empty mode", ErrInvalidMode)
	}

	var create, trunc, excl, mmap bool
	switch mode[0] {
	case 'r':
		m.readable = true
	case 'w':
		m.writable, create, trunc = true, true, true
	case 'a':
		m.writable, create, m.append = true, true, true
	default:
		return m, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

loop:
	for i := 1; i < len(mode); i++ {
		switch mode[i] {
		case '+':
			m.readable, m.writable = true, true
		case 'b', 't', 'e':
		case 'x':
			if mode[0] == 'r' {
				return m, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
			}
			excl = true
		case 'm':
			mmap = true
		case ',':
			break loop
		default:
			return m, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
		}
	}

	switch {
	case m.readable && m.writable:
		m.flag = os.O_RDWR
	case m.writable:
		m.flag = os.O_WRONLY
	default:
		m.flag = os.O_RDONLY
	}
	if create {
		m.flag |= os.O_CREATE
	}
	if trunc {
		m.flag |= os.O_TRUNC
	}
	if excl {
		m.flag |= os.O_EXCL
	}
	if m.append {
		m.flag |= os.O_APPEND
	}

	// 内存映射只用于只读的流，可写时忽略
	m.ioType = fio.StandardFIO
	if mmap && !m.writable {
		m.ioType = fio.MemoryMap
	}
	return m, nil
}
