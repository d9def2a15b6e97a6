package stream

import (
	"fmt"
)

// prepareWrite 写入前的检查，丢弃预读的数据
func (f *File) prepareWrite() error {
	if err := f.usable(true); err != nil {
		return err
	}
	f.discardRead()
	// 追加写总是落在文件末尾，逻辑位置从文件大小算起
	if f.mode.append && f.wend == 0 {
		size, err := f.dev.Size()
		if err != nil {
			return f.setErr(err)
		}
		f.off = size
	}
	return nil
}

// Write 实现 io.Writer，数据先写入缓冲区
func (f *File) Write(p []byte) (int, error) {
	if err := f.prepareWrite(); err != nil {
		return 0, err
	}
	n, err := f.bufferWrite(p)
	if err != nil {
		return n, err
	}
	return n, f.afterWrite(p)
}

// WriteString 实现 io.StringWriter
func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// WriteN 写入 count 个大小为 size 的元素，返回完整写入的元素个数
func (f *File) WriteN(p []byte, size, count int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	if max := len(p) / size; count > max {
		count = max
	}
	n, _ := f.Write(p[:size*count])
	return n / size
}

// Putc 写入一个字符，成功时返回写入的字符，失败时返回 EOF
func (f *File) Putc(c int) int {
	b := byte(c)
	if _, err := f.Write([]byte{b}); err != nil {
		return EOF
	}
	return int(b)
}

// Puts 写入字符串，不追加换行符
func (f *File) Puts(s string) (int, error) {
	return f.WriteString(s)
}

// Printf 按 format 写入格式化输出，直接交给 fmt.Fprintf 处理
func (f *File) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(f, format, args...)
}
