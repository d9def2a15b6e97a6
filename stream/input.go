package stream

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// readByte 读取一个字节，优先从回退栈中取
func (f *File) readByte() (byte, error) {
	if n := len(f.ungot); n > 0 {
		c := f.ungot[n-1]
		f.ungot = f.ungot[:n-1]
		return c, nil
	}
	if err := f.fill(); err != nil {
		return 0, err
	}
	c := f.buf[f.rpos]
	f.rpos++
	return c, nil
}

// pushBack 将 p 放回流中，之后按 p 原来的顺序读出
func (f *File) pushBack(p []byte) {
	for i := len(p) - 1; i >= 0; i-- {
		f.ungot = append(f.ungot, p[i])
	}
	f.eof = false
}

// prepareRead 读取前的检查，有待写入的数据时先写入设备
func (f *File) prepareRead() error {
	if err := f.usable(false); err != nil {
		return err
	}
	if f.wend > 0 {
		return f.flushWrite()
	}
	return nil
}

// Getc 读取一个字符，返回 0-255，文件结束或出错时返回 EOF
func (f *File) Getc() int {
	if err := f.prepareRead(); err != nil {
		return EOF
	}
	f.lastN = 0
	c, err := f.readByte()
	if err != nil {
		return EOF
	}
	return int(c)
}

// Ungetc 将字符 c 放回流中，成功时返回 c，c 为 EOF 时什么都不做并返回 EOF
// 成功放回会清除文件结束标志
func (f *File) Ungetc(c int) int {
	if c == EOF || f.closed {
		return EOF
	}
	if f.wend > 0 {
		if err := f.flushWrite(); err != nil {
			return EOF
		}
	}
	f.lastN = 0
	b := byte(c)
	f.pushBack([]byte{b})
	return int(b)
}

// Peek 读取一个字符再放回去
// 流已经结束时返回 EOF，此时无法区分“已到末尾”和“放回失败”
func (f *File) Peek() int {
	return f.Ungetc(f.Getc())
}

// Gets 读取至多 len(buf)-1 个字节到 buf 中，遇到换行符（包含在结果中）或文件结束时停止
// 读取的内容之后写入一个 0 字节，返回 buf[:n]；一个字节都没有读到或者出错时返回 nil
func (f *File) Gets(buf []byte) []byte {
	if len(buf) == 0 {
		return nil
	}
	if err := f.prepareRead(); err != nil {
		return nil
	}
	f.lastN = 0

	var n int
	for n < len(buf)-1 {
		c, err := f.readByte()
		if err != nil {
			if err != io.EOF || n == 0 {
				return nil
			}
			break
		}
		buf[n] = c
		n++
		if c == '\n' {
			break
		}
	}
	buf[n] = 0
	return buf[:n]
}

// Read 实现 io.Reader，和 fread 一样尽量读满 p
// 读到的字节数小于 len(p) 时返回文件结束或者出错的原因
func (f *File) Read(p []byte) (int, error) {
	if err := f.prepareRead(); err != nil {
		return 0, err
	}
	f.lastN = 0

	var n int
	for n < len(p) && len(f.ungot) > 0 {
		c, _ := f.readByte()
		p[n] = c
		n++
	}
	for n < len(p) {
		if f.rpos < f.rend {
			copied := copy(p[n:], f.buf[f.rpos:f.rend])
			f.rpos += copied
			n += copied
			continue
		}

		var err error
		if len(p)-n >= len(f.buf) {
			var m int
			m, err = f.readFrom(p[n:])
			n += m
		} else {
			err = f.fill()
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadN 读取 count 个大小为 size 的元素，返回完整读取的元素个数
// 返回值小于 count 时需要通过 EOF 和 Err 区分原因
func (f *File) ReadN(p []byte, size, count int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	if max := len(p) / size; count > max {
		count = max
	}
	n, _ := f.Read(p[:size*count])
	return n / size
}

// ReadRune 实现 io.RuneReader，按 UTF-8 解码一个字符
func (f *File) ReadRune() (rune, int, error) {
	if err := f.prepareRead(); err != nil {
		return 0, 0, err
	}
	f.lastN = 0

	c, err := f.readByte()
	if err != nil {
		return 0, 0, err
	}
	if c < utf8.RuneSelf {
		f.lastRune[0], f.lastN = c, 1
		return rune(c), 1, nil
	}

	var b [utf8.UTFMax]byte
	b[0] = c
	n := 1
	for n < utf8.UTFMax && !utf8.FullRune(b[:n]) {
		next, err := f.readByte()
		if err != nil {
			break
		}
		b[n] = next
		n++
	}
	r, size := utf8.DecodeRune(b[:n])
	if size < n {
		// 非法编码只消费一个字节，多读的部分放回去
		f.pushBack(b[size:n])
	}
	copy(f.lastRune[:], b[:size])
	f.lastN = size
	return r, size, nil
}

// UnreadRune 实现 io.RuneScanner，放回最近一次 ReadRune 读取的字符
func (f *File) UnreadRune() error {
	if f.lastN == 0 {
		return ErrInvalidUnreadRune
	}
	f.pushBack(f.lastRune[:f.lastN])
	f.lastN = 0
	return nil
}

// Scanf 按 format 从流中读取格式化输入，直接交给 fmt.Fscanf 处理
// format 和参数是否匹配由调用方负责
func (f *File) Scanf(format string, args ...any) (int, error) {
	return fmt.Fscanf(f, format, args...)
}
