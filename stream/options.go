package stream

import (
	"fmt"
	"log/slog"

	"cfile-go/fio"
)

const (
	// BufSize 默认缓冲区大小，SetBuf 要求的缓冲区长度
	BufSize = 8192

	// EOF 读取字符时表示“不是字符”的哨兵值
	EOF = -1
)

// BufferMode 流的缓冲方式
type BufferMode = int8

const (
	// FullyBuffered 全缓冲，缓冲区满或显式 Flush 时才写入设备
	FullyBuffered BufferMode = iota

	// LineBuffered 行缓冲，写入的数据包含换行符时刷新
	LineBuffered

	// Unbuffered 无缓冲，每次写入直接落到设备
	Unbuffered
)

type Options struct {
	// 缓冲方式
	BufferMode BufferMode

	// 缓冲区大小，无缓冲模式下忽略
	BufferSize int

	// 新建文件的权限
	Perm uint32

	// 打开的流登记在哪个登记表中，为 nil 时使用 DefaultRegistry
	Registry *Registry

	// 日志，为 nil 时使用 slog.Default()
	Logger *slog.Logger
}

var DefaultOptions = Options{
	BufferMode: FullyBuffered,
	BufferSize: BufSize,
	Perm:       fio.DataFilePerm,
}

// CheckOptions 校验配置项，非法时返回包装了 ErrInvalidOptions 的错误
func CheckOptions(options Options) error {
	switch options.BufferMode {
	case FullyBuffered, LineBuffered:
		if options.BufferSize <= 0 {
			return fmt.Errorf("%w: buffer size must be greater than 0", ErrInvalidOptions)
		}
	case Unbuffered:
	default:
		return fmt.Errorf("%w: unknown buffer mode %d", ErrInvalidOptions, options.BufferMode)
	}
	if options.Perm == 0 {
		return fmt.Errorf("%w: file perm is empty", ErrInvalidOptions)
	}
	return nil
}
