package stream

import (
	"os"
)

// 标准输入输出流，不登记在任何登记表中，CloseAll 不会关闭它们
// Stdout 为行缓冲，Stderr 无缓冲；进程退出前需要自行 Flush Stdout
var (
	Stdin  = mustStd(os.Stdin, "r", FullyBuffered)
	Stdout = mustStd(os.Stdout, "w", LineBuffered)
	Stderr = mustStd(os.Stderr, "w", Unbuffered)
)

func mustStd(fd *os.File, mode string, bufMode BufferMode) *File {
	options := DefaultOptions
	options.BufferMode = bufMode
	f, err := fdopen(fd, mode, options, nil)
	if err != nil {
		panic(err)
	}
	return f
}
