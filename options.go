package cfile_go

import (
	"fmt"
	"log/slog"

	"cfile-go/stream"
)

type Options struct {
	// 打开流时使用的配置项
	Stream stream.Options

	// 日志，为 nil 时使用 slog.Default()，Stream.Logger 为空时也使用它
	Logger *slog.Logger

	// Handle 被回收时如果仍然持有流，记录日志并关闭流
	LeakCheck bool
}

var DefaultOptions = Options{
	Stream:    stream.DefaultOptions,
	LeakCheck: true,
}

func checkOptions(options Options) error {
	if err := stream.CheckOptions(options.Stream); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// streamOptions 打开流实际使用的配置项
func (o Options) streamOptions() stream.Options {
	opts := o.Stream
	if opts.Logger == nil {
		opts.Logger = o.Logger
	}
	return opts
}
