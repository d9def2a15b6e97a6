package stream

import "errors"

var (
	ErrInvalidMode       = errors.New("invalid open mode")
	ErrClosed            = errors.New("stream is already closed")
	ErrNotReadable       = errors.New("stream is not open for reading")
	ErrNotWritable       = errors.New("stream is not open for writing")
	ErrInvalidBuffer     = errors.New("invalid buffer or buffer size")
	ErrBufferInUse       = errors.New("cannot change buffer while input is buffered")
	ErrInvalidWhence     = errors.New("invalid whence")
	ErrNegativeOffset    = errors.New("negative stream position")
	ErrNoPath            = errors.New("stream has no path")
	ErrInvalidUnreadRune = errors.New("invalid use of UnreadRune")
	ErrInvalidOptions    = errors.New("invalid stream options")
)
