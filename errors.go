package cfile_go

import "errors"

var (
	ErrUnlinked       = errors.New("handle is not linked to a stream")
	ErrInvalidOptions = errors.New("invalid handle options")
)
