package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrDanglingKey indicates a key/value store ended after a key with no value.
	ErrDanglingKey = errors.New("format: key without value")
)
