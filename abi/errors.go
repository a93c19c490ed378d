package abi

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks across the codec error kinds.
var (
	ErrRange  = errors.New("value out of range")
	ErrFormat = errors.New("malformed value")
	ErrDecode = errors.New("malformed encoding")
)

// RangeError reports a numeric value outside its declared bit-width domain.
type RangeError struct {
	Param string
	Type  string
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("abi: %s (%s): %s", e.Param, e.Type, e.Msg)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// FormatError reports malformed input on the encode path: bad hex, a
// wrong-length address or bytes value, or a value whose kind does not match
// the declared type.
type FormatError struct {
	Param string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("abi: %s: %s", e.Param, e.Msg)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// DecodeError reports a malformed encoding on the decode path: a buffer
// underrun, an out-of-range offset or length, a schema/word-count mismatch,
// or invalid string content.
type DecodeError struct {
	Param string
	Msg   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("abi: decode %s: %s", e.Param, e.Msg)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// paramRef names a parameter for error reporting, falling back to its
// position when the schema carries no name.
func paramRef(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("arg %d", index)
}
