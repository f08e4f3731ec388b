package pointkit

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCodec is returned when a codec name is not recognized.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrEmptyInput is returned when a document or file list is empty.
	ErrEmptyInput = errors.New("empty input")
)

// DecodeError indicates that a document could not be decoded.
//
// Path is empty for in-memory input. The underlying error can be accessed
// via errors.Unwrap.
type DecodeError struct {
	Path  string
	cause error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %v", e.cause)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }
