package inflate

import (
	"fmt"
)

// CorruptInputError is returned when the stream being decompressed contains
// data that violates the compression format standard.
type CorruptInputError struct {
	// Kind classifies the problem.
	Kind ErrorKind

	// OffsetTotal is the number of input bytes consumed since the Reader
	// was created or last Reset.
	OffsetTotal uint64

	// OffsetStream is the number of input bytes consumed since the start
	// of the current stream (gzip member).
	OffsetStream uint64

	// Problem is a human-readable description of the problem.
	Problem string

	// Err is the underlying cause, if any.
	Err error
}

// Error fulfills the error interface.
func (err CorruptInputError) Error() string {
	return fmt.Sprintf("corrupt input at/near byte offset %d: %s: %s", err.OffsetStream, err.Kind.String(), err.Problem)
}

// Is returns true if target is this error's Kind.
func (err CorruptInputError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == err.Kind
}

// Unwrap returns the underlying cause, if any.
func (err CorruptInputError) Unwrap() error {
	return err.Err
}

var _ error = CorruptInputError{}
