package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidField is matched (via errors.Is) by every *FieldError.
var ErrInvalidField = errors.New("invalid field")

// ErrDuplicateKey is matched by a LineError for a record whose tax id or
// plate repeats an earlier line of the same file.
var ErrDuplicateKey = errors.New("duplicate key")

// FieldError reports a field whose text fails its syntax check.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Unwrap lets errors.Is(err, ErrInvalidField) succeed.
func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

// LineError reports a record line that could not be parsed.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
