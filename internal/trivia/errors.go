package trivia

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the service taxonomy. The HTTP boundary maps these
// to fixed status codes and never lets anything else leak through.
var (
	// ErrNotFound reports an empty result where content was expected, or a
	// missing referenced entity.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidArgument reports a missing or empty required field, such as a
	// blank search term.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StoreError wraps an underlying persistence failure. Callers surface it as a
// generic unprocessable condition.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
