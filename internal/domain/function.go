package domain

import (
	"context"
	"errors"
	"fmt"
)

// Function is the interface every pluggable enumeration function implements.
// Name is the dispatch key; Description and Usage are informational only.
type Function interface {
	Name() string
	Description() string
	Usage() string
	Execute(ctx context.Context, args Args) ([]string, error)
}

// ErrNotImplemented marks a function path that is recognized but has no
// behavior behind it.
var ErrNotImplemented = errors.New("function not implemented")

// DomainError is a failure reported by a function's own logic (unreachable
// target, bad credentials, missing argument). Its message is shown verbatim.
type DomainError struct {
	Message string
	Err     error
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// Failure returns a DomainError with the given message.
func Failure(msg string) error {
	return &DomainError{Message: msg}
}

// Failuref formats a DomainError message. A %w verb keeps the cause reachable
// through errors.Unwrap.
func Failuref(format string, a ...any) error {
	wrapped := fmt.Errorf(format, a...)
	return &DomainError{Message: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}
