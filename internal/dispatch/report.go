package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"edd/internal/domain"
)

// Exit codes returned by Report.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// NotImplementedMessage is shown for functions that exist but do nothing yet.
const NotImplementedMessage = "[-] That command is not implemented, please try a different one."

// UsageError is a malformed command line: unknown flag, bad flag value,
// stray argument or unreadable config.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Report prints err as a single user-facing message and returns the process
// exit code. Nothing it prints is a stack trace.
func Report(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	var domainErr *domain.DomainError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(w, "edd: %s\n", usageErr.Error())
		fmt.Fprintln(w, "Try `edd --help' for more information.")
		return ExitUsage
	case errors.As(err, &domainErr):
		fmt.Fprintln(w, domainErr.Message)
		return ExitFailure
	case errors.Is(err, domain.ErrNotImplemented):
		fmt.Fprintln(w)
		fmt.Fprintln(w, NotImplementedMessage)
		return ExitFailure
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "[-] Interrupted")
		return ExitInterrupted
	default:
		fmt.Fprintf(w, "[-] %v\n", err)
		return ExitFailure
	}
}
