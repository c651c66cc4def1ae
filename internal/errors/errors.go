package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors, one per failure class. Every error surfaced by ricat wraps
// exactly one of them so that ExitCode can classify it.
var (
	// ErrIO is used for file open/read, write and terminal failures.
	ErrIO = errors.New("io error")
	// ErrPattern is used for a search pattern which does not compile.
	ErrPattern = errors.New("invalid search pattern")
	// ErrDecode is used for a line which is not valid Base64 text.
	ErrDecode = errors.New("malformed base64 input")
	// ErrConfigConflict is used when mutually exclusive features are enabled.
	ErrConfigConflict = errors.New("conflicting features")
	// ErrUsage is used for command line misuse.
	ErrUsage = errors.New("usage error")
	// ErrInvalidConfig is used for an unreadable or malformed profile.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUserQuit signals that the operator left the pager. Not a failure.
	ErrUserQuit = errors.New("user quit")
)

// Exit codes of the ricat command.
const (
	ExitOK             = 0
	ExitIO             = 1
	ExitUsage          = 2
	ExitPattern        = 3
	ExitDecode         = 4
	ExitConfigConflict = 5
	ExitInvalidConfig  = 6
	ExitInterrupted    = 130 // A signal stopped the run
)

// Error wrapping functions

// Wrap wraps an error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Classify attaches a failure class to a cause. The result matches both the
// class sentinel and the cause with Is.
func Classify(class, cause error) error {
	if cause == nil {
		return nil
	}
	return &classified{class: class, cause: cause}
}

type classified struct {
	class error
	cause error
}

func (c *classified) Error() string {
	return fmt.Sprintf("%s: %s", c.class, c.cause)
}

func (c *classified) Unwrap() []error {
	return []error{c.class, c.cause}
}

// New creates a new error with formatted message
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to extract a specific error type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the wrapped error
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrUserQuit):
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrPattern):
		return ExitPattern
	case errors.Is(err, ErrDecode):
		return ExitDecode
	case errors.Is(err, ErrConfigConflict):
		return ExitConfigConflict
	case errors.Is(err, ErrInvalidConfig):
		return ExitInvalidConfig
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitIO
	}
}

// Multi-error support for operations that can have multiple failures

// MultiError represents multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new MultiError
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the MultiError
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// HasErrors returns true if there are any errors
func (m *MultiError) HasErrors() bool {
	return len(m.errors) > 0
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return ""
	}
	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}
	return fmt.Sprintf("multiple errors occurred: %v", m.errors)
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.errors
}

// Errors returns all collected errors
func (m *MultiError) Errors() []error {
	return m.errors
}

// ErrorOrNil returns nil if no errors, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if m.HasErrors() {
		return m
	}
	return nil
}
