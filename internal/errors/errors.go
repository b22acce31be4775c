// Package errors defines the failure kinds planpick reports and small helpers
// for wrapping causes so callers can classify them with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrIO            = errors.New("io error")
	ErrNoFiles       = errors.New("no markdown files found")
	ErrSelector      = errors.New("selector error")
	ErrExecution     = errors.New("execution error")
)

// kindError ties a human-readable message to one of the sentinel kinds above
// and, optionally, to the underlying cause.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func newKind(kind, cause error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// Configuration reports an unusable setting such as an empty command template.
func Configuration(format string, args ...any) error {
	return newKind(ErrConfiguration, nil, format, args...)
}

// ConfigurationWithCause is Configuration with an underlying error attached.
func ConfigurationWithCause(cause error, format string, args ...any) error {
	return newKind(ErrConfiguration, cause, format, args...)
}

// IO reports a filesystem failure.
func IO(cause error, format string, args ...any) error {
	return newKind(ErrIO, cause, format, args...)
}

// NoFiles reports an empty candidate list.
func NoFiles(dir string) error {
	return newKind(ErrNoFiles, nil, "no markdown files found in %s", dir)
}

// Selector reports a picker that could not start or run.
func Selector(cause error, format string, args ...any) error {
	return newKind(ErrSelector, cause, format, args...)
}

// Execution reports a process that could not be started.
func Execution(cause error, format string, args ...any) error {
	return newKind(ErrExecution, cause, format, args...)
}

// NonZeroExitError is returned when the launched command ran but failed.
type NonZeroExitError struct {
	Command string
	// Status is the exit code, or -1 when the process was killed by a signal.
	Status int
	// State is the process state as reported by the OS, e.g. "signal: killed".
	State string
}

func (e *NonZeroExitError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("command %q exited: %s", e.Command, e.State)
	}
	return fmt.Sprintf("command %q exited with status: %d", e.Command, e.Status)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
