// Package errors defines the error taxonomy of changelog-gen.
//
// Every fatal condition is represented by one of three typed errors, each of
// which knows the process exit code it maps to. An empty selection is not an
// error: it is reported through ErrEmptySelection so callers can tell it apart
// from failures and still exit successfully.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidArguments  = 2
	ExitRepositoryAccess  = 3
	ExitRenderServiceFail = 4
)

// ExitCoder is implemented by errors that carry their own exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ErrEmptySelection marks the "nothing to render" terminal outcome.
var ErrEmptySelection = errors.New("no commits selected")

// InvalidArgumentError represents malformed command-line input.
type InvalidArgumentError struct {
	Argument string // flag or positional name, e.g. "--from-date"
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Message)
	}
	return "invalid argument: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *InvalidArgumentError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *InvalidArgumentError) ExitCode() int {
	return ExitInvalidArguments
}

// NewInvalidArgumentError creates a new InvalidArgumentError.
func NewInvalidArgumentError(argument, message string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Message: message}
}

// NewInvalidArgumentErrorWithCause creates a new InvalidArgumentError with an underlying cause.
func NewInvalidArgumentErrorWithCause(argument, message string, cause error) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Message: message, Cause: cause}
}

// RepositoryAccessError represents a failure to open, clone or read a repository.
type RepositoryAccessError struct {
	Location  string
	Operation string // e.g. "open", "clone", "log"
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *RepositoryAccessError) Error() string {
	msg := fmt.Sprintf("repository %s failed for %s: %s", e.Operation, e.Location, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *RepositoryAccessError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *RepositoryAccessError) ExitCode() int {
	return ExitRepositoryAccess
}

// NewRepositoryAccessError creates a new RepositoryAccessError.
func NewRepositoryAccessError(location, operation, message string, cause error) *RepositoryAccessError {
	return &RepositoryAccessError{
		Location:  location,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// RenderServiceError represents a text-generation failure (network, auth, quota).
type RenderServiceError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *RenderServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("render service %s failed (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	msg := fmt.Sprintf("render service %s failed: %s", e.Provider, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *RenderServiceError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *RenderServiceError) ExitCode() int {
	return ExitRenderServiceFail
}

// NewRenderServiceError creates a new RenderServiceError.
func NewRenderServiceError(provider, message string) *RenderServiceError {
	return &RenderServiceError{Provider: provider, Message: message}
}

// NewRenderServiceErrorWithStatus creates a new RenderServiceError with HTTP status code.
func NewRenderServiceErrorWithStatus(provider string, statusCode int, message string) *RenderServiceError {
	return &RenderServiceError{Provider: provider, StatusCode: statusCode, Message: message}
}

// NewRenderServiceErrorWithCause creates a new RenderServiceError with an underlying cause.
func NewRenderServiceErrorWithCause(provider, message string, cause error) *RenderServiceError {
	return &RenderServiceError{Provider: provider, Message: message, Cause: cause}
}

// IsInvalidArgument checks if an error or any error in its chain is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// IsRepositoryAccess checks if an error or any error in its chain is a RepositoryAccessError.
func IsRepositoryAccess(err error) bool {
	var target *RepositoryAccessError
	return errors.As(err, &target)
}

// IsRenderService checks if an error or any error in its chain is a RenderServiceError.
func IsRenderService(err error) bool {
	var target *RenderServiceError
	return errors.As(err, &target)
}

// IsEmptySelection reports whether err marks an empty selection.
func IsEmptySelection(err error) bool {
	return errors.Is(err, ErrEmptySelection)
}

// ExitCodeOf extracts an exit code from any error, defaulting to ExitFailure.
func ExitCodeOf(err error) int {
	if err == nil || IsEmptySelection(err) {
		return ExitSuccess
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

// Wrapf is re-exported from cockroachdb/errors so callers need a single import.
var Wrapf = errors.Wrapf
