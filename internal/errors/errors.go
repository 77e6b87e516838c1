// Package errors provides a lightweight structured error type (RunnerError)
// for category-based classification and exit-code mapping in the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a checkrunner error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryConflict   ErrorCategory = "conflict"

	// External system integration errors
	CategoryGit    ErrorCategory = "git"
	CategoryAction ErrorCategory = "action"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// RunnerError is a structured error with category, exit status, and context
type RunnerError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	ExitCode int           `json:"exit_code"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for RunnerError
type ContextFields map[string]any

// Error implements the error interface
func (e *RunnerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *RunnerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *RunnerError) WithContext(key string, value any) *RunnerError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new RunnerError
func New(category ErrorCategory, severity ErrorSeverity, message string) *RunnerError {
	return &RunnerError{
		Category: category,
		Severity: severity,
		Message:  message,
		ExitCode: 1,
	}
}

// Wrap creates a new RunnerError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *RunnerError {
	return &RunnerError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
		ExitCode: 1,
	}
}

// ValidationError creates a new validation error (pre-flight, author must fix)
func ValidationError(message string) *RunnerError {
	return &RunnerError{
		Category: CategoryValidation,
		Severity: SeverityFatal,
		Message:  message,
		ExitCode: 1,
	}
}

// ConflictError creates a new target-conflict error
func ConflictError(message string) *RunnerError {
	return &RunnerError{
		Category: CategoryConflict,
		Severity: SeverityFatal,
		Message:  message,
		ExitCode: 1,
	}
}

// ActionError wraps a failed mandatory action, preserving its exit status.
func ActionError(err error, action string, exitCode int) *RunnerError {
	if exitCode == 0 {
		exitCode = 1
	}
	return &RunnerError{
		Category: CategoryAction,
		Severity: SeverityFatal,
		Message:  fmt.Sprintf("action %q failed", action),
		Cause:    err,
		ExitCode: exitCode,
	}
}
