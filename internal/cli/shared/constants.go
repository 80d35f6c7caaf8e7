// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"
)

// Command group IDs for organizing help output
const (
	GroupValidation    = "validation"
	GroupDataset       = "dataset"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess = 0
	// ExitValidationFailed is only used when strict exit is enabled.
	ExitValidationFailed = 1
	ExitIOError          = 2
	ExitInvalidArguments = 3
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code from an error.
// Errors that carry no code come from argument parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitInvalidArguments
}

// IsExitError reports whether err carries an exit code. Commands print their
// own message before returning one.
func IsExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}
