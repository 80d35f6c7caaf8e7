package cli

import (
	"github.com/andotools/andocheck/internal/cli/shared"
)

// Exit codes for the andocheck CLI (re-exported from shared)
const (
	// ExitSuccess is also returned for invalid datasets unless strict exit is enabled
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates an invalid dataset with strict exit enabled
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitIOError indicates a dataset or output that could not be read or written
	ExitIOError = shared.ExitIOError

	// ExitInvalidArguments indicates invalid arguments, configuration or rule tables
	ExitInvalidArguments = shared.ExitInvalidArguments
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
