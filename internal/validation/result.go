package validation

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind classifies a structural violation.
type ErrorKind string

// Violation kinds reported by the validator.
const (
	KindMissingInput           ErrorKind = "missing_input"
	KindUnexpectedDepth        ErrorKind = "unexpected_depth"
	KindMissingMandatoryFolder ErrorKind = "missing_mandatory_folder"
	KindInvalidFolderName      ErrorKind = "invalid_folder_name"
	KindInvalidFileName        ErrorKind = "invalid_file_name"
	KindMissingMandatoryFile   ErrorKind = "missing_mandatory_file"
)

// Kinds lists every violation kind in reporting order.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindMissingInput,
		KindUnexpectedDepth,
		KindMissingMandatoryFolder,
		KindInvalidFolderName,
		KindInvalidFileName,
		KindMissingMandatoryFile,
	}
}

// ValidationError represents a single violation found during the walk.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Path    string    `json:"path"`           // Directory the violation was found in
	Name    string    `json:"name,omitempty"` // Offending folder or file name
	Depth   int       `json:"depth"`          // Depth of Path below the dataset root
	Rule    string    `json:"rule,omitempty"` // Rule that was not satisfied
	Message string    `json:"message"`        // Human-readable description
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Hint returns a suggestion for fixing the violation.
func (e *ValidationError) Hint() string {
	switch e.Kind {
	case KindMissingInput:
		return "Check the dataset path"
	case KindUnexpectedDepth:
		return "Move the content up or remove the extra folder level"
	case KindMissingMandatoryFolder:
		return fmt.Sprintf("Create a folder matching %s", e.Rule)
	case KindInvalidFolderName:
		return "Rename the folder to match one of the authorized folder patterns"
	case KindInvalidFileName:
		return "Rename the file or remove it from this folder"
	case KindMissingMandatoryFile:
		return fmt.Sprintf("Add a file matching %s", e.Rule)
	default:
		return ""
	}
}

// FormatFull returns a detailed formatted error message.
func (e *ValidationError) FormatFull() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  Kind: %s\n", e.Kind))
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("  Path: %s\n", e.Path))
	}
	if e.Rule != "" {
		sb.WriteString(fmt.Sprintf("  Rule: %s\n", e.Rule))
	}
	sb.WriteString(fmt.Sprintf("  Error: %s\n", e.Message))
	if hint := e.Hint(); hint != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", hint))
	}

	return sb.String()
}

// Summary contains statistics about a validated tree.
type Summary struct {
	Root        string        `json:"root"`
	Ruleset     string        `json:"ruleset"`
	Directories int           `json:"directories"`
	Files       int           `json:"files"`
	MaxDepth    int           `json:"max_depth"`
	Duration    time.Duration `json:"duration"`
}

// ValidationResult is the outcome of validating one dataset tree. Errors are
// in walk order.
type ValidationResult struct {
	Valid   bool               `json:"valid"`
	Errors  []*ValidationError `json:"errors"`
	Summary *Summary           `json:"summary,omitempty"`
}

func newResult() *ValidationResult {
	return &ValidationResult{Valid: true, Errors: []*ValidationError{}}
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// AddError adds a validation error to the result.
func (r *ValidationResult) AddError(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Messages returns the error messages in walk order.
func (r *ValidationResult) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}

// CountByKind returns how many errors of each kind were recorded.
func (r *ValidationResult) CountByKind() map[ErrorKind]int {
	counts := make(map[ErrorKind]int)
	for _, e := range r.Errors {
		counts[e.Kind]++
	}
	return counts
}

// ErrorsOfKind returns the errors of one kind in walk order.
func (r *ValidationResult) ErrorsOfKind(kind ErrorKind) []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
