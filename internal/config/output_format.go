package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects how validation reports are rendered.
type OutputFormat string

// Valid output format values
const (
	// OutputFormatText prints the pass/fail message and, when verbose, every error.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON prints machine-readable results.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatTable prints errors as an aligned table.
	OutputFormatTable OutputFormat = "table"
)

var validOutputFormats = map[OutputFormat]bool{
	OutputFormatText:  true,
	OutputFormatJSON:  true,
	OutputFormatTable: true,
}

// ValidOutputFormatNames returns the valid format names for display.
func ValidOutputFormatNames() []string {
	return []string{"text", "json", "table"}
}

// ValidateOutputFormat validates that the given string is a valid output format.
func ValidateOutputFormat(format string) error {
	_, err := NormalizeOutputFormat(format)
	return err
}

// NormalizeOutputFormat normalizes and validates a format string, returning
// the canonical OutputFormat value. Returns OutputFormatText if empty.
func NormalizeOutputFormat(format string) (OutputFormat, error) {
	if format == "" {
		return OutputFormatText, nil
	}

	normalized := OutputFormat(strings.ToLower(strings.TrimSpace(format)))
	if !validOutputFormats[normalized] {
		return "", fmt.Errorf(
			"invalid format %q; valid options: %s",
			format,
			strings.Join(ValidOutputFormatNames(), ", "),
		)
	}
	return normalized, nil
}

// String implements fmt.Stringer for OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}
