package progress

import (
	"fmt"
	"unicode/utf8"
)

// formatCounter returns the [N/Total] dataset counter string
func formatCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildVisitMessage describes the directory being walked. The counter is
// omitted for a single dataset.
func buildVisitMessage(root, rel string, done, total, width int) string {
	msg := "Validating " + root
	if rel != "" && rel != "." {
		msg += ": " + rel
	}
	if total > 1 {
		msg = formatCounter(done, total) + " " + msg
	}
	return truncate(msg, width-4)
}

// truncate shortens s to max runes, keeping the tail. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	runes := []rune(s)
	return "..." + string(runes[len(runes)-(max-3):])
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && symbols.Checkmark == "✓" {
		mark = "\033[32m" + mark + "\033[0m" // Green
	}
	return mark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && symbols.Failure == "✗" {
		mark = "\033[31m" + mark + "\033[0m" // Red
	}
	return mark
}
