package config

import (
	"fmt"
	"strings"
)

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"ruleset":       "ephys",
		"rules_file":    "",
		"anchored":      false,
		"format":        "text",
		"strict_exit":   false,
		"state_dir":     "~/.andocheck/state",
		"max_history":   500,
		"concurrency":   4,
		"log_level":     "warn",
		"show_progress": true,
		"debounce":      "300ms",
	}
}

// GetDefaultConfigTemplate returns a commented YAML configuration holding
// every known key at its default value.
func GetDefaultConfigTemplate() string {
	var b strings.Builder
	b.WriteString("# andocheck configuration\n")
	b.WriteString("# Precedence: flags > ANDOCHECK_* environment > .andocheck.yml > ~/.andocheck/config.yml\n")
	for _, key := range SortedKeys() {
		schema := KnownKeys[key]
		fmt.Fprintf(&b, "\n# %s\n", schema.Description)
		if len(schema.AllowedValues) > 0 {
			fmt.Fprintf(&b, "# One of: %s\n", strings.Join(schema.AllowedValues, ", "))
		}
		fmt.Fprintf(&b, "%s: %s\n", key, templateValue(schema.Default))
	}
	return b.String()
}

func templateValue(v interface{}) string {
	if s, ok := v.(string); ok {
		if s == "" {
			return `""`
		}
		return s
	}
	return fmt.Sprintf("%v", v)
}
