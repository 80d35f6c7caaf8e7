// Package rules defines the per-depth naming rule tables used to validate
// dataset trees, and turns their declarative patterns into regular expressions.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPattern is returned when a rule cannot be parsed or compiled.
var ErrInvalidPattern = errors.New("invalid rule pattern")

// Pattern is a single naming rule. It is either a SimplePattern or an
// ExtensionFamily.
type Pattern interface {
	// Expand returns the concrete regular expressions described by the rule.
	Expand() []string
	// String renders the rule in its declarative list form.
	String() string

	isPattern()
}

// SimplePattern is a bare regular expression with no extension variants.
type SimplePattern struct {
	Base string
}

// Expand returns the base pattern unchanged.
func (p SimplePattern) Expand() []string {
	return []string{p.Base}
}

func (p SimplePattern) String() string {
	return "[" + p.Base + "]"
}

func (SimplePattern) isPattern() {}

// ExtensionFamily pairs one or more base patterns with the extension suffixes
// they may carry. Expansion concatenates base and suffix with no separator.
type ExtensionFamily struct {
	Bases      []string
	Extensions []string
}

// Expand returns every base followed by every extension, bases outermost.
func (p ExtensionFamily) Expand() []string {
	out := make([]string, 0, len(p.Bases)*len(p.Extensions))
	for _, base := range p.Bases {
		for _, ext := range p.Extensions {
			out = append(out, base+ext)
		}
	}
	return out
}

func (p ExtensionFamily) String() string {
	parts := append([]string{}, p.Bases...)
	parts = append(parts, "["+strings.Join(p.Extensions, ", ")+"]")
	return "[" + strings.Join(parts, ", ") + "]"
}

func (ExtensionFamily) isPattern() {}

// Simple returns a SimplePattern for base.
func Simple(base string) Pattern {
	return SimplePattern{Base: base}
}

// Family returns an ExtensionFamily for a single base.
func Family(base string, extensions ...string) Pattern {
	return ExtensionFamily{Bases: []string{base}, Extensions: extensions}
}

// BuildRuleRegexp expands a rule into its concrete regular expressions.
func BuildRuleRegexp(p Pattern) []string {
	if p == nil {
		return nil
	}
	return p.Expand()
}

// ExpandAll expands every rule in order and concatenates the results.
func ExpandAll(patterns []Pattern) []string {
	var out []string
	for _, p := range patterns {
		out = append(out, BuildRuleRegexp(p)...)
	}
	return out
}

// Search reports whether pattern matches anywhere within candidate.
func Search(pattern, candidate string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return re.MatchString(candidate), nil
}

// FromList builds a Pattern from the declarative list shape used in rule
// files: a string, a one-element list, or bases followed by an extension list.
func FromList(raw any) (Pattern, error) {
	switch v := raw.(type) {
	case string:
		return SimplePattern{Base: v}, nil
	case []any:
		return fromItems(v)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return fromItems(items)
	default:
		return nil, fmt.Errorf("%w: unsupported rule shape %T", ErrInvalidPattern, raw)
	}
}

func fromItems(items []any) (Pattern, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty rule", ErrInvalidPattern)
	}

	last := items[len(items)-1]
	exts, isList := toStrings(last)
	if !isList {
		if len(items) > 1 {
			return nil, fmt.Errorf("%w: rule with several bases must end with an extension list", ErrInvalidPattern)
		}
		base, ok := last.(string)
		if !ok {
			return nil, fmt.Errorf("%w: base pattern must be a string, got %T", ErrInvalidPattern, last)
		}
		return SimplePattern{Base: base}, nil
	}

	if len(items) == 1 {
		return nil, fmt.Errorf("%w: extension list without a base pattern", ErrInvalidPattern)
	}

	bases := make([]string, 0, len(items)-1)
	for _, item := range items[:len(items)-1] {
		base, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: base pattern must be a string, got %T", ErrInvalidPattern, item)
		}
		bases = append(bases, base)
	}

	return ExtensionFamily{Bases: bases, Extensions: exts}, nil
}

// toStrings converts a list value into strings. The second result is false
// when v is not a list at all.
func toStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// toList converts a Pattern back into its declarative shape.
func toList(p Pattern) any {
	switch v := p.(type) {
	case SimplePattern:
		return v.Base
	case ExtensionFamily:
		items := make([]any, 0, len(v.Bases)+1)
		for _, b := range v.Bases {
			items = append(items, b)
		}
		return append(items, v.Extensions)
	default:
		return nil
	}
}

// PatternList is an ordered list of rules that decodes from the declarative
// YAML or JSON shape.
type PatternList []Pattern

// UnmarshalYAML decodes a YAML sequence of rules.
func (l *PatternList) UnmarshalYAML(node *yaml.Node) error {
	var raw []any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidPattern, node.Line, err)
	}

	out := make(PatternList, 0, len(raw))
	for i, item := range raw {
		p, err := FromList(item)
		if err != nil {
			return fmt.Errorf("rule %d (line %d): %w", i, node.Line, err)
		}
		out = append(out, p)
	}
	*l = out
	return nil
}

// MarshalYAML encodes the list back into the declarative shape.
func (l PatternList) MarshalYAML() (any, error) {
	out := make([]any, 0, len(l))
	for _, p := range l {
		out = append(out, toList(p))
	}
	return out, nil
}
