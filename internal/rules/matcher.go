package rules

import (
	"fmt"
	"regexp"
)

// CompileOption configures Compile.
type CompileOption func(*compileOptions)

type compileOptions struct {
	anchored bool
}

// WithAnchored makes every pattern match the whole name instead of any
// substring of it.
func WithAnchored(anchored bool) CompileOption {
	return func(o *compileOptions) {
		o.anchored = anchored
	}
}

// compiledRule keeps the expanded expressions of one declarative rule.
type compiledRule struct {
	rule  Pattern
	exprs []*regexp.Regexp
}

type compiledLevel map[Category][]compiledRule

// Compiled is a Table whose patterns have been expanded and compiled once.
// It is safe for concurrent use.
type Compiled struct {
	table    *Table
	anchored bool
	levels   []compiledLevel
}

// Compile expands and compiles every pattern of the table.
func Compile(t *Table, opts ...CompileOption) (*Compiled, error) {
	if err := t.Check(); err != nil {
		return nil, err
	}

	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := &Compiled{
		table:    t,
		anchored: o.anchored,
		levels:   make([]compiledLevel, len(t.levels)),
	}

	for depth, rs := range t.levels {
		level := make(compiledLevel)
		for _, cat := range Categories() {
			for _, p := range rs.Patterns(cat) {
				cr := compiledRule{rule: p}
				for _, expr := range BuildRuleRegexp(p) {
					re, err := compilePattern(expr, o.anchored)
					if err != nil {
						return nil, fmt.Errorf("table %s level %d %s: %w", t.name, depth, cat, err)
					}
					cr.exprs = append(cr.exprs, re)
				}
				level[cat] = append(level[cat], cr)
			}
		}
		c.levels[depth] = level
	}

	return c, nil
}

// MustCompile is like Compile but panics on error. It is meant for built-in
// tables.
func MustCompile(t *Table, opts ...CompileOption) *Compiled {
	c, err := Compile(t, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func compilePattern(expr string, anchored bool) (*regexp.Regexp, error) {
	src := expr
	if anchored {
		src = "^(?:" + expr + ")$"
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, expr, err)
	}
	return re, nil
}

// Table returns the source table.
func (c *Compiled) Table() *Table { return c.table }

// Anchored reports whether patterns must match whole names.
func (c *Compiled) Anchored() bool { return c.anchored }

// Depth returns the number of levels of the source table.
func (c *Compiled) Depth() int { return len(c.levels) }

// HasLevel reports whether depth d has a rule set.
func (c *Compiled) HasLevel(d int) bool {
	return d >= 0 && d < len(c.levels)
}

// Rules returns the declarative rules of one category at depth d.
func (c *Compiled) Rules(d int, cat Category) []Pattern {
	if !c.HasLevel(d) {
		return nil
	}
	crs := c.levels[d][cat]
	out := make([]Pattern, len(crs))
	for i, cr := range crs {
		out[i] = cr.rule
	}
	return out
}

// MatchAny reports whether name matches any expression of the given
// categories at depth d. Categories without rules never match.
func (c *Compiled) MatchAny(d int, name string, cats ...Category) bool {
	if !c.HasLevel(d) {
		return false
	}
	for _, cat := range cats {
		for _, cr := range c.levels[d][cat] {
			if matchRule(cr, name) {
				return true
			}
		}
	}
	return false
}

// Satisfied reports, for each rule of the category at depth d, whether at
// least one of names matches it. The result is indexed like Rules(d, cat).
func (c *Compiled) Satisfied(d int, cat Category, names []string) []bool {
	if !c.HasLevel(d) {
		return nil
	}
	crs := c.levels[d][cat]
	out := make([]bool, len(crs))
	for i, cr := range crs {
		for _, name := range names {
			if matchRule(cr, name) {
				out[i] = true
				break
			}
		}
	}
	return out
}

func matchRule(cr compiledRule, name string) bool {
	for _, re := range cr.exprs {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
