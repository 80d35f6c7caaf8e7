package rules

import (
	"fmt"
	"strings"
)

// Category identifies one of the rule lists of a RuleSet.
type Category string

// Rule categories, named after their rule file keys.
const (
	CategoryAuthorizedFolders  Category = "authorized_folders"
	CategoryAuthorizedData     Category = "authorized_data_files"
	CategoryAuthorizedMetadata Category = "authorized_metadata_files"
	CategoryMandatoryFiles     Category = "mandatory_files"
	CategoryMandatoryFolders   Category = "mandatory_folders"
)

// Categories lists every category in rule file order.
func Categories() []Category {
	return []Category{
		CategoryAuthorizedFolders,
		CategoryAuthorizedData,
		CategoryAuthorizedMetadata,
		CategoryMandatoryFiles,
		CategoryMandatoryFolders,
	}
}

// RuleSet holds the naming rules for the content of directories at one depth.
type RuleSet struct {
	AuthorizedFolders       PatternList `yaml:"authorized_folders" json:"authorized_folders"`
	AuthorizedDataFiles     PatternList `yaml:"authorized_data_files" json:"authorized_data_files"`
	AuthorizedMetadataFiles PatternList `yaml:"authorized_metadata_files" json:"authorized_metadata_files"`
	MandatoryFiles          PatternList `yaml:"mandatory_files" json:"mandatory_files"`
	MandatoryFolders        PatternList `yaml:"mandatory_folders" json:"mandatory_folders"`
}

// Patterns returns the rule list of the given category.
func (rs RuleSet) Patterns(c Category) []Pattern {
	switch c {
	case CategoryAuthorizedFolders:
		return rs.AuthorizedFolders
	case CategoryAuthorizedData:
		return rs.AuthorizedDataFiles
	case CategoryAuthorizedMetadata:
		return rs.AuthorizedMetadataFiles
	case CategoryMandatoryFiles:
		return rs.MandatoryFiles
	case CategoryMandatoryFolders:
		return rs.MandatoryFolders
	default:
		return nil
	}
}

func (rs RuleSet) clone() RuleSet {
	return RuleSet{
		AuthorizedFolders:       append(PatternList(nil), rs.AuthorizedFolders...),
		AuthorizedDataFiles:     append(PatternList(nil), rs.AuthorizedDataFiles...),
		AuthorizedMetadataFiles: append(PatternList(nil), rs.AuthorizedMetadataFiles...),
		MandatoryFiles:          append(PatternList(nil), rs.MandatoryFiles...),
		MandatoryFolders:        append(PatternList(nil), rs.MandatoryFolders...),
	}
}

// Table is an ordered list of rule sets indexed by depth below the dataset
// root. A Table is not modified after construction.
type Table struct {
	name        string
	description string
	levels      []RuleSet
}

// NewTable builds a table from rule sets ordered by depth.
func NewTable(name, description string, levels ...RuleSet) *Table {
	copied := make([]RuleSet, len(levels))
	for i, l := range levels {
		copied[i] = l.clone()
	}
	return &Table{name: name, description: description, levels: copied}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Description returns the human readable description of the table.
func (t *Table) Description() string { return t.description }

// Depth returns the number of levels, which is also the first invalid depth.
func (t *Table) Depth() int { return len(t.levels) }

// Level returns the rule set for depth d. The second result is false when d
// is outside the table.
func (t *Table) Level(d int) (RuleSet, bool) {
	if d < 0 || d >= len(t.levels) {
		return RuleSet{}, false
	}
	return t.levels[d].clone(), true
}

// Levels returns a copy of every rule set.
func (t *Table) Levels() []RuleSet {
	out := make([]RuleSet, len(t.levels))
	for i, l := range t.levels {
		out[i] = l.clone()
	}
	return out
}

// Check verifies the table is usable: at least one level, every pattern
// non-empty and every extension family carrying extensions.
func (t *Table) Check() error {
	if t.name == "" {
		return fmt.Errorf("%w: table has no name", ErrInvalidPattern)
	}
	if len(t.levels) == 0 {
		return fmt.Errorf("%w: table %s has no levels", ErrInvalidPattern, t.name)
	}

	var problems []string
	for depth, rs := range t.levels {
		for _, c := range Categories() {
			for i, p := range rs.Patterns(c) {
				if msg := checkPattern(p); msg != "" {
					problems = append(problems, fmt.Sprintf("level %d %s[%d]: %s", depth, c, i, msg))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w in table %s:\n  %s", ErrInvalidPattern, t.name, strings.Join(problems, "\n  "))
	}
	return nil
}

func checkPattern(p Pattern) string {
	switch v := p.(type) {
	case SimplePattern:
		if v.Base == "" {
			return "empty pattern"
		}
	case ExtensionFamily:
		if len(v.Bases) == 0 {
			return "extension family without base pattern"
		}
		if len(v.Extensions) == 0 {
			return "extension family without extensions"
		}
		for _, b := range v.Bases {
			if b == "" {
				return "empty base pattern"
			}
		}
	case nil:
		return "nil pattern"
	}
	return ""
}
