package rules

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownRuleset is returned by Builtin for names that are not registered.
var ErrUnknownRuleset = errors.New("unknown ruleset")

// DefaultRuleset is the name of the table used when none is configured.
const DefaultRuleset = "ephys"

// Label patterns shared by the built-in tables.
const (
	subjectPattern = `sub-([a-zA-Z0-9]+)`
	sessionPattern = `ses-([a-zA-Z0-9]+)`
	entityPattern  = `([\w\-]*)`
)

// ephysDataExtensions are the container formats accepted for raw recordings.
var ephysDataExtensions = []string{`\.nix`, `\.nwb`, `\.edf`, `\.bdf`, `\.mef`, `\.set`, `\.dat`}

var tabularExtensions = []string{`\.tsv`, `\.json`}

// Ephys returns the four level table for microelectrode electrophysiology
// datasets: dataset root, subject, session and the ephys modality folder.
func Ephys() *Table {
	prefix := subjectPattern + "_" + sessionPattern + entityPattern

	root := RuleSet{
		AuthorizedFolders: PatternList{Simple(subjectPattern)},
		AuthorizedMetadataFiles: PatternList{
			Family("dataset_description", `\.json`),
			Family("participants", tabularExtensions...),
			Simple("README"),
			Simple("CHANGES"),
			Simple("LICENSE"),
		},
		MandatoryFiles: PatternList{
			Family("dataset_description", `\.json`),
			Family("participants", `\.tsv`),
		},
		MandatoryFolders: PatternList{Simple(subjectPattern)},
	}

	subject := RuleSet{
		AuthorizedFolders: PatternList{Simple(sessionPattern)},
		AuthorizedMetadataFiles: PatternList{
			Family(subjectPattern+"_sessions", tabularExtensions...),
		},
		MandatoryFolders: PatternList{Simple(sessionPattern)},
	}

	session := RuleSet{
		AuthorizedFolders: PatternList{Simple("ephys")},
		AuthorizedMetadataFiles: PatternList{
			Family(subjectPattern+"_"+sessionPattern+"_scans", tabularExtensions...),
		},
		MandatoryFolders: PatternList{Simple("ephys")},
	}

	modality := RuleSet{
		AuthorizedDataFiles: PatternList{
			Family(prefix+"_ephys", ephysDataExtensions...),
		},
		AuthorizedMetadataFiles: PatternList{
			Family(prefix+"_ephys", `\.json`),
			Family(prefix+"_channels", tabularExtensions...),
			Family(prefix+"_contacts", tabularExtensions...),
			Family(prefix+"_probes", tabularExtensions...),
			Family(prefix+"_runs", tabularExtensions...),
			Family(prefix+"_events", tabularExtensions...),
		},
		MandatoryFiles: PatternList{
			Family(prefix+"_ephys", ephysDataExtensions...),
			Family(prefix+"_channels", `\.tsv`),
			Family(prefix+"_contacts", `\.tsv`),
			Family(prefix+"_probes", `\.tsv`),
			Family(prefix+"_runs", `\.tsv`),
			Family(prefix+"_ephys", `\.json`),
		},
	}

	return NewTable(
		DefaultRuleset,
		"Animal electrophysiology datasets (dataset / subject / session / ephys)",
		root, subject, session, modality,
	)
}

var builtins = map[string]func() *Table{
	DefaultRuleset: Ephys,
}

// Builtin returns a registered table by name.
func Builtin(name string) (*Table, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownRuleset, name, BuiltinNames())
	}
	return ctor(), nil
}

// BuiltinNames returns the registered table names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
