// Package generate writes the skeleton of an ephys dataset, every folder and
// metadata file the built-in table expects, from a metadata sheet.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// BIDSVersion is written to dataset_description.json.
const BIDSVersion = "1.9.0"

// Tabular headers of the per-session metadata files.
var sessionTables = []struct {
	suffix string
	header []string
}{
	{"channels", []string{"channel_id", "contact_id", "type", "units", "sampling_frequency"}},
	{"contacts", []string{"contact_id", "probe_id", "impedance", "x", "y", "z"}},
	{"probes", []string{"probe_id", "type", "manufacturer"}},
	{"runs", []string{"run_id", "start_time", "end_time"}},
}

// Option configures a Generator.
type Option func(*Generator)

// WithOverwrite replaces files that already exist instead of keeping them.
func WithOverwrite(overwrite bool) Option {
	return func(g *Generator) {
		g.overwrite = overwrite
	}
}

// WithDatasetName sets the Name of dataset_description.json. The default is
// the base name of the output directory.
func WithDatasetName(name string) Option {
	return func(g *Generator) {
		g.name = name
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator writes dataset skeletons to a filesystem.
type Generator struct {
	fs        billy.Filesystem
	overwrite bool
	name      string
	logger    *slog.Logger
}

// Report lists what Generate did, as slash separated paths relative to the root.
type Report struct {
	Created     []string
	Overwritten []string
	Skipped     []string // Existing files left untouched
}

// New creates a generator writing to fs.
func New(fs billy.Filesystem, opts ...Option) *Generator {
	g := &Generator{
		fs:     fs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the skeleton for sheet below root. Recording files are not
// created. ctx is checked before each file.
func (g *Generator) Generate(ctx context.Context, root string, sheet *Sheet) (*Report, error) {
	if sheet == nil || len(sheet.Entries) == 0 {
		return nil, fmt.Errorf("%w: no sessions", ErrInvalidMetadata)
	}
	if info, err := g.fs.Stat(root); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("output %s is not a directory", root)
	}

	name := g.name
	if name == "" {
		name = path.Base(strings.ReplaceAll(root, "\\", "/"))
	}

	files, err := g.plan(name, sheet)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("generation interrupted: %w", err)
		}
		if err := g.write(root, f, report); err != nil {
			return report, err
		}
	}
	g.logger.Debug("dataset generated", "root", root,
		"created", len(report.Created), "overwritten", len(report.Overwritten), "skipped", len(report.Skipped))
	return report, nil
}

type plannedFile struct {
	rel  string
	data []byte
}

func (g *Generator) plan(name string, sheet *Sheet) ([]plannedFile, error) {
	description, err := jsonFile(map[string]string{
		"Name":        name,
		"BIDSVersion": BIDSVersion,
		"DatasetType": "raw",
	})
	if err != nil {
		return nil, err
	}

	participantsMeta := map[string]map[string]string{
		"participant_id": {"Description": "Unique participant identifier"},
	}
	for _, attr := range sheet.Attributes {
		participantsMeta[attr] = map[string]string{"Description": attr}
	}
	participantsJSON, err := jsonFile(participantsMeta)
	if err != nil {
		return nil, err
	}

	sidecar, err := jsonFile(map[string]string{
		"PowerLineFrequency": "n/a",
		"RecordingType":      "continuous",
	})
	if err != nil {
		return nil, err
	}

	files := []plannedFile{
		{rel: "dataset_description.json", data: description},
		{rel: "participants.tsv", data: participantsTSV(sheet)},
		{rel: "participants.json", data: participantsJSON},
		{rel: "README", data: []byte(name + "\n\nRecordings go in sub-<label>/ses-<label>/ephys/.\n")},
	}

	for _, subject := range sheet.Subjects() {
		sub := "sub-" + subject
		sessions := sheet.Sessions(subject)

		rows := [][]string{{"session_id"}}
		for _, s := range sessions {
			rows = append(rows, []string{"ses-" + s})
		}
		files = append(files, plannedFile{rel: path.Join(sub, sub+"_sessions.tsv"), data: tsv(rows)})

		for _, s := range sessions {
			ses := "ses-" + s
			dir := path.Join(sub, ses, "ephys")
			prefix := sub + "_" + ses
			for _, tbl := range sessionTables {
				files = append(files, plannedFile{
					rel:  path.Join(dir, prefix+"_"+tbl.suffix+".tsv"),
					data: tsv([][]string{tbl.header}),
				})
			}
			files = append(files, plannedFile{rel: path.Join(dir, prefix+"_ephys.json"), data: sidecar})
		}
	}
	return files, nil
}

func (g *Generator) write(root string, f plannedFile, report *Report) error {
	target := g.fs.Join(append([]string{root}, strings.Split(f.rel, "/")...)...)

	_, err := g.fs.Stat(target)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", target, err)
	}
	if exists && !g.overwrite {
		report.Skipped = append(report.Skipped, f.rel)
		return nil
	}

	if err := g.fs.MkdirAll(g.fs.Join(root, path.Dir(f.rel)), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.rel, err)
	}
	if err := util.WriteFile(g.fs, target, f.data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	if exists {
		report.Overwritten = append(report.Overwritten, f.rel)
	} else {
		report.Created = append(report.Created, f.rel)
	}
	return nil
}

func participantsTSV(sheet *Sheet) []byte {
	header := append([]string{"participant_id"}, sheet.Attributes...)
	rows := [][]string{header}
	for _, subject := range sheet.Subjects() {
		var attrs map[string]string
		for _, e := range sheet.Entries {
			if e.Subject == subject {
				attrs = e.Attributes
				break
			}
		}
		row := []string{"sub-" + subject}
		for _, a := range sheet.Attributes {
			v := attrs[a]
			if v == "" {
				v = "n/a"
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return tsv(rows)
}

// tsv joins rows with tabs. Tabs and newlines inside values are replaced by spaces.
func tsv(rows [][]string) []byte {
	var b strings.Builder
	clean := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(clean.Replace(v))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func jsonFile(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(data, '\n'), nil
}
