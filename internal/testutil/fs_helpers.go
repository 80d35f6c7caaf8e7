// Package testutil provides test utilities and helpers for andocheck tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// DatasetRoot is the root used for in-memory dataset fixtures.
const DatasetRoot = "/dataset"

// Session identifies one subject/session pair of a fixture.
type Session struct {
	Subject string
	Session string
}

// datasetConfig holds configuration for ValidEphysFiles.
type datasetConfig struct {
	sessions []Session
	format   string
}

// DatasetOption is a functional option for dataset fixtures.
type DatasetOption func(*datasetConfig)

// WithSessions sets the subject/session pairs of the fixture.
func WithSessions(sessions ...Session) DatasetOption {
	return func(c *datasetConfig) {
		c.sessions = sessions
	}
}

// WithDataFormat sets the recording file extension, without the dot.
func WithDataFormat(ext string) DatasetOption {
	return func(c *datasetConfig) {
		c.format = ext
	}
}

// ValidEphysFiles returns the relative paths and contents of a dataset that
// satisfies the built-in ephys table. By default it has sub-01 with sessions
// ses-01 and ses-02, and sub-02 with ses-01.
func ValidEphysFiles(opts ...DatasetOption) map[string]string {
	cfg := &datasetConfig{
		sessions: []Session{{"01", "01"}, {"01", "02"}, {"02", "01"}},
		format:   "nix",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	files := map[string]string{
		"dataset_description.json": `{"Name": "fixture", "BIDSVersion": "1.9.0"}` + "\n",
		"participants.tsv":         "participant_id\tspecies\n",
		"participants.json":        "{}\n",
		"README":                   "fixture dataset\n",
	}

	for _, s := range cfg.sessions {
		sub := "sub-" + s.Subject
		ses := "ses-" + s.Session
		prefix := sub + "_" + ses

		files[filepath.Join(sub, sub+"_sessions.tsv")] = "session_id\n"

		dir := filepath.Join(sub, ses, "ephys")
		files[filepath.Join(dir, prefix+"_ephys."+cfg.format)] = ""
		files[filepath.Join(dir, prefix+"_ephys.json")] = "{}\n"
		files[filepath.Join(dir, prefix+"_channels.tsv")] = "channel_id\n"
		files[filepath.Join(dir, prefix+"_contacts.tsv")] = "contact_id\n"
		files[filepath.Join(dir, prefix+"_probes.tsv")] = "probe_id\n"
		files[filepath.Join(dir, prefix+"_runs.tsv")] = "run_id\n"
	}

	return files
}

// NewMemDataset writes files below root in a fresh in-memory filesystem.
func NewMemDataset(t *testing.T, root string, files map[string]string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	WriteTree(t, fs, root, files)
	return fs
}

// WriteTree writes files below root in fs, creating parent directories.
// Keys ending in "/" create empty directories.
func WriteTree(t *testing.T, fs billy.Filesystem, root string, files map[string]string) {
	t.Helper()

	if err := fs.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("failed to create root %s: %v", root, err)
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		full := fs.Join(root, p)
		if p[len(p)-1] == '/' {
			if err := fs.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", full, err)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", full, err)
		}
		if err := util.WriteFile(fs, full, []byte(files[p]), 0o644); err != nil {
			t.Fatalf("failed to write file %s: %v", full, err)
		}
	}
}

// CreateDiskDataset writes files below a new temporary directory and returns
// its path.
func CreateDiskDataset(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for p, content := range files {
		full := filepath.Join(root, p)
		if p[len(p)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", full, err)
			}
			continue
		}
		WriteFile(t, full, content)
	}
	return root
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// ReadMemFile reads a file of a billy filesystem, failing the test on error.
func ReadMemFile(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()

	content, err := util.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}
