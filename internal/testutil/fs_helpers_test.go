package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidEphysFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts      []DatasetOption
		wantFiles []string
	}{
		"default sessions": {
			wantFiles: []string{
				"dataset_description.json",
				"participants.tsv",
				filepath.Join("sub-01", "sub-01_sessions.tsv"),
				filepath.Join("sub-01", "ses-02", "ephys", "sub-01_ses-02_ephys.nix"),
				filepath.Join("sub-02", "ses-01", "ephys", "sub-02_ses-01_runs.tsv"),
			},
		},
		"custom session and format": {
			opts: []DatasetOption{WithSessions(Session{"rat1", "a"}), WithDataFormat("nwb")},
			wantFiles: []string{
				filepath.Join("sub-rat1", "ses-a", "ephys", "sub-rat1_ses-a_ephys.nwb"),
				filepath.Join("sub-rat1", "ses-a", "ephys", "sub-rat1_ses-a_ephys.json"),
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			files := ValidEphysFiles(tc.opts...)
			for _, want := range tc.wantFiles {
				if _, ok := files[want]; !ok {
					t.Errorf("fixture is missing %s", want)
				}
			}
		})
	}
}

func TestNewMemDataset(t *testing.T) {
	t.Parallel()

	fs := NewMemDataset(t, DatasetRoot, map[string]string{
		"a/b.txt": "hello",
		"empty/":  "",
	})

	if got := ReadMemFile(t, fs, "/dataset/a/b.txt"); got != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}

	info, err := fs.Stat("/dataset/empty")
	if err != nil {
		t.Fatalf("stat empty dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("empty/ should be a directory")
	}
}

func TestCreateDiskDataset(t *testing.T) {
	t.Parallel()

	root := CreateDiskDataset(t, map[string]string{
		"sub-01/notes.txt": "x",
		"sub-02/":          "",
	})

	if !FileExists(filepath.Join(root, "sub-01", "notes.txt")) {
		t.Error("file was not created")
	}
	if info, err := os.Stat(filepath.Join(root, "sub-02")); err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}
	if got := ReadFile(t, filepath.Join(root, "sub-01", "notes.txt")); got != "x" {
		t.Errorf("content = %q, want %q", got, "x")
	}
}
