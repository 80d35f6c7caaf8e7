package util

import (
	"bytes"
	"testing"
	"time"

	"github.com/andotools/andocheck/internal/cli/shared"
	"github.com/andotools/andocheck/internal/history"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "history"}
	cmd.Flags().IntP("limit", "n", 0, "")
	cmd.Flags().Bool("clear", false, "")
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd
}

func seedHistory(t *testing.T, stateDir string) {
	t.Helper()
	w := history.NewWriter(stateDir, 100)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := w.Record(base, "/data/old", "ephys", true, 0, time.Millisecond)
	require.NoError(t, err)
	_, err = w.Record(base.Add(time.Hour), "/data/new", "ephys", false, 3, 2*time.Millisecond)
	require.NoError(t, err)
}

func TestRunHistory(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		seed        bool
		args        []string
		wantErrCode int
		contains    []string
		notContains []string
	}{
		"empty history": {
			contains: []string{"No history available."},
		},
		"all entries": {
			seed:     true,
			contains: []string{"/data/old", "/data/new", "invalid", "2026-03-01 13:00:00"},
		},
		"limit keeps newest": {
			seed:        true,
			args:        []string{"-n", "1"},
			contains:    []string{"/data/new"},
			notContains: []string{"/data/old"},
		},
		"negative limit": {
			args:        []string{"--limit", "-1"},
			wantErrCode: shared.ExitInvalidArguments,
			contains:    []string{"limit must be positive"},
		},
		"clear": {
			seed:     true,
			args:     []string{"--clear"},
			contains: []string{"History cleared."},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stateDir := t.TempDir()
			if tt.seed {
				seedHistory(t, stateDir)
			}

			var out bytes.Buffer
			cmd := newHistoryTestCmd(&out)
			require.NoError(t, cmd.ParseFlags(tt.args))

			err := runHistoryWithStateDir(cmd, stateDir)
			if tt.wantErrCode != 0 {
				assert.Equal(t, tt.wantErrCode, shared.ExitCode(err))
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestRunHistory_ClearRemovesEntries(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	seedHistory(t, stateDir)

	var out bytes.Buffer
	cmd := newHistoryTestCmd(&out)
	require.NoError(t, cmd.ParseFlags([]string{"--clear"}))
	require.NoError(t, runHistoryWithStateDir(cmd, stateDir))

	h, err := history.LoadHistory(stateDir)
	require.NoError(t, err)
	assert.Empty(t, h.Entries)
}

func TestFormatID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", formatID(""))
	assert.Equal(t, "0f8fad5b", formatID("0f8fad5b-d9cb-469f-a165-70867728950e"))
}
