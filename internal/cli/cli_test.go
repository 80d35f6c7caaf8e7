package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at an empty directory so tests never read the user
// config or write the user history.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")
	return home
}

// newTestCmd builds a detached command with the root's persistent flags and
// fresh flag values. The local config defaults to a file that does not exist.
func newTestCmd(t *testing.T, runE func(*cobra.Command, []string) error, flags func(*cobra.Command), args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{Use: "andocheck", RunE: runE, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().StringP("config", "c", filepath.Join(t.TempDir(), ".andocheck.yml"), "")
	cmd.Flags().BoolP("debug", "d", false, "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().Bool("strict-exit", false, "")
	if flags != nil {
		flags(cmd)
	}

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	return cmd, &out, &errOut
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".andocheck.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
