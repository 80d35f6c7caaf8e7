package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andotools/andocheck/internal/cli/shared"
	cfgpkg "github.com/andotools/andocheck/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configCheckCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check configuration files for errors",
	Long: `Check configuration files for YAML syntax errors (reported with line and
column) and invalid values. Without arguments the user config and the local
config are checked; missing files are skipped.`,
	Example: `  # Check the user and local config files
  andocheck config check

  # Check a specific file
  andocheck config check ci/andocheck.yml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConfigCheck,
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	paths := args
	if len(paths) == 0 {
		if userPath, err := cfgpkg.UserConfigPath(); err == nil {
			paths = append(paths, userPath)
		}
		localPath, _ := cmd.Flags().GetString("config")
		if localPath == "" {
			localPath = cfgpkg.ProjectConfigPath()
		}
		paths = append(paths, localPath)
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	failed := 0
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "- %s (not found, skipped)\n", path)
			continue
		}
		if err := checkFile(path); err != nil {
			failed++
			fmt.Fprintf(errOut, "%s %v\n", red("✗"), err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", green("✓"), path)
	}

	if failed > 0 {
		return shared.NewExitError(shared.ExitInvalidArguments)
	}
	return nil
}

// checkFile validates path as it would be loaded as the local config.
func checkFile(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		if err := cfgpkg.ValidateYAMLSyntax(path); err != nil {
			return err
		}
	}
	cfg, err := cfgpkg.Load(path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return cfgpkg.ValidateConfigValues(cfg, path)
}
