package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andotools/andocheck/internal/cli/shared"
	cfgpkg "github.com/andotools/andocheck/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default configuration",
	Long: `Write a configuration file holding every key at its default value, with
a comment describing each key.

By default the local config (.andocheck.yml) is written; use --user for
~/.andocheck/config.yml. Existing files are left unchanged unless --force.`,
	Example: `  # Create .andocheck.yml in the current directory
  andocheck config init

  # Create the user config
  andocheck config init --user

  # Overwrite an existing file with defaults
  andocheck config init --force`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("user", false, "Write the user config (~/.andocheck/config.yml)")
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	force, _ := cmd.Flags().GetBool("force")

	path, scope, err := targetPath(cmd)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return shared.NewExitError(shared.ExitIOError)
	}

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "%s %s config already exists: %s (use --force to overwrite)\n",
			color.YellowString("!"), scope, path)
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return shared.NewExitError(shared.ExitIOError)
	}

	if err := writeTemplate(path); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return shared.NewExitError(shared.ExitIOError)
	}
	fmt.Fprintf(out, "%s Created %s config: %s\n", color.GreenString("✓"), scope, path)
	return nil
}

func writeTemplate(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(cfgpkg.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
