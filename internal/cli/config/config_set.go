package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andotools/andocheck/internal/cli/shared"
	cfgpkg "github.com/andotools/andocheck/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the local or user config.

By default, sets the value in the local config (.andocheck.yml, or --config).
Use --user to set it in ~/.andocheck/config.yml.

The value is validated against the expected type before the file is
rewritten.`,
	Example: `  # Always exit 1 for invalid datasets
  andocheck config set strict_exit true

  # Validate with whole-name matching everywhere
  andocheck config set anchored true --user

  # Slow down watch mode
  andocheck config set debounce 2s`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConfigSet,
}

func init() {
	configSetCmd.Flags().Bool("user", false, "Set in user-level config")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if _, err := cfgpkg.GetKeySchema(key); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", formatUnknownKeyError(key))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	filePath, scope, err := targetPath(cmd)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return shared.NewExitError(shared.ExitIOError)
	}
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		fmt.Fprintf(errOut, "Error: only YAML config files can be edited: %s\n", filePath)
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		fmt.Fprintf(errOut, "Error: setting config value: %v\n", err)
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	fmt.Fprintf(out, "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func formatUnknownKeyError(key string) error {
	return fmt.Errorf("unknown configuration key: %q\n\nValid keys:\n  %s",
		key, strings.Join(cfgpkg.SortedKeys(), "\n  "))
}
