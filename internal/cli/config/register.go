// Package config provides CLI commands for andocheck configuration management.
// Includes: config show, config check, config init, config set
package config

import (
	"github.com/andotools/andocheck/internal/cli/shared"
	cfgpkg "github.com/andotools/andocheck/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit andocheck configuration",
	Long: `Inspect and edit andocheck configuration.

Configuration precedence (highest to lowest):
  1. Command line flags
  2. Environment variables (ANDOCHECK_*)
  3. Local config (.andocheck.yml, or --config)
  4. User config (~/.andocheck/config.yml)
  5. Built-in defaults`,
}

// Register adds all configuration commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(configCmd)
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}

// targetPath returns the file a write command operates on: the user config
// with --user, otherwise the local config named by --config.
func targetPath(cmd *cobra.Command) (path, scope string, err error) {
	useUser, _ := cmd.Flags().GetBool("user")
	if useUser {
		path, err := cfgpkg.UserConfigPath()
		if err != nil {
			return "", "", err
		}
		return path, "user", nil
	}
	path, _ = cmd.Flags().GetString("config")
	if path == "" {
		path = cfgpkg.ProjectConfigPath()
	}
	return path, "local", nil
}
