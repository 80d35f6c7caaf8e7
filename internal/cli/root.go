// Package cli provides Cobra-based CLI commands for andocheck, a structure
// validator for BIDS animal electrophysiology datasets. The root command
// validates the dataset folders given as arguments; subcommands generate
// dataset skeletons, list rule tables, show the validation history and
// manage configuration.
package cli

import (
	"fmt"

	"github.com/andotools/andocheck/internal/cli/config"
	"github.com/andotools/andocheck/internal/cli/shared"
	"github.com/andotools/andocheck/internal/cli/util"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupValidation    = shared.GroupValidation
	GroupDataset       = shared.GroupDataset
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "andocheck [flags] <path>...",
	Short: "Check BIDS animal electrophysiology dataset structure",
	Long: `andocheck checks that dataset folders follow the BIDS animal
electrophysiology layout: folder names, file names, mandatory files and
mandatory folders at every level of the tree.

For each folder it prints whether the folder respects the specification;
with --verbose every violation is listed.`,
	Example: `  # Validate a dataset
  andocheck ./my-dataset

  # List every violation
  andocheck -v ./my-dataset

  # Fail the build when a dataset is invalid
  andocheck --strict-exit ./a ./b

  # Whole-name matching and a table report
  andocheck validate --anchored --format table ./my-dataset`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runValidateCommand(cmd, args)
	},
}

// Execute runs the root command. Errors raised by flag and argument parsing
// are printed here; commands report their own failures.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.IsExitError(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupValidation, Title: "Validation:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupDataset, Title: "Datasets:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".andocheck.yml", "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "List every violation")
	rootCmd.PersistentFlags().Bool("strict-exit", false, "Exit with status 1 when a dataset is invalid")

	addValidateFlags(rootCmd)

	config.Register(rootCmd)
	util.Register(rootCmd)
}
