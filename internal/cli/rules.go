package cli

import (
	"fmt"

	"github.com/andotools/andocheck/internal/report"
	"github.com/andotools/andocheck/internal/rules"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active rule table",
	Long: `Show the rule table validation would use, level by level.

With --export the table is written as YAML in the rule file format, ready
to be edited and passed back with --rules.`,
	Example: `  # Show the built-in table
  andocheck rules

  # Start a custom table from the built-in one
  andocheck rules --export > lab-rules.yml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRulesCommand,
}

func init() {
	rulesCmd.GroupID = GroupValidation
	rulesCmd.Flags().Bool("export", false, "Write the table as YAML")
	rulesCmd.Flags().String("rules", "", "YAML or JSON rule table file")
	rulesCmd.Flags().String("ruleset", "", "Built-in rule table name")
	rulesCmd.Flags().Bool("anchored", false, "Require patterns to match whole names")
	rootCmd.AddCommand(rulesCmd)
}

func runRulesCommand(cmd *cobra.Command, _ []string) error {
	run, err := newValidateRun(cmd)
	if err != nil {
		return err
	}
	table := run.table.Table()

	export, _ := cmd.Flags().GetBool("export")
	if !export {
		report.RenderRules(run.out, table, run.table.Anchored())
		return nil
	}

	data, err := rules.Marshal(table)
	if err != nil {
		fmt.Fprintf(run.errOut, "Error: %v\n", err)
		return NewExitError(ExitIOError)
	}
	if _, err := run.out.Write(data); err != nil {
		return NewExitError(ExitIOError)
	}
	return nil
}
