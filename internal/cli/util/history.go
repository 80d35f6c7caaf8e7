package util

import (
	"fmt"
	"io"
	"strconv"

	"github.com/andotools/andocheck/internal/cli/shared"
	"github.com/andotools/andocheck/internal/config"
	"github.com/andotools/andocheck/internal/history"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent validation runs",
	Long: `View a log of validation runs with timestamp, dataset, rule table,
verdict, error count and duration. Entries are listed newest first.`,
	Example: `  # Show all recorded runs
  andocheck history

  # Show the last 10 runs
  andocheck history -n 10

  # Forget every run
  andocheck history --clear`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error loading config: %v\n", err)
			return shared.NewExitError(shared.ExitInvalidArguments)
		}
		return runHistoryWithStateDir(cmd, cfg.StateDir)
	},
}

func init() {
	historyCmd.GroupID = shared.GroupConfiguration
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().Bool("clear", false, "Clear all history")
}

// runHistoryWithStateDir runs the history command with a custom state directory.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	limit, _ := cmd.Flags().GetInt("limit")
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if limit < 0 {
		fmt.Fprintf(errOut, "Error: limit must be positive, got %d\n", limit)
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			fmt.Fprintf(errOut, "Error: clearing history: %v\n", err)
			return shared.NewExitError(shared.ExitIOError)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		fmt.Fprintf(errOut, "Error: loading history: %v\n", err)
		return shared.NewExitError(shared.ExitIOError)
	}

	entries := histFile.Recent(limit)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history available.")
		return nil
	}

	displayEntries(out, entries)
	return nil
}

// displayEntries renders history entries as a table.
func displayEntries(out io.Writer, entries []history.HistoryEntry) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Time", "ID", "Dataset", "Rules", "Result", "Errors", "Duration"})
	for _, entry := range entries {
		verdict := green("valid")
		if !entry.Valid {
			verdict = red("invalid")
		}
		tw.AppendRow(table.Row{
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			formatID(entry.ID),
			entry.Root,
			entry.Ruleset,
			verdict,
			strconv.Itoa(entry.ErrorCount),
			entry.Duration,
		})
	}
	tw.Render()
}

// formatID shortens a UUID to its first group, or "-" when missing.
func formatID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
