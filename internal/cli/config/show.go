package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/andotools/andocheck/internal/cli/shared"
	cfgpkg "github.com/andotools/andocheck/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, config files,
environment variables and flags, with a description of every key.`,
	Example: `  # Table of keys, values and descriptions
  andocheck config show

  # Machine-readable output
  andocheck config show --json`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConfigShow,
}

func init() {
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(configPath, cmd.Flags())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error loading config: %v\n", err)
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}
	writeTable(cmd.OutOrStdout(), cfg)
	return nil
}

// effectiveValues returns every known key with its value rendered as text.
func effectiveValues(cfg *cfgpkg.Configuration) map[string]string {
	return map[string]string{
		"ruleset":       cfg.Ruleset,
		"rules_file":    cfg.RulesFile,
		"anchored":      strconv.FormatBool(cfg.Anchored),
		"format":        cfg.Format,
		"strict_exit":   strconv.FormatBool(cfg.StrictExit),
		"state_dir":     cfg.StateDir,
		"max_history":   strconv.Itoa(cfg.MaxHistory),
		"concurrency":   strconv.Itoa(cfg.Concurrency),
		"log_level":     cfg.LogLevel,
		"show_progress": strconv.FormatBool(cfg.ShowProgress),
		"debounce":      cfg.Debounce.String(),
	}
}

func writeTable(out io.Writer, cfg *cfgpkg.Configuration) {
	values := effectiveValues(cfg)

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Key", "Value", "Description"})
	for _, key := range cfgpkg.SortedKeys() {
		value := values[key]
		if value == "" {
			value = "-"
		}
		tw.AppendRow(table.Row{key, value, cfgpkg.KnownKeys[key].Description})
	}
	tw.Render()
}

func writeJSON(out io.Writer, cfg *cfgpkg.Configuration) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(effectiveValues(cfg)); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return nil
}
