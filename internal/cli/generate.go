package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andotools/andocheck/internal/generate"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <metadata.csv> <output-dir>",
	Short: "Generate a dataset skeleton from a metadata sheet",
	Long: `Generate the folders and metadata files of a dataset from a CSV sheet
with one row per session.

The sheet needs subject_id and session_id columns; every other column
becomes a participant attribute in participants.tsv. Recording files are
not created. After generation the dataset is validated and the files still
missing are listed.`,
	Example: `  # Create a skeleton in ./my-dataset
  andocheck generate sessions.csv ./my-dataset

  # Regenerate metadata files, replacing existing ones
  andocheck generate --overwrite sessions.csv ./my-dataset`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerateCommand,
}

func init() {
	generateCmd.GroupID = GroupDataset
	generateCmd.Flags().Bool("overwrite", false, "Replace files that already exist")
	generateCmd.Flags().String("name", "", "Dataset name (defaults to the output folder name)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	csvPath, outDir := args[0], args[1]
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	name, _ := cmd.Flags().GetString("name")

	run, err := newValidateRun(cmd)
	if err != nil {
		return err
	}

	sheet, err := readSheet(csvPath)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return NewExitError(ExitInvalidArguments)
	}

	root, err := filepath.Abs(outDir)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return NewExitError(ExitInvalidArguments)
	}

	gen := generate.New(osfs.New("/"),
		generate.WithOverwrite(overwrite),
		generate.WithDatasetName(name),
		generate.WithLogger(run.logger))
	rep, err := gen.Generate(cmd.Context(), root, sheet)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return NewExitError(ExitIOError)
	}
	printGenerateReport(out, outDir, rep, run.verbose)

	result, err := run.validateOne(cmd.Context(), outDir)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return NewExitError(ExitIOError)
	}
	if result.Valid {
		fmt.Fprintf(out, "%s %s respects the specification\n", color.GreenString("✓"), outDir)
		return nil
	}
	fmt.Fprintf(out, "Still missing before %s respects the specification:\n", outDir)
	for _, msg := range result.Messages() {
		fmt.Fprintf(out, "  %s\n", msg)
	}
	return nil
}

func readSheet(path string) (*generate.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata sheet: %w", err)
	}
	defer f.Close()
	return generate.FromCSV(f)
}

func printGenerateReport(out io.Writer, root string, rep *generate.Report, verbose bool) {
	fmt.Fprintf(out, "Generated %s: %d created, %d overwritten, %d skipped\n",
		root, len(rep.Created), len(rep.Overwritten), len(rep.Skipped))
	if !verbose {
		return
	}
	for _, group := range []struct {
		label string
		paths []string
	}{
		{"created", rep.Created},
		{"overwritten", rep.Overwritten},
		{"skipped", rep.Skipped},
	} {
		for _, p := range group.paths {
			fmt.Fprintf(out, "  %-11s %s\n", group.label, p)
		}
	}
}
