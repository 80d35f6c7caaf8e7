package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andotools/andocheck/internal/cli/shared"
	"github.com/andotools/andocheck/internal/config"
	"github.com/andotools/andocheck/internal/history"
	"github.com/andotools/andocheck/internal/progress"
	"github.com/andotools/andocheck/internal/report"
	"github.com/andotools/andocheck/internal/rules"
	"github.com/andotools/andocheck/internal/validation"
	"github.com/andotools/andocheck/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate dataset folders",
	Long: `Validate one or more dataset folders against a rule table.

Datasets are validated in parallel (see the concurrency setting) and reported
in argument order. Invalid datasets exit with status 0 unless --strict-exit
is given; unreadable datasets exit with status 2.`,
	Example: `  # Validate with the built-in ephys table
  andocheck validate ./my-dataset

  # JSON report for tooling
  andocheck validate --format json ./a ./b

  # Use a custom rule table
  andocheck validate --rules ./lab-rules.yml ./my-dataset

  # Re-validate whenever the dataset changes
  andocheck validate --watch ./my-dataset`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runValidateCommand,
}

func init() {
	validateCmd.GroupID = GroupValidation
	addValidateFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

// addValidateFlags declares the flags shared by the root command and validate.
func addValidateFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Report format: text, json or table")
	cmd.Flags().String("rules", "", "YAML or JSON rule table file")
	cmd.Flags().String("ruleset", "", "Built-in rule table name")
	cmd.Flags().Bool("anchored", false, "Require patterns to match whole names")
	cmd.Flags().BoolP("watch", "w", false, "Re-validate when the dataset changes")
}

// validateRun holds everything one invocation needs.
type validateRun struct {
	cfg      *config.Configuration
	table    *rules.Compiled
	logger   *slog.Logger
	verbose  bool
	out      io.Writer
	errOut   io.Writer
	display  *progress.Display
	recorder *history.Writer
	extra    []validation.Option // Appended to every validator, e.g. a filesystem
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	run, err := newValidateRun(cmd)
	if err != nil {
		return err
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if watching {
		if len(args) != 1 {
			fmt.Fprintln(run.errOut, "Error: --watch takes exactly one dataset path")
			return NewExitError(ExitInvalidArguments)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run.watch(ctx, args[0])
	}

	return run.execute(cmd.Context(), args)
}

// newValidateRun loads configuration and the rule table for cmd.
func newValidateRun(cmd *cobra.Command) (*validateRun, error) {
	errOut := cmd.ErrOrStderr()
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		fmt.Fprintf(errOut, "Error loading config: %v\n", err)
		return nil, NewExitError(ExitInvalidArguments)
	}
	logger := shared.NewLogger(errOut, cfg, debug)

	table, err := rules.Resolve(cfg.Ruleset, cfg.RulesFile)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		if errors.Is(err, rules.ErrUnknownRuleset) {
			fmt.Fprintf(errOut, "Available rule tables: %v\n", rules.BuiltinNames())
		}
		return nil, NewExitError(ExitInvalidArguments)
	}
	compiled, err := rules.Compile(table, rules.WithAnchored(cfg.Anchored))
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return nil, NewExitError(ExitInvalidArguments)
	}
	logger.Debug("rule table loaded", "name", table.Name(), "levels", table.Depth(), "anchored", cfg.Anchored)

	run := &validateRun{
		cfg:      cfg,
		table:    compiled,
		logger:   logger,
		verbose:  verbose,
		out:      cmd.OutOrStdout(),
		errOut:   errOut,
		recorder: history.NewWriter(cfg.StateDir, cfg.MaxHistory),
	}
	if cfg.ShowProgress {
		if caps := progress.DetectTerminalCapabilities(); caps.IsTTY {
			run.display = progress.NewDisplay(caps, errOut)
		}
	}
	return run, nil
}

// execute validates roots, prints the report and maps the outcome to an
// exit error.
func (r *validateRun) execute(ctx context.Context, roots []string) error {
	datasets, err := r.validateAll(ctx, roots)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return NewExitError(ExitIOError)
	}

	if err := report.Render(r.out, datasets, r.reportOptions()); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return NewExitError(ExitIOError)
	}
	r.record(datasets)

	for _, d := range datasets {
		if !d.Result.Valid && r.cfg.StrictExit {
			return NewExitError(ExitValidationFailed)
		}
	}
	return nil
}

// validateAll validates every root with at most cfg.Concurrency walks in
// flight. Results keep the order of roots.
func (r *validateRun) validateAll(ctx context.Context, roots []string) ([]report.Dataset, error) {
	if r.display != nil {
		r.display.Start(len(roots))
		defer r.display.Stop()
	}

	datasets := make([]report.Dataset, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			result, err := r.validateOne(ctx, root)
			if err != nil {
				return err
			}
			datasets[i] = report.Dataset{Root: root, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (r *validateRun) validateOne(ctx context.Context, root string) (*validation.ValidationResult, error) {
	opts := append([]validation.Option{validation.WithLogger(r.logger)}, r.extra...)
	if r.display != nil {
		opts = append(opts, validation.WithProgress(func(rel string) {
			r.display.Visit(root, rel)
		}))
	}

	result, err := validation.New(r.table, opts...).IsValid(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", root, err)
	}
	if r.display != nil {
		r.display.Finish(root, result.Valid, len(result.Errors))
	}
	return result, nil
}

func (r *validateRun) reportOptions() report.Options {
	return report.Options{Format: config.OutputFormat(r.cfg.Format), Verbose: r.verbose}
}

// record appends each run to the history. Failures are logged, never fatal.
func (r *validateRun) record(datasets []report.Dataset) {
	if !r.recorder.Enabled() {
		return
	}
	for _, d := range datasets {
		summary := d.Result.Summary
		start := time.Now().Add(-summary.Duration)
		id, err := r.recorder.Record(start, d.Root, summary.Ruleset, d.Result.Valid, len(d.Result.Errors), summary.Duration)
		if err != nil {
			r.logger.Warn("recording history failed", "root", d.Root, "error", err)
			continue
		}
		r.logger.Debug("history recorded", "id", id, "root", d.Root)
	}
}

// watch validates root now and after every burst of changes until ctx is
// cancelled. Unreadable trees are reported and watching continues.
func (r *validateRun) watch(ctx context.Context, root string) error {
	w := watch.New(root, func(ctx context.Context) {
		if err := r.execute(ctx, []string{root}); err != nil && ctx.Err() == nil {
			r.logger.Debug("validation run failed", "root", root, "code", ExitCode(err))
		}
		fmt.Fprintf(r.errOut, "Watching %s for changes (Ctrl+C to stop)\n", root)
	}, watch.WithDebounce(r.cfg.Debounce), watch.WithLogger(r.logger))

	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return NewExitError(ExitIOError)
	}
	return nil
}
