// Package report renders validation results for the terminal and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/andotools/andocheck/internal/config"
	"github.com/andotools/andocheck/internal/validation"
)

// Dataset pairs a validated root, as given by the user, with its result.
type Dataset struct {
	Root   string                       `json:"root"`
	Result *validation.ValidationResult `json:"result"`
}

// Options controls rendering.
type Options struct {
	Format  config.OutputFormat
	Verbose bool // List every error in text output
}

// Render writes the datasets in the requested format, in the given order.
func Render(w io.Writer, datasets []Dataset, opts Options) error {
	switch opts.Format {
	case config.OutputFormatJSON:
		return renderJSON(w, datasets)
	case config.OutputFormatTable:
		renderTable(w, datasets)
		return nil
	case config.OutputFormatText, "":
		for _, d := range datasets {
			renderText(w, d, opts.Verbose)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// StatusLine returns the one-line verdict for a dataset.
func StatusLine(root string, result *validation.ValidationResult) string {
	if result.Valid {
		return fmt.Sprintf("The folder %s respects the specification", root)
	}
	return fmt.Sprintf("The folder %s does not respect the specification", root)
}

func renderText(w io.Writer, d Dataset, verbose bool) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	line := StatusLine(d.Root, d.Result)
	if d.Result.Valid {
		fmt.Fprintln(w, green(line))
	} else {
		fmt.Fprintln(w, red(line))
	}

	if !verbose {
		return
	}
	for _, e := range d.Result.Errors {
		fmt.Fprintf(w, "  %s\n", e.Message)
	}
}

type jsonReport struct {
	Valid    bool      `json:"valid"`
	Datasets []Dataset `json:"datasets"`
}

func renderJSON(w io.Writer, datasets []Dataset) error {
	out := jsonReport{Valid: true, Datasets: datasets}
	for _, d := range datasets {
		if !d.Result.Valid {
			out.Valid = false
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderTable(w io.Writer, datasets []Dataset) {
	for _, d := range datasets {
		fmt.Fprintln(w, StatusLine(d.Root, d.Result))
		if !d.Result.HasErrors() {
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Kind", "Path", "Name", "Rule", "Message"})
		for i, e := range d.Result.Errors {
			t.AppendRow(table.Row{strconv.Itoa(i + 1), e.Kind, e.Path, e.Name, e.Rule, e.Message})
		}
		t.AppendFooter(table.Row{"", "", "", "", "errors", len(d.Result.Errors)})
		t.Render()
	}
}
