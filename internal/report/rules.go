package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/andotools/andocheck/internal/rules"
)

// RenderRules lists every non-empty category of each level of t.
func RenderRules(w io.Writer, t *rules.Table, anchored bool) {
	fmt.Fprintf(w, "Rule table: %s\n", t.Name())
	if t.Description() != "" {
		fmt.Fprintln(w, t.Description())
	}
	mode := "substring"
	if anchored {
		mode = "anchored"
	}
	fmt.Fprintf(w, "Levels: %d, matching: %s\n", t.Depth(), mode)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Level", "Category", "Patterns"})
	for d, rs := range t.Levels() {
		for _, c := range rules.Categories() {
			patterns := rs.Patterns(c)
			if len(patterns) == 0 {
				continue
			}
			names := make([]string, len(patterns))
			for i, p := range patterns {
				names[i] = p.String()
			}
			tw.AppendRow(table.Row{d, string(c), strings.Join(names, "\n")})
		}
		tw.AppendSeparator()
	}
	tw.Render()
}
