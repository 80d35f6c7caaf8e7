package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Display reports validation progress for one or more datasets. It is safe
// for concurrent use by the goroutines validating each dataset.
type Display struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
	total        int
	done         int
}

// NewDisplay creates a display writing to out, normally os.Stderr.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// Start begins a run over total datasets.
func (d *Display) Start(total int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.total = total
	d.done = 0
	if !d.capabilities.IsTTY {
		return
	}
	d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond)
	d.spinner.Writer = d.out
	d.spinner.Suffix = " Validating"
	d.spinner.Start()
}

// Visit reports the directory currently walked in root.
func (d *Display) Visit(root, rel string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner == nil {
		return
	}
	msg := buildVisitMessage(root, rel, d.done+1, d.total, d.capabilities.Width)
	d.spinner.Lock()
	d.spinner.Suffix = " " + msg
	d.spinner.Unlock()
}

// Finish records the outcome for root. With several datasets a completion
// line is printed for each one.
func (d *Display) Finish(root string, valid bool, errorCount int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.done++
	if d.total <= 1 {
		return
	}

	running := d.spinner != nil && d.spinner.Active()
	if running {
		d.spinner.Stop()
	}
	counter := formatCounter(d.done, d.total)
	if valid {
		fmt.Fprintf(d.out, "%s %s %s\n", checkmark(d.symbols, d.capabilities.SupportsColor), counter, root)
	} else {
		fmt.Fprintf(d.out, "%s %s %s (%d errors)\n", failureMark(d.symbols, d.capabilities.SupportsColor), counter, root, errorCount)
	}
	if running && d.done < d.total {
		d.spinner.Start()
	}
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
