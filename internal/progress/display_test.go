package progress_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andotools/andocheck/internal/progress"
)

var plainCaps = progress.TerminalCapabilities{}

type finish struct {
	root   string
	valid  bool
	errors int
}

func TestDisplay_FinishLines(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		total    int
		finishes []finish
		want     []string
	}{
		"single dataset prints nothing": {
			total:    1,
			finishes: []finish{{root: "ds", valid: true}},
		},
		"several datasets print a mark each": {
			total:    2,
			finishes: []finish{{root: "a", valid: true}, {root: "b", valid: false, errors: 3}},
			want:     []string{"[OK] [1/2] a", "[FAIL] [2/2] b (3 errors)"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			d := progress.NewDisplay(plainCaps, &buf)
			d.Start(tt.total)
			for _, f := range tt.finishes {
				d.Visit(f.root, "sub-01")
				d.Finish(f.root, f.valid, f.errors)
			}
			d.Stop()

			out := buf.String()
			if len(tt.want) == 0 {
				assert.Empty(t, out)
				return
			}
			lines := strings.Split(strings.TrimSpace(out), "\n")
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestDisplay_NonTTYHasNoSpinnerOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := progress.NewDisplay(plainCaps, &buf)
	d.Start(1)
	d.Visit("ds", "sub-01/ses-01")
	d.Stop()

	assert.Empty(t, buf.String())
}

func TestDisplay_ConcurrentUse(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := progress.NewDisplay(plainCaps, &buf)
	d.Start(8)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Visit("ds", ".")
			d.Finish("ds", true, 0)
		}()
	}
	wg.Wait()
	d.Stop()

	assert.Equal(t, 8, strings.Count(buf.String(), "[OK]"))
	assert.Contains(t, buf.String(), "[8/8]")
}

func TestDisplay_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	d := progress.NewDisplay(progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true}, &bytes.Buffer{})
	d.Start(1)
	d.Visit("ds", "sub-01")
	d.Stop()
	d.Stop()
}
