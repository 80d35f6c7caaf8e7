package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Writer appends validation runs to the history file with automatic pruning.
// A Writer serializes its own writes; separate processes are not coordinated.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain. 0 disables history.
	MaxEntries int

	mu sync.Mutex
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
	}
}

// Enabled reports whether runs are recorded.
func (w *Writer) Enabled() bool {
	return w.MaxEntries > 0
}

// Record stores one validation run and returns its ID.
func (w *Writer) Record(start time.Time, root, ruleset string, valid bool, errorCount int, duration time.Duration) (string, error) {
	entry := HistoryEntry{
		ID:         uuid.NewString(),
		Timestamp:  start,
		Root:       root,
		Ruleset:    ruleset,
		Valid:      valid,
		ErrorCount: errorCount,
		Duration:   duration.String(),
	}
	if err := w.LogEntry(entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// LogEntry adds an entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed, and saves.
func (w *Writer) LogEntry(entry HistoryEntry) error {
	if !w.Enabled() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}
