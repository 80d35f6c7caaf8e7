package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andotools/andocheck/internal/testutil"
)

const waitFor = 5 * time.Second

// startWatcher runs a watcher until the test ends. Run must return before
// the test completes since it logs through t.
func startWatcher(t *testing.T, root string, debounce time.Duration) <-chan struct{} {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	calls := make(chan struct{}, 16)
	onChange := func(context.Context) {
		select {
		case calls <- struct{}{}:
		default:
		}
	}
	w := New(root, onChange,
		WithDebounce(debounce),
		WithLogger(testutil.NewTestLogger(t)),
	)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	})
	return calls
}

func expectCall(t *testing.T, calls <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(waitFor):
		t.Fatalf("onChange was not called after %s", what)
	}
}

func TestWatcher_InitialRunAndChanges(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	calls := startWatcher(t, root, 20*time.Millisecond)
	expectCall(t, calls, "start")

	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644))
	expectCall(t, calls, "creating a file")

	sub := filepath.Join(root, "sub-01")
	require.NoError(t, os.Mkdir(sub, 0o755))
	expectCall(t, calls, "creating a directory")

	// Give the watcher time to add the new directory before writing into it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "sub-01_sessions.tsv"), []byte("x"), 0o644))
	expectCall(t, calls, "creating a file in a new directory")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	calls := startWatcher(t, root, 150*time.Millisecond)
	expectCall(t, calls, "start")

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0o644))
	}
	expectCall(t, calls, "a burst of writes")

	select {
	case <-calls:
		t.Fatal("burst of writes produced more than one call")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	w := New(root, func(context.Context) {})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	t.Parallel()

	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context) {})
	err := w.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_RootIsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := New(file, func(context.Context) {}).Run(context.Background())
	require.ErrorContains(t, err, "not a directory")
}
