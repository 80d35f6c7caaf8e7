package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// ErrUnreadable is returned when a directory of the tree cannot be listed.
// It is distinct from a tree that fails validation.
var ErrUnreadable = errors.New("unreadable directory")

// node is one visited directory with its immediate children.
type node struct {
	Path    string
	Rel     string
	Depth   int
	Folders []string
	Files   []string
}

// visitFunc is called for every directory in pre-order.
type visitFunc func(n *node) error

// walker lists directories of a billy filesystem depth first.
type walker struct {
	fs   billy.Filesystem
	root string
}

// segments counts the path elements of a cleaned slash path.
func segments(p string) int {
	p = strings.Trim(path.Clean("/"+toSlash(p)), "/")
	if p == "" {
		return 0
	}
	return strings.Count(p, "/") + 1
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// depthOf returns how many levels p is below root.
func depthOf(root, p string) int {
	return segments(p) - segments(root)
}

// rootState reports whether the root exists and is a directory.
func (w *walker) rootState() (exists, isDir bool, err error) {
	info, err := w.fs.Stat(w.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("%w: %s: %v", ErrUnreadable, w.root, err)
	}
	return true, info.IsDir(), nil
}

// walk visits the root and every directory below it, parents before
// children, siblings in lexical order. Symbolic links to directories are
// reported as folders but not followed.
func (w *walker) walk(ctx context.Context, visit visitFunc) error {
	return w.visitDir(ctx, w.root, visit)
}

func (w *walker) visitDir(ctx context.Context, dir string, visit visitFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("walk interrupted at %s: %w", dir, err)
	}

	n, descend, err := w.list(dir)
	if err != nil {
		return err
	}

	if err := visit(n); err != nil {
		return err
	}

	for _, name := range descend {
		if err := w.visitDir(ctx, w.fs.Join(dir, name), visit); err != nil {
			return err
		}
	}
	return nil
}

// list reads one directory. The second result holds the subfolders to
// descend into.
func (w *walker) list(dir string) (*node, []string, error) {
	infos, err := w.fs.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, dir, err)
	}

	n := &node{
		Path:  dir,
		Rel:   relPath(w.root, dir),
		Depth: depthOf(w.root, dir),
	}

	var descend []string
	for _, info := range infos {
		name := info.Name()
		switch {
		case info.IsDir():
			n.Folders = append(n.Folders, name)
			descend = append(descend, name)
		case info.Mode()&os.ModeSymlink != 0 && w.isDirLink(w.fs.Join(dir, name)):
			n.Folders = append(n.Folders, name)
		default:
			n.Files = append(n.Files, name)
		}
	}

	sort.Strings(n.Folders)
	sort.Strings(n.Files)
	sort.Strings(descend)

	return n, descend, nil
}

func (w *walker) isDirLink(p string) bool {
	info, err := w.fs.Stat(p)
	return err == nil && info.IsDir()
}

// relPath returns p relative to root using slash separators, "." for root.
func relPath(root, p string) string {
	r := strings.TrimPrefix(toSlash(path.Clean(toSlash(p))), toSlash(path.Clean(toSlash(root))))
	r = strings.Trim(r, "/")
	if r == "" {
		return "."
	}
	return r
}
