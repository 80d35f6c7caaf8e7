// Package validation checks dataset trees against a compiled rule table and
// reports every naming and structure violation in one pass.
package validation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/andotools/andocheck/internal/rules"
)

// Option configures a Validator.
type Option func(*Validator)

// WithFilesystem validates trees of fs instead of the host filesystem. Roots
// are then interpreted as paths inside fs.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(v *Validator) {
		v.fs = fs
		v.hostFS = false
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithProgress registers a callback receiving the relative path of every
// visited directory.
func WithProgress(fn func(rel string)) Option {
	return func(v *Validator) {
		v.progress = fn
	}
}

// Validator walks dataset trees and applies the rules of a compiled table.
// A Validator holds no per-call state and may be shared.
type Validator struct {
	table    *rules.Compiled
	fs       billy.Filesystem
	hostFS   bool
	logger   *slog.Logger
	progress func(rel string)
}

// New creates a validator for the given table.
func New(table *rules.Compiled, opts ...Option) *Validator {
	v := &Validator{
		table:  table,
		fs:     osfs.New("/"),
		hostFS: true,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Table returns the compiled table used by the validator.
func (v *Validator) Table() *rules.Compiled {
	return v.table
}

// IsValid validates the tree rooted at root. Violations are collected in the
// result; the returned error is non-nil only when the tree could not be read
// or ctx was cancelled.
func (v *Validator) IsValid(ctx context.Context, root string) (*ValidationResult, error) {
	start := time.Now()

	absRoot, err := v.resolve(root)
	if err != nil {
		return nil, err
	}

	result := newResult()
	summary := &Summary{Root: absRoot, Ruleset: v.table.Table().Name()}
	result.Summary = summary

	w := &walker{fs: v.fs, root: absRoot}
	exists, isDir, err := w.rootState()
	if err != nil {
		return nil, err
	}

	switch {
	case !exists:
		result.AddError(&ValidationError{
			Kind:    KindMissingInput,
			Path:    absRoot,
			Message: fmt.Sprintf("input folder does not exist: %s", absRoot),
		})
	case !isDir:
		result.AddError(&ValidationError{
			Kind:    KindMissingInput,
			Path:    absRoot,
			Message: fmt.Sprintf("input folder is not a directory: %s", absRoot),
		})
	default:
		err := w.walk(ctx, func(n *node) error {
			if v.progress != nil {
				v.progress(n.Rel)
			}
			summary.Directories++
			summary.Files += len(n.Files)
			if n.Depth > summary.MaxDepth {
				summary.MaxDepth = n.Depth
			}
			v.check(n, result)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)
	v.logger.Debug("validation finished",
		"root", absRoot,
		"ruleset", summary.Ruleset,
		"directories", summary.Directories,
		"files", summary.Files,
		"errors", len(result.Errors),
		"duration", summary.Duration)

	return result, nil
}

func (v *Validator) resolve(root string) (string, error) {
	if !v.hostFS {
		return v.fs.Join("/", root), nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	return abs, nil
}

// check applies the rules of the node's depth.
func (v *Validator) check(n *node, result *ValidationResult) {
	v.logger.Debug("checking directory",
		"path", n.Path, "depth", n.Depth,
		"folders", len(n.Folders), "files", len(n.Files))

	if !v.table.HasLevel(n.Depth) {
		result.AddError(&ValidationError{
			Kind:    KindUnexpectedDepth,
			Path:    n.Path,
			Depth:   n.Depth,
			Message: fmt.Sprintf("unexpected folder level: %s", n.Path),
		})
		return
	}

	v.checkMandatory(n, rules.CategoryMandatoryFolders, n.Folders, KindMissingMandatoryFolder, "mandatory folder", result)

	for _, name := range n.Folders {
		if v.table.MatchAny(n.Depth, name, rules.CategoryAuthorizedFolders) {
			continue
		}
		full := v.fs.Join(n.Path, name)
		result.AddError(&ValidationError{
			Kind:    KindInvalidFolderName,
			Path:    n.Path,
			Name:    name,
			Depth:   n.Depth,
			Message: fmt.Sprintf("naming rule not respected for this directory: %s", full),
		})
	}

	for _, name := range n.Files {
		if v.table.MatchAny(n.Depth, name, rules.CategoryAuthorizedMetadata, rules.CategoryAuthorizedData) {
			continue
		}
		result.AddError(&ValidationError{
			Kind:    KindInvalidFileName,
			Path:    n.Path,
			Name:    name,
			Depth:   n.Depth,
			Message: fmt.Sprintf("naming rule not respected for this file: %s", name),
		})
	}

	v.checkMandatory(n, rules.CategoryMandatoryFiles, n.Files, KindMissingMandatoryFile, "mandatory file", result)
}

// checkMandatory records one error per rule of cat that none of names
// satisfies.
func (v *Validator) checkMandatory(n *node, cat rules.Category, names []string, kind ErrorKind, label string, result *ValidationResult) {
	patterns := v.table.Rules(n.Depth, cat)
	for i, ok := range v.table.Satisfied(n.Depth, cat, names) {
		if ok {
			continue
		}
		rule := patterns[i].String()
		result.AddError(&ValidationError{
			Kind:    kind,
			Path:    n.Path,
			Depth:   n.Depth,
			Rule:    rule,
			Message: fmt.Sprintf("%s not found for this rule: %s in %s", label, rule, n.Path),
		})
	}
}
