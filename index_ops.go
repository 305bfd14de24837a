package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/index"
	"github.com/spf13/afero"
)

// ReadIndex loads the repository's index file, returning a fresh,
// empty index when none has been written yet.
func (r *Repository) ReadIndex() (*index.Index, error) {
	f, err := r.fs().Open(ginternals.IndexPath(r.Config))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return index.New(), nil
		}
		return nil, fmt.Errorf("could not open index: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	idx, err := index.Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse index: %w", err)
	}
	return idx, nil
}

// WriteIndex persists idx to the repository's index file, replacing
// whatever was there before in full (spec §5's last-writer-wins policy).
func (r *Repository) WriteIndex(idx *index.Index) error {
	f, err := r.fs().Create(ginternals.IndexPath(r.Config))
	if err != nil {
		return fmt.Errorf("could not create index file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Write error takes priority below

	if err := index.Write(idx, f); err != nil {
		return fmt.Errorf("could not write index: %w", err)
	}
	return nil
}

// RmOptions controls Remove's behavior
type RmOptions struct {
	// DeleteFiles additionally removes the matched paths from the
	// worktree. When false, only the index entry is dropped (the
	// "rm --cached" case).
	DeleteFiles bool
	// SkipMissing tolerates paths that have no matching index entry
	// instead of failing.
	SkipMissing bool
}

// Remove unstages paths from idx, optionally deleting them from the
// worktree. Implements spec §4.11's rm: paths outside the worktree
// are rejected, and paths absent from the index fail unless
// SkipMissing is set. idx is mutated in place; the caller persists it.
func (r *Repository) Remove(idx *index.Index, paths []string, opts RmOptions) error {
	wanted := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		rel, _, err := r.relWorktreePath(p)
		if err != nil {
			return err
		}
		wanted[rel] = struct{}{}
	}

	var kept []*index.Entry
	var toDelete []string
	for _, e := range idx.Entries {
		if _, ok := wanted[e.Path]; ok {
			toDelete = append(toDelete, e.Path)
			delete(wanted, e.Path)
			continue
		}
		kept = append(kept, e)
	}

	if len(wanted) > 0 && !opts.SkipMissing {
		missing := make([]string, 0, len(wanted))
		for p := range wanted {
			missing = append(missing, p)
		}
		sort.Strings(missing)
		return fmt.Errorf("not in the index: %s: %w", strings.Join(missing, ", "), ginternals.ErrUnknownName)
	}

	if opts.DeleteFiles {
		root := r.Config.WorkTreePath
		for _, rel := range toDelete {
			abs := filepath.Join(root, filepath.FromSlash(rel))
			if err := r.fs().Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("could not remove %s: %w", rel, err)
			}
		}
	}

	idx.Entries = kept
	return nil
}

// Add stages paths into idx: any existing entries for the same paths
// are dropped first (without touching the worktree, tolerating paths
// not yet tracked), then each path's current content is hashed,
// written as a blob, and appended as a fresh entry built from stat().
// idx is mutated in place; the caller persists it. Matches spec §4.11.
func (r *Repository) Add(idx *index.Index, paths []string) error {
	if err := r.Remove(idx, paths, RmOptions{SkipMissing: true}); err != nil {
		return err
	}

	fs := r.fs()
	for _, p := range paths {
		rel, abs, err := r.relWorktreePath(p)
		if err != nil {
			return err
		}

		fi, err := fs.Stat(abs)
		if err != nil {
			return fmt.Errorf("could not stat %s: %w", p, err)
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%s: %w", p, ginternals.ErrNotAFile)
		}

		content, err := afero.ReadFile(fs, abs)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", p, err)
		}

		oid, err := r.WriteObject(object.New(object.TypeBlob, content))
		if err != nil {
			return fmt.Errorf("could not write blob for %s: %w", p, err)
		}

		idx.Add(index.NewEntry(rel, oid, fi))
	}
	return nil
}

// relWorktreePath resolves p (absolute, or relative to the current
// directory) to a path relative to the worktree root, rejecting
// anything that escapes it.
func (r *Repository) relWorktreePath(p string) (rel string, abs string, err error) {
	root := r.Config.WorkTreePath
	abs = p
	if !filepath.IsAbs(p) {
		abs = filepath.Join(root, p)
	}

	rel, err = filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%s: %w", p, ginternals.ErrPathOutsideWorktree)
	}
	return filepath.ToSlash(rel), abs, nil
}
