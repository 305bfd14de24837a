package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/spf13/afero"
)

// Checkout materializes the tree named by commitOrTree (a commit,
// followed to its tree, or a tree directly) into path: trees become
// directories and blobs become files holding their content. path must
// be absent or an empty directory, matching spec §4.9.
func (r *Repository) Checkout(commitOrTree, path string) error {
	treeID, err := r.ResolveAs(commitOrTree, object.TypeTree)
	if err != nil {
		return fmt.Errorf("not a valid commit or tree %s: %w", commitOrTree, err)
	}

	fs := r.fs()
	info, err := fs.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := fs.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("could not create %s: %w", path, err)
		}
	case err != nil:
		return fmt.Errorf("could not stat %s: %w", path, err)
	case !info.IsDir():
		return fmt.Errorf("%s: %w", path, ginternals.ErrNotAFile)
	default:
		entries, err := afero.ReadDir(fs, path)
		if err != nil {
			return fmt.Errorf("could not list %s: %w", path, err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("%s: %w", path, ginternals.ErrTargetNotEmpty)
		}
	}

	return r.checkoutTree(treeID, path)
}

func (r *Repository) checkoutTree(treeID ginternals.Oid, dest string) error {
	tree, err := r.Tree(treeID)
	if err != nil {
		return fmt.Errorf("could not load tree %s: %w", treeID.String(), err)
	}

	fs := r.fs()
	for _, e := range tree.Entries() {
		target := filepath.Join(dest, filepath.FromSlash(e.Path))

		if e.Mode.IsTree() {
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("could not create %s: %w", target, err)
			}
			if err := r.checkoutTree(e.ID, target); err != nil {
				return err
			}
			continue
		}

		o, err := r.Object(e.ID)
		if err != nil {
			return fmt.Errorf("could not load blob %s: %w", e.ID.String(), err)
		}
		if err := afero.WriteFile(fs, target, o.Bytes(), os.FileMode(e.Mode)&0o777); err != nil { //nolint:gosec // mode comes from a TreeObjectMode, not user input
			return fmt.Errorf("could not write %s: %w", target, err)
		}
	}
	return nil
}
