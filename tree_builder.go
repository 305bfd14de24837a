package git

import (
	"path"
	"sort"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/index"
)

// BuildTree materializes idx into a tree of tree objects, persisting
// every tree it creates, and returns the root tree's oid.
//
// Entries are grouped by their containing directory; every ancestor
// directory down to the root is guaranteed a bucket, even if empty, so
// an index with zero entries still produces the canonical empty tree.
// Directories are built in order of decreasing path length so that a
// child directory is always written before the parent bucket it
// contributes a (basename, subtree oid) entry to; the last tree
// written, for the root directory, is the result.
func (r *Repository) BuildTree(idx *index.Index) (ginternals.Oid, error) {
	dirs := map[string][]object.TreeEntry{}

	ensureDir := func(d string) {
		for {
			if _, ok := dirs[d]; ok {
				return
			}
			dirs[d] = nil
			if d == "" {
				return
			}
			d = dirOf(d)
		}
	}

	for _, e := range idx.Entries {
		dir := dirOf(e.Path)
		ensureDir(dir)
		dirs[dir] = append(dirs[dir], object.TreeEntry{
			Path: path.Base(e.Path),
			ID:   e.OID,
			Mode: e.Mode(),
		})
	}
	ensureDir("")

	keys := make([]string, 0, len(dirs))
	for d := range dirs {
		keys = append(keys, d)
	}
	sort.Slice(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})

	var root ginternals.Oid
	for _, d := range keys {
		tree := object.NewTree(dirs[d])
		oid, err := r.WriteObject(tree.ToObject())
		if err != nil {
			return ginternals.NullOid, err
		}
		root = oid

		if d == "" {
			continue
		}
		parent := dirOf(d)
		dirs[parent] = append(dirs[parent], object.TreeEntry{
			Path: path.Base(d),
			ID:   oid,
			Mode: object.ModeDirectory,
		})
	}

	return root, nil
}

// dirOf returns the repo-relative parent directory of p, using "" for
// the worktree root (unlike path.Dir, which would return ".")
func dirOf(p string) string {
	d := path.Dir(p)
	if d == "." {
		return ""
	}
	return d
}
