package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/config"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/ignore"
	"github.com/brodalo/gogit/index"
	"github.com/spf13/afero"
)

// FileStatusKind describes how a path differs between two of the three
// snapshots (HEAD, index, worktree) a status report compares.
type FileStatusKind int

// The kinds of change a status pass can report
const (
	StatusAdded FileStatusKind = iota + 1
	StatusModified
	StatusDeleted
	StatusUntracked
)

// String returns a human-readable label for the status kind
func (k FileStatusKind) String() string {
	switch k {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusUntracked:
		return "untracked"
	default:
		return "unknown"
	}
}

// FileStatus represents the status of a single repo-relative path
type FileStatus struct {
	Path string
	Kind FileStatusKind
}

// Status is a full three-way status report
type Status struct {
	// Branch is the short name of the current branch; empty when HEAD
	// is detached or the branch is unborn with no target name resolved
	Branch string
	// Detached holds the commit HEAD resolves to when it isn't
	// symbolic to a local branch
	Detached ginternals.Oid

	// Staged is the diff between HEAD's tree and the index
	Staged []FileStatus
	// Worktree is the diff between the index and the worktree
	Worktree []FileStatus
}

// Status computes a three-pass status report: the current branch line,
// the diff between HEAD's tree and idx, and the diff between idx and
// the worktree. matcher may be nil, in which case every untracked file
// is reported.
func (r *Repository) Status(idx *index.Index, matcher *ignore.Matcher) (*Status, error) {
	st := &Status{}

	branch, detached, err := r.branchLine()
	if err != nil {
		return nil, fmt.Errorf("could not read HEAD: %w", err)
	}
	st.Branch = branch
	st.Detached = detached

	headEntries, err := r.headTreeEntries()
	if err != nil {
		return nil, err
	}

	st.Staged = diffHeadIndex(headEntries, idx)

	worktreeDiff, err := r.diffIndexWorktree(idx, matcher)
	if err != nil {
		return nil, err
	}
	st.Worktree = worktreeDiff

	return st, nil
}

// branchLine reads HEAD without fully resolving it, matching spec
// §4.10 pass 1: a symbolic HEAD reports the branch's short name even
// if the branch itself is unborn (no commits yet); otherwise the
// resolved commit id is reported as the detached position.
func (r *Repository) branchLine() (branch string, detached ginternals.Oid, err error) {
	raw, err := r.backend.RawReference(ginternals.Head)
	if err != nil {
		return "", ginternals.NullOid, err
	}
	raw = bytes.TrimSpace(raw)

	if bytes.HasPrefix(raw, []byte("ref: ")) {
		target := string(raw[len("ref: "):])
		return ginternals.LocalBranchShortName(target), ginternals.NullOid, nil
	}

	oid, err := ginternals.NewOidFromChars(raw)
	if err != nil {
		return "", ginternals.NullOid, fmt.Errorf("malformed HEAD content: %w", ginternals.ErrRefInvalid)
	}
	return "", oid, nil
}

// headTreeEntries flattens the tree of the commit HEAD currently
// resolves to into a path -> oid map. An unborn HEAD (symbolic to a
// branch with no commits yet) yields an empty map.
func (r *Repository) headTreeEntries() (map[string]ginternals.Oid, error) {
	entries := map[string]ginternals.Oid{}

	headRef, err := r.backend.Reference(ginternals.Head)
	switch {
	case errors.Is(err, ginternals.ErrRefNotFound):
		return entries, nil
	case err != nil:
		return nil, err
	}

	c, err := r.Commit(headRef.Target())
	if err != nil {
		return nil, fmt.Errorf("could not load HEAD commit: %w", err)
	}
	if err := r.flattenTree(c.TreeID(), "", entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// flattenTree recursively flattens the tree at oid into a path -> blob
// oid map, using prefix as the accumulated path so far
func (r *Repository) flattenTree(oid ginternals.Oid, prefix string, out map[string]ginternals.Oid) error {
	tree, err := r.Tree(oid)
	if err != nil {
		return fmt.Errorf("could not load tree %s: %w", oid.String(), err)
	}
	for _, e := range tree.Entries() {
		p := path.Join(prefix, e.Path)
		if e.Mode.IsTree() {
			if err := r.flattenTree(e.ID, p, out); err != nil {
				return err
			}
			continue
		}
		out[p] = e.ID
	}
	return nil
}

// diffHeadIndex implements spec §4.10 pass 2: same name with a
// different oid is modified, absent from HEAD is added, and names left
// over in HEAD after the pass are deleted.
func diffHeadIndex(head map[string]ginternals.Oid, idx *index.Index) []FileStatus {
	var out []FileStatus
	seen := make(map[string]struct{}, len(idx.Entries))

	for _, e := range idx.Entries {
		seen[e.Path] = struct{}{}
		oid, ok := head[e.Path]
		switch {
		case !ok:
			out = append(out, FileStatus{Path: e.Path, Kind: StatusAdded})
		case oid != e.OID:
			out = append(out, FileStatus{Path: e.Path, Kind: StatusModified})
		}
	}

	var deleted []string
	for p := range head {
		if _, ok := seen[p]; !ok {
			deleted = append(deleted, p)
		}
	}
	sort.Strings(deleted)
	for _, p := range deleted {
		out = append(out, FileStatus{Path: p, Kind: StatusDeleted})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// diffIndexWorktree implements spec §4.10 pass 3: the worktree is
// walked, skipping the .git subtree; a missing indexed file is
// deleted, a changed stat timestamp triggers a re-hash to check for
// modification, and files on disk that aren't indexed and aren't
// matched by the ignore engine are untracked. Bare repositories (no
// worktree) produce no worktree diff.
func (r *Repository) diffIndexWorktree(idx *index.Index, matcher *ignore.Matcher) ([]FileStatus, error) {
	root := r.Config.WorkTreePath
	if root == "" {
		return nil, nil
	}

	fs := r.Config.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	byPath := make(map[string]*index.Entry, len(idx.Entries))
	for _, e := range idx.Entries {
		byPath[e.Path] = e
	}

	onDisk := map[string]struct{}{}
	var out []FileStatus

	err := afero.Walk(fs, root, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel == config.DefaultDotGitDirName || strings.HasPrefix(rel, config.DefaultDotGitDirName+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		onDisk[rel] = struct{}{}

		e, tracked := byPath[rel]
		if !tracked {
			if matcher != nil && matcher.Match(rel) {
				return nil
			}
			out = append(out, FileStatus{Path: rel, Kind: StatusUntracked})
			return nil
		}

		tmp := index.NewEntry(rel, ginternals.NullOid, info)
		if tmp.MTimeSec == e.MTimeSec && tmp.MTimeNano == e.MTimeNano &&
			tmp.CTimeSec == e.CTimeSec && tmp.CTimeNano == e.CTimeNano {
			return nil
		}

		content, readErr := afero.ReadFile(fs, p)
		if readErr != nil {
			return readErr
		}
		if object.New(object.TypeBlob, content).ID() != e.OID {
			out = append(out, FileStatus{Path: rel, Kind: StatusModified})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk worktree: %w", err)
	}

	var missing []string
	for p := range byPath {
		if _, ok := onDisk[p]; !ok {
			missing = append(missing, p)
		}
	}
	sort.Strings(missing)
	for _, p := range missing {
		out = append(out, FileStatus{Path: p, Kind: StatusDeleted})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
