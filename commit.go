package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/index"
)

// CommitOptions contains the optional parameters used to create a commit
type CommitOptions struct {
	// ParentIDs overrides the commit's parents. Defaults to the single
	// current HEAD commit, or no parent if HEAD is unborn.
	ParentIDs []ginternals.Oid
}

// CreateCommit snapshots idx into a tree and creates a commit on top of
// it, advancing whatever ref HEAD currently resolves to: a symbolic
// HEAD advances the branch it points to (creating it if it doesn't
// exist yet, the unborn-branch case), while a detached HEAD advances
// itself directly, matching git's actual behavior regardless of what
// name was passed to update the ref.
func (r *Repository) CreateCommit(idx *index.Index, message string, opts CommitOptions) (*object.Commit, error) {
	treeID, err := r.BuildTree(idx)
	if err != nil {
		return nil, fmt.Errorf("could not build tree: %w", err)
	}

	parents := opts.ParentIDs
	targetRef := ginternals.Head
	raw, err := r.backend.RawReference(ginternals.Head)
	if err != nil {
		return nil, fmt.Errorf("could not read HEAD: %w", err)
	}
	raw = []byte(strings.TrimSpace(string(raw)))
	if strings.HasPrefix(string(raw), "ref: ") {
		targetRef = strings.TrimPrefix(string(raw), "ref: ")
	}

	if parents == nil {
		headRef, err := r.backend.Reference(ginternals.Head)
		switch {
		case errors.Is(err, ginternals.ErrRefNotFound):
			// unborn branch: first commit has no parent
		case err != nil:
			return nil, fmt.Errorf("could not resolve HEAD: %w", err)
		default:
			parents = []ginternals.Oid{headRef.Target()}
		}
	}

	author := r.identity()
	commit := object.NewCommit(treeID, author, &object.CommitOptions{
		Message:   message,
		ParentsID: parents,
	})

	if _, err := r.WriteObject(commit.ToObject()); err != nil {
		return nil, fmt.Errorf("could not write commit object: %w", err)
	}

	if _, err := r.NewReference(targetRef, commit.ID()); err != nil {
		return nil, fmt.Errorf("could not update %s: %w", targetRef, err)
	}

	return commit, nil
}

// identity builds the author/committer signature used for new commits
// and tags from the repository's resolved user.name/user.email config
func (r *Repository) identity() object.Signature {
	user := r.Config.FromFile().User()
	name, email := user, ""
	if start := strings.IndexByte(user, '<'); start >= 0 {
		if end := strings.IndexByte(user[start:], '>'); end >= 0 {
			name = strings.TrimSpace(user[:start])
			email = user[start+1 : start+end]
		}
	}
	return object.NewSignature(name, email)
}
