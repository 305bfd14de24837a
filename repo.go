// Package git implements the repository-level operations that bridge
// the object store, reference store, index, and ignore engine: name
// resolution, tree construction, status, commit, and checkout.
package git

import (
	"fmt"

	"github.com/brodalo/gogit/backend"
	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/config"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/spf13/afero"
)

// InitOptions contains the optional parameters used to initialize a
// repository
type InitOptions struct {
	// IsBare represents whether a bare repository will be created
	IsBare bool
	// InitialBranchName is the branch HEAD will symbolically point to.
	// Defaults to ginternals.Master
	InitialBranchName string
	// Symlink creates a .git FILE containing a path to the repo instead
	// of the repo itself (used by --separate-git-dir)
	Symlink bool
}

// OpenOptions contains the optional parameters used to open an
// existing repository
type OpenOptions struct {
	// IsBare represents whether the repository has no worktree
	IsBare bool
}

// Repository represents a git repository: the resolved configuration
// describing where it lives, and the backend storing its objects and
// references.
type Repository struct {
	// Config is the resolved configuration this repository was opened
	// or initialized with
	Config *config.Config

	backend backend.Backend
}

// InitRepositoryWithParams initializes a new repository described by
// cfg. Calling this on an already initialized repository is safe: it
// will not overwrite what's already there.
func InitRepositoryWithParams(cfg *config.Config, opts InitOptions) (*Repository, error) {
	b, err := backend.NewFS(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not init backend: %w", err)
	}

	branch := opts.InitialBranchName
	if branch == "" {
		branch = ginternals.Master
	}

	if err := b.InitWithOptions(branch, backend.InitOptions{CreateSymlink: opts.Symlink}); err != nil {
		return nil, fmt.Errorf("could not initialize repository: %w", err)
	}

	return &Repository{Config: cfg, backend: b}, nil
}

// OpenRepositoryWithParams loads an existing repository described by
// cfg
func OpenRepositoryWithParams(cfg *config.Config, opts OpenOptions) (*Repository, error) {
	b, err := backend.NewFS(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not open backend: %w", err)
	}

	// since we can't reliably check for the directory's existence
	// across backends, we instead check that HEAD exists (without
	// resolving it), since it should always be there in a valid repository
	if _, err := b.RawReference(ginternals.Head); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.GitDirPath, ginternals.ErrNotARepository)
	}

	if version, ok := cfg.FromFile().RepoFormatVersion(); ok && version != 0 {
		return nil, ginternals.ErrUnsupportedFormatVersion
	}

	return &Repository{Config: cfg, backend: b}, nil
}

// Close releases the resources held by the repository
func (r *Repository) Close() error {
	return r.backend.Close()
}

// Reference returns the fully resolved reference matching name
func (r *Repository) Reference(name string) (*ginternals.Reference, error) {
	return r.backend.Reference(name)
}

// NewReference creates, or overwrites, a direct reference pointing at target
func (r *Repository) NewReference(name string, target ginternals.Oid) (*ginternals.Reference, error) {
	ref := ginternals.NewReference(name, target)
	if err := r.backend.WriteReference(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// NewSymbolicReference creates, or overwrites, a symbolic reference
// pointing at target
func (r *Repository) NewSymbolicReference(name, target string) (*ginternals.Reference, error) {
	ref := ginternals.NewSymbolicReference(name, target)
	if err := r.backend.WriteReference(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// WalkReferences runs f against every known reference
func (r *Repository) WalkReferences(f backend.RefWalkFunc) error {
	return r.backend.WalkReferences(f)
}

// Object returns the object matching oid
func (r *Repository) Object(oid ginternals.Oid) (*object.Object, error) {
	return r.backend.Object(oid)
}

// HasObject returns whether oid exists in the object database
func (r *Repository) HasObject(oid ginternals.Oid) (bool, error) {
	return r.backend.HasObject(oid)
}

// WriteObject persists o and returns its oid
func (r *Repository) WriteObject(o *object.Object) (ginternals.Oid, error) {
	return r.backend.WriteObject(o)
}

// WalkLooseObjectIDs runs f against every loose object id
func (r *Repository) WalkLooseObjectIDs(f backend.OidWalkFunc) error {
	return r.backend.WalkLooseObjectIDs(f)
}

// Commit returns the commit object matching oid
func (r *Repository) Commit(oid ginternals.Oid) (*object.Commit, error) {
	o, err := r.backend.Object(oid)
	if err != nil {
		return nil, err
	}
	return o.AsCommit()
}

// Tree returns the tree object matching oid
func (r *Repository) Tree(oid ginternals.Oid) (*object.Tree, error) {
	o, err := r.backend.Object(oid)
	if err != nil {
		return nil, err
	}
	return o.AsTree()
}

// Tag returns the tag object matching oid
func (r *Repository) Tag(oid ginternals.Oid) (*object.Tag, error) {
	o, err := r.backend.Object(oid)
	if err != nil {
		return nil, err
	}
	return o.AsTag()
}

// fs returns the filesystem backing the repository's worktree and
// dotgit files, defaulting to the real OS filesystem
func (r *Repository) fs() afero.Fs {
	if r.Config.FS != nil {
		return r.Config.FS
	}
	return afero.NewOsFs()
}
