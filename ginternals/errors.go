package ginternals

import "errors"

// ErrObjectNotFound is an error corresponding to a git object not being
// found
var ErrObjectNotFound = errors.New("object not found")

// Error kinds surfaced by the repository core to its callers (the CLI
// collaborator). Each wraps more specific errors via %w so callers can
// still errors.Is() against the precise cause.
var (
	// ErrNotARepository is returned when the git directory being opened
	// has no HEAD reference
	ErrNotARepository = errors.New("not a git repository")
	// ErrConfigMissing is returned when a required config file or key
	// is absent
	ErrConfigMissing = errors.New("config missing")
	// ErrUnsupportedFormatVersion is returned when core.repositoryformatversion
	// is not 0
	ErrUnsupportedFormatVersion = errors.New("unsupported repository format version")
	// ErrAmbiguousName is returned when a name resolves to more than
	// one candidate Oid
	ErrAmbiguousName = errors.New("ambiguous name")
	// ErrUnknownName is returned when a name resolves to no candidate
	ErrUnknownName = errors.New("unknown name")
	// ErrPathOutsideWorktree is returned when an operation is given a
	// path that escapes the repository's worktree
	ErrPathOutsideWorktree = errors.New("path is outside the worktree")
	// ErrNotAFile is returned when an operation expected a regular file
	ErrNotAFile = errors.New("not a regular file")
	// ErrTargetNotEmpty is returned by checkout/init when the target
	// directory already contains files
	ErrTargetNotEmpty = errors.New("target directory is not empty")
)
