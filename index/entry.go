package index

import (
	"os"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
)

// ModeType represents the 4-bit object type stored in an index entry's
// mode field. It is a smaller vocabulary than object.TreeObjectMode:
// the index only ever tracks regular files, symlinks, and gitlinks
// (directories never get an entry of their own).
type ModeType uint32

const (
	// RegularFile is the mode type for tracked, ordinary files
	// (executable or not; the distinction lives in ModePerm)
	RegularFile ModeType = 0b1000
	// SymLink is the mode type for tracked symbolic links
	SymLink ModeType = 0b1010
	// GitLink is the mode type for tracked submodules
	GitLink ModeType = 0b1110
)

// Entry represents one staged path in the index: its stat metadata at
// the time it was added, and the oid of the blob holding its content.
type Entry struct {
	CTimeSec  uint32
	CTimeNano uint32
	MTimeSec  uint32
	MTimeNano uint32

	Dev uint32
	Ino uint32

	ModeType ModeType
	ModePerm uint32 // 9-bit unix permission bits

	UID  uint32
	GID  uint32
	Size uint32

	OID ginternals.Oid

	AssumeValid bool
	Stage       uint8 // 2-bit merge stage, 0 outside a conflict

	// Path is the entry's repo-relative, UNIX-style path
	Path string
}

// Mode returns the tree mode this entry would be stored with once
// written into a tree object
func (e *Entry) Mode() object.TreeObjectMode {
	switch e.ModeType {
	case SymLink:
		return object.ModeSymLink
	case GitLink:
		return object.ModeGitLink
	default:
		if e.ModePerm&0o111 != 0 {
			return object.ModeExecutable
		}
		return object.ModeFile
	}
}

// NewEntry builds an index entry for path, backed by blob oid, using
// the stat info from fi to populate the metadata fields.
func NewEntry(path string, oid ginternals.Oid, fi os.FileInfo) *Entry {
	e := &Entry{
		Path:     path,
		OID:      oid,
		ModeType: RegularFile,
		ModePerm: 0o644,
		Size:     uint32(fi.Size()), //nolint:gosec // files bigger than 4GB aren't supported, same as git
	}
	if fi.Mode()&0o111 != 0 {
		e.ModePerm = 0o755
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		e.ModeType = SymLink
	}
	mtime := fi.ModTime()
	e.MTimeSec = uint32(mtime.Unix()) //nolint:gosec // matches on-disk format width
	e.MTimeNano = uint32(mtime.Nanosecond())
	e.CTimeSec = e.MTimeSec
	e.CTimeNano = e.MTimeNano

	fillSystemInfo(e, fi)
	return e
}
