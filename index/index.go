// Package index implements the git index (staging area) file format: a
// packed binary list of file records with stat metadata and blob oids,
// version 2 only.
package index

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // the on-disk format mandates sha1
	"encoding/binary"
	"errors"
	"io"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/internal/readutil"
	"golang.org/x/xerrors"
)

// Version is the only index format version this package understands
const Version = 2

// signature is the magic 4 bytes starting every index file
var signature = [4]byte{'D', 'I', 'R', 'C'}

// ErrMalformedIndex is returned when the index file doesn't follow the
// expected binary layout
var ErrMalformedIndex = errors.New("malformed index")

// ErrUnsupportedVersion is returned when the index declares a version
// other than 2
var ErrUnsupportedVersion = errors.New("unsupported index version")

// extendedFlag marks an entry as carrying the (unsupported) extended
// flags word; a set bit is a hard parse error
const extendedFlag = 1 << 14

// assumeValidFlag marks an entry as "assume unchanged"
const assumeValidFlag = 1 << 15

// nameLenMask isolates the 12-bit name-length field from an entry's flags
const nameLenMask = 0x0FFF

// stageShift/stageMask isolate the 2-bit merge-stage field
const (
	stageShift = 12
	stageMask  = 0x3
)

const entryPrefixSize = 62

// Index represents the parsed staging area: an ordered list of
// entries, one per tracked path. Order is caller-defined (insertion
// order); nothing in this package re-sorts it.
type Index struct {
	Version uint32
	Entries []*Entry
}

// New returns an empty, version-2 index
func New() *Index {
	return &Index{Version: Version}
}

// Add appends an entry to the index, replacing any existing entry for
// the same path
func (idx *Index) Add(e *Entry) {
	for i, existing := range idx.Entries {
		if existing.Path == e.Path {
			idx.Entries[i] = e
			return
		}
	}
	idx.Entries = append(idx.Entries, e)
}

// Remove removes the entry for path, if any. It returns whether an
// entry was found and removed.
func (idx *Index) Remove(path string) bool {
	for i, e := range idx.Entries {
		if e.Path == path {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry for path, if any
func (idx *Index) Get(path string) (*Entry, bool) {
	for _, e := range idx.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return nil, false
}

// Read parses a v2 index file from r
func Read(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("could not read index: %w", err)
	}

	if len(data) < 12 || !bytes.Equal(data[0:4], signature[:]) {
		return nil, xerrors.Errorf("bad signature: %w", ErrMalformedIndex)
	}
	version := binary.BigEndian.Uint32(data[4:8])
	if version != Version {
		return nil, xerrors.Errorf("version %d: %w", version, ErrUnsupportedVersion)
	}
	count := binary.BigEndian.Uint32(data[8:12])

	idx := &Index{Version: version}
	offset := 12
	for i := uint32(0); i < count; i++ {
		e, consumed, err := readEntry(data[offset:])
		if err != nil {
			return nil, xerrors.Errorf("entry %d: %w", i, err)
		}
		idx.Entries = append(idx.Entries, e)
		offset += consumed
	}

	// the 20-byte trailer is accepted, but not required, on read
	if len(data)-offset >= ginternals.OidSize {
		offset += ginternals.OidSize
	}

	return idx, nil
}

func readEntry(data []byte) (*Entry, int, error) {
	if len(data) < entryPrefixSize {
		return nil, 0, xerrors.Errorf("truncated entry prefix: %w", ErrMalformedIndex)
	}

	e := &Entry{}
	e.CTimeSec = binary.BigEndian.Uint32(data[0:4])
	e.CTimeNano = binary.BigEndian.Uint32(data[4:8])
	e.MTimeSec = binary.BigEndian.Uint32(data[8:12])
	e.MTimeNano = binary.BigEndian.Uint32(data[12:16])
	e.Dev = binary.BigEndian.Uint32(data[16:20])
	e.Ino = binary.BigEndian.Uint32(data[20:24])

	mode := binary.BigEndian.Uint32(data[24:28])
	e.ModeType = ModeType((mode >> 12) & 0xF)
	e.ModePerm = mode & 0x1FF

	e.UID = binary.BigEndian.Uint32(data[28:32])
	e.GID = binary.BigEndian.Uint32(data[32:36])
	e.Size = binary.BigEndian.Uint32(data[36:40])

	oid, err := ginternals.NewOidFromHex(data[40:60])
	if err != nil {
		return nil, 0, xerrors.Errorf("invalid oid: %w: %w", err, ErrMalformedIndex)
	}
	e.OID = oid

	flags := binary.BigEndian.Uint16(data[60:62])
	e.AssumeValid = flags&assumeValidFlag != 0
	if flags&extendedFlag != 0 {
		return nil, 0, xerrors.Errorf("extended flag set: %w", ErrMalformedIndex)
	}
	e.Stage = uint8((flags >> stageShift) & stageMask)
	nameLen := int(flags & nameLenMask)

	offset := entryPrefixSize
	var name []byte
	if nameLen < nameLenMask {
		if offset+nameLen > len(data) {
			return nil, 0, xerrors.Errorf("truncated name: %w", ErrMalformedIndex)
		}
		name = data[offset : offset+nameLen]
		offset += nameLen
	} else {
		// names of 0xFFF bytes or more aren't length-prefixed; scan
		// for the NUL terminator instead
		name = readutil.ReadTo(data[offset:], 0)
		if name == nil {
			return nil, 0, xerrors.Errorf("unterminated name: %w", ErrMalformedIndex)
		}
		offset += len(name)
	}
	e.Path = string(name)

	// skip the mandatory NUL terminator
	if offset >= len(data) {
		return nil, 0, xerrors.Errorf("missing name terminator: %w", ErrMalformedIndex)
	}
	offset++

	// pad to the next 8-byte boundary, measured from the entry's start
	if pad := offset % 8; pad != 0 {
		offset += 8 - pad
	}
	if offset > len(data) {
		return nil, 0, xerrors.Errorf("truncated padding: %w", ErrMalformedIndex)
	}

	return e, offset, nil
}

// Write serializes the index to w in canonical v2 form, including the
// trailing SHA-1 trailer
func Write(idx *Index, w io.Writer) error {
	buf := new(bytes.Buffer)

	buf.Write(signature[:])
	writeU32(buf, Version)
	writeU32(buf, uint32(len(idx.Entries))) //nolint:gosec // entry counts never approach 2^32

	for _, e := range idx.Entries {
		writeEntry(buf, e)
	}

	sum := sha1.Sum(buf.Bytes()) //nolint:gosec // format-mandated
	buf.Write(sum[:])

	if _, err := w.Write(buf.Bytes()); err != nil {
		return xerrors.Errorf("could not write index: %w", err)
	}
	return nil
}

func writeEntry(buf *bytes.Buffer, e *Entry) {
	writeU32(buf, e.CTimeSec)
	writeU32(buf, e.CTimeNano)
	writeU32(buf, e.MTimeSec)
	writeU32(buf, e.MTimeNano)
	writeU32(buf, e.Dev)
	writeU32(buf, e.Ino)

	mode := (uint32(e.ModeType) << 12) | (e.ModePerm & 0x1FF)
	writeU32(buf, mode)

	writeU32(buf, e.UID)
	writeU32(buf, e.GID)
	writeU32(buf, e.Size)
	buf.Write(e.OID.Bytes())

	nameLen := len(e.Path)
	flagLen := nameLen
	if flagLen > nameLenMask {
		flagLen = nameLenMask
	}
	flags := uint16(flagLen) & nameLenMask //nolint:gosec // masked to 12 bits above
	flags |= uint16(e.Stage&stageMask) << stageShift
	if e.AssumeValid {
		flags |= assumeValidFlag
	}
	writeU16(buf, flags)

	buf.WriteString(e.Path)

	// pad with NUL bytes to the next 8-byte boundary (at least one)
	total := entryPrefixSize + nameLen
	padded := total + 1
	if rem := padded % 8; rem != 0 {
		padded += 8 - rem
	}
	nulCount := padded - total
	buf.Write(make([]byte, nulCount))
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
