package ginternals

import (
	"crypto/sha1" //nolint:gosec // the on-disk format mandates sha1
	"encoding/hex"
	"errors"
)

// OidSize is the number of raw bytes in an Oid
const OidSize = 20

// ErrInvalidOid is returned when a value cannot be turned into a valid Oid
var ErrInvalidOid = errors.New("invalid oid")

// NullOid is the zero-value Oid. It never corresponds to a real object.
var NullOid = Oid{}

// Oid represents the 20-byte SHA-1 digest of an object's stored form
type Oid [OidSize]byte

// NewOidFromContent hashes the given bytes and returns the resulting Oid
func NewOidFromContent(data []byte) Oid {
	return sha1.Sum(data) //nolint:gosec // format-mandated
}

// NewOidFromHex builds an Oid from its 20 raw bytes
func NewOidFromHex(b []byte) (Oid, error) {
	var oid Oid
	if len(b) != OidSize {
		return oid, ErrInvalidOid
	}
	copy(oid[:], b)
	return oid, nil
}

// NewOidFromChars builds an Oid from its 40-character hexadecimal
// representation, provided as a byte slice
func NewOidFromChars(b []byte) (Oid, error) {
	return NewOidFromStr(string(b))
}

// NewOidFromStr builds an Oid from its 40-character hexadecimal string
// representation
func NewOidFromStr(s string) (Oid, error) {
	var oid Oid
	if len(s) != OidSize*2 {
		return oid, ErrInvalidOid
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return oid, ErrInvalidOid
	}
	copy(oid[:], b)
	return oid, nil
}

// Bytes returns the 20 raw bytes of the Oid
func (o Oid) Bytes() []byte {
	return o[:]
}

// String returns the 40-character lowercase hexadecimal representation
// of the Oid
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero returns whether the Oid is the null Oid
func (o Oid) IsZero() bool {
	return o == NullOid
}
