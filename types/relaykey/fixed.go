package relaykey

import (
	"bytes"
	"encoding/hex"

	"github.com/edup2p/relaysupport/types"
)

// Fixed is a byte sequence whose length was checked against a protocol-mandated size when it was made.
//
// The bytes are owned by the Fixed; they are copied in on construction and copied out by Bytes,
// so neither the source buffer nor a caller of Bytes can change what a Fixed holds.
type Fixed struct {
	_ types.Incomparable
	b []byte
}

// ToFixedLength copies raw into a new Fixed, if it is exactly expected bytes long.
//
// On a length mismatch, it returns an *InvalidRecordLengthError.
func ToFixedLength(raw []byte, expected int) (Fixed, error) {
	return toFixedLength("", raw, expected)
}

func toFixedLength(field string, raw []byte, expected int) (Fixed, error) {
	if len(raw) != expected {
		return Fixed{}, &InvalidRecordLengthError{
			Field:    field,
			Expected: expected,
			Actual:   len(raw),
		}
	}

	b := make([]byte, expected)
	copy(b, raw)

	return Fixed{b: b}, nil
}

// Len returns the amount of bytes held.
func (f Fixed) Len() int {
	return len(f.b)
}

// Bytes returns a copy of the held bytes.
func (f Fixed) Bytes() []byte {
	return bytes.Clone(f.b)
}

// AppendTo appends the held bytes to dst, and returns the extended slice.
func (f Fixed) AppendTo(dst []byte) []byte {
	return append(dst, f.b...)
}

// Equal reports whether f and other hold the same bytes.
func (f Fixed) Equal(other Fixed) bool {
	return bytes.Equal(f.b, other.b)
}

// IsZero reports whether f is the zero value, which holds no bytes.
func (f Fixed) IsZero() bool {
	return len(f.b) == 0
}

func (f Fixed) HexString() string {
	return hex.EncodeToString(f.b)
}
