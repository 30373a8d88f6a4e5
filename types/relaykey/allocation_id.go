package relaykey

import (
	"go4.org/mem"
)

// AllocationID identifies a single relay allocation on the relay server.
type AllocationID struct {
	Fixed
}

// MakeAllocationID validates raw against length, and copies it into an AllocationID.
func MakeAllocationID(raw []byte, length int) (AllocationID, error) {
	f, err := toFixedLength("allocation id", raw, length)
	return AllocationID{f}, err
}

func (a AllocationID) Equal(other AllocationID) bool {
	return a.Fixed.Equal(other.Fixed)
}

// Debug returns the hex form of the id; allocation ids are not secret.
func (a AllocationID) Debug() string {
	return a.HexString()
}

// AppendText implements encoding.TextAppender.
func (a AllocationID) AppendText(b []byte) ([]byte, error) {
	return appendHexKey(b, allocationIDHexPrefix, a.b), nil
}

// MarshalText implements encoding.TextMarshaler.
func (a AllocationID) MarshalText() ([]byte, error) {
	return a.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AllocationID) UnmarshalText(text []byte) error {
	f, err := parseHex("allocation id", mem.B(text), mem.S(allocationIDHexPrefix))
	if err != nil {
		return err
	}
	a.Fixed = f
	return nil
}
