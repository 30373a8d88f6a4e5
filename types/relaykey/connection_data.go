package relaykey

import (
	"go4.org/mem"
)

// ConnectionData is the opaque, relay-signed blob a participant presents to bind to its allocation.
type ConnectionData struct {
	Fixed
}

// MakeConnectionData validates raw against length, and copies it into a ConnectionData.
//
// field names the credential in a length error, e.g. "connection data" or "host connection data".
func MakeConnectionData(field string, raw []byte, length int) (ConnectionData, error) {
	f, err := toFixedLength(field, raw, length)
	return ConnectionData{f}, err
}

func (c ConnectionData) Equal(other ConnectionData) bool {
	return c.Fixed.Equal(other.Fixed)
}

// Debug returns a short fingerprint of the connection data.
func (c ConnectionData) Debug() string {
	return fingerprint(c.b)
}

// AppendText implements encoding.TextAppender.
func (c ConnectionData) AppendText(b []byte) ([]byte, error) {
	return appendHexKey(b, connectionDataHexPrefix, c.b), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c ConnectionData) MarshalText() ([]byte, error) {
	return c.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ConnectionData) UnmarshalText(text []byte) error {
	f, err := parseHex("connection data", mem.B(text), mem.S(connectionDataHexPrefix))
	if err != nil {
		return err
	}
	c.Fixed = f
	return nil
}
