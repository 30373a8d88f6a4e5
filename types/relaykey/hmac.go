package relaykey

import (
	"crypto/subtle"

	"go4.org/mem"
)

// HMACKey is the key the transport signs relay bind messages with.
type HMACKey struct {
	Fixed
}

// MakeHMACKey validates raw against length, and copies it into an HMACKey.
func MakeHMACKey(raw []byte, length int) (HMACKey, error) {
	f, err := toFixedLength("hmac key", raw, length)
	return HMACKey{f}, err
}

// Equal reports whether k and other are the same key, in constant time.
func (k HMACKey) Equal(other HMACKey) bool {
	return subtle.ConstantTimeCompare(k.b, other.b) == 1
}

// Debug returns a short fingerprint of the key, never the key itself.
func (k HMACKey) Debug() string {
	return fingerprint(k.b)
}

// AppendText implements encoding.TextAppender.
func (k HMACKey) AppendText(b []byte) ([]byte, error) {
	return appendHexKey(b, hmacKeyHexPrefix, k.b), nil
}

// MarshalText implements encoding.TextMarshaler.
func (k HMACKey) MarshalText() ([]byte, error) {
	return k.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *HMACKey) UnmarshalText(text []byte) error {
	f, err := parseHex("hmac key", mem.B(text), mem.S(hmacKeyHexPrefix))
	if err != nil {
		return err
	}
	k.Fixed = f
	return nil
}
