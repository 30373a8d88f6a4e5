package relaykey

import (
	"encoding/hex"
	"errors"
	"fmt"

	"go4.org/mem"
	"golang.org/x/crypto/blake2s"
)

const (
	allocationIDHexPrefix   = "allocid:"
	connectionDataHexPrefix = "conndata:"
	hmacKeyHexPrefix        = "hmackey:"
)

// appendHexKey appends prefix, followed by the hex encoding of key, to dst.
func appendHexKey(dst []byte, prefix string, key []byte) []byte {
	dst = append(dst, prefix...)
	return append(dst, hex.EncodeToString(key)...)
}

// parseHex decodes in, which must start with prefix, into a new Fixed.
//
// The length of the resulting Fixed is taken from the text.
func parseHex(field string, in, prefix mem.RO) (Fixed, error) {
	if !mem.HasPrefix(in, prefix) {
		return Fixed{}, fmt.Errorf("%s hex string doesn't have expected type prefix %s", field, prefix.StringCopy())
	}
	in = in.SliceFrom(prefix.Len())
	if in.Len() == 0 || in.Len()%2 != 0 {
		return Fixed{}, fmt.Errorf("%s hex has an invalid size of %d characters", field, in.Len())
	}

	out := make([]byte, in.Len()/2)
	for i := range out {
		a, ok1 := fromHexChar(in.At(i*2 + 0))
		b, ok2 := fromHexChar(in.At(i*2 + 1))
		if !ok1 || !ok2 {
			return Fixed{}, errors.New("invalid hex character in " + field)
		}
		out[i] = (a << 4) | b
	}

	return Fixed{b: out}, nil
}

// fromHexChar converts a hex character into its value and a success flag.
func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}

	return 0, false
}

// fingerprint returns a short, non-reversible identifier of secret bytes, fit for logging.
func fingerprint(b []byte) string {
	if len(b) == 0 {
		return "<empty>"
	}
	sum := blake2s.Sum256(b)
	return fmt.Sprintf("%x", sum[:4])
}
