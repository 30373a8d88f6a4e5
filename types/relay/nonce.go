package relay

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
)

// NonceSource hands out anti-replay nonces for descriptors.
//
// Next is called concurrently, and must never return a value it returned before.
type NonceSource interface {
	Next() uint64
}

// CounterNonce is a NonceSource backed by an atomic counter that starts at a random offset.
//
// It never returns 0.
type CounterNonce struct {
	n atomic.Uint64
}

// NewCounterNonce creates a CounterNonce, seeded from crypto/rand.
//
// The seed is kept below 2^63, so the counter would take 2^63 nonces to wrap around.
func NewCounterNonce() *CounterNonce {
	var b [8]byte
	if _, err := io.ReadFull(crand.Reader, b[:]); err != nil {
		panic(fmt.Sprintf("unable to read random bytes from OS: %v", err))
	}

	c := new(CounterNonce)
	c.n.Store(binary.BigEndian.Uint64(b[:]) >> 1)
	return c
}

func (c *CounterNonce) Next() uint64 {
	for {
		if v := c.n.Add(1); v != 0 {
			return v
		}
	}
}

// processNonces is shared by every Builder that isn't given its own NonceSource,
// so descriptors never share a nonce within this process.
var processNonces = NewCounterNonce()
