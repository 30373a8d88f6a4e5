package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Protocol holds the constants of the relay wire format that a Descriptor has to match.
//
// These are versioned by the relay service, not by this package, so they can be loaded from a file.
type Protocol struct {
	// The endpoint connection type to connect over.
	ConnectionType string `json:"connection_type"`

	Version ProtocolVersion `json:"version"`

	AllocationIDLength   int `json:"allocation_id_length"`
	ConnectionDataLength int `json:"connection_data_length"`
	HMACKeyLength        int `json:"hmac_key_length"`
}

func DefaultProtocol() Protocol {
	return Protocol{
		ConnectionType:       ConnectionTypeUDP,
		Version:              ProtocolV0,
		AllocationIDLength:   DefaultAllocationIDLength,
		ConnectionDataLength: DefaultConnectionDataLength,
		HMACKeyLength:        DefaultHMACKeyLength,
	}
}

// Secure reports whether endpoints of this connection type are encrypted by the transport.
func (p Protocol) Secure() bool {
	return p.ConnectionType == ConnectionTypeDTLS || p.ConnectionType == ConnectionTypeWSS
}

func (p Protocol) Validate() error {
	var errs []error

	if p.ConnectionType == "" {
		errs = append(errs, errors.New("connection type must not be empty"))
	}
	if p.AllocationIDLength <= 0 {
		errs = append(errs, fmt.Errorf("allocation id length must be positive, got %d", p.AllocationIDLength))
	}
	if p.ConnectionDataLength <= 0 {
		errs = append(errs, fmt.Errorf("connection data length must be positive, got %d", p.ConnectionDataLength))
	}
	if p.HMACKeyLength <= 0 {
		errs = append(errs, fmt.Errorf("hmac key length must be positive, got %d", p.HMACKeyLength))
	}

	return errors.Join(errs...)
}

// ParseProtocol decodes a JSON protocol definition on top of DefaultProtocol, and validates it.
func ParseProtocol(b []byte) (Protocol, error) {
	p := DefaultProtocol()

	if err := json.Unmarshal(b, &p); err != nil {
		return Protocol{}, fmt.Errorf("could not decode protocol: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Protocol{}, fmt.Errorf("invalid protocol: %w", err)
	}

	return p, nil
}

// LoadProtocol reads a JSON protocol definition from path, see ParseProtocol.
func LoadProtocol(path string) (Protocol, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Protocol{}, err
	}

	return ParseProtocol(b)
}
