package relay

import (
	"encoding/json"

	"github.com/edup2p/relaysupport/types"
	"github.com/edup2p/relaysupport/types/relaykey"
)

// Role is the part a participant plays in a relayed session.
type Role string

const (
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// Descriptor is everything a transport needs to bind to a relay server and reach the other side of an allocation.
//
// A Descriptor is only made by a Builder. Its records always have the lengths of the Builder's Protocol,
// and its nonce is assigned exactly once, as the last step of building it.
type Descriptor struct {
	_ types.Incomparable

	Endpoint ServerEndpoint
	Version  ProtocolVersion

	AllocationID relaykey.AllocationID

	// Own connection data.
	LocalConnectionData relaykey.ConnectionData
	// Connection data of the counterpart; equal to LocalConnectionData when hosting.
	RemoteConnectionData relaykey.ConnectionData

	Key relaykey.HMACKey

	Secure bool

	role     Role
	nonce    uint64
	nonceSet bool
}

func (d *Descriptor) Role() Role {
	return d.role
}

// Nonce returns the anti-replay nonce assigned when the descriptor was built.
func (d *Descriptor) Nonce() uint64 {
	return d.nonce
}

// assignNonce sets the nonce from src. It panics when called twice on the same descriptor.
func (d *Descriptor) assignNonce(src NonceSource) *Descriptor {
	if d.nonceSet {
		panic("relay: nonce assigned twice to the same descriptor")
	}

	d.nonce = src.Next()
	d.nonceSet = true

	return d
}

type descriptorJSON struct {
	Role                 Role                    `json:"role"`
	Endpoint             ServerEndpoint          `json:"endpoint"`
	Version              ProtocolVersion         `json:"version"`
	AllocationID         relaykey.AllocationID   `json:"allocation_id"`
	LocalConnectionData  relaykey.ConnectionData `json:"local_connection_data"`
	RemoteConnectionData relaykey.ConnectionData `json:"remote_connection_data"`
	Key                  relaykey.HMACKey        `json:"key"`
	Secure               bool                    `json:"secure"`
	Nonce                uint64                  `json:"nonce"`
}

// MarshalJSON implements json.Marshaler.
//
// The output contains the HMAC key, and must be treated as a secret.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorJSON{
		Role:                 d.role,
		Endpoint:             d.Endpoint,
		Version:              d.Version,
		AllocationID:         d.AllocationID,
		LocalConnectionData:  d.LocalConnectionData,
		RemoteConnectionData: d.RemoteConnectionData,
		Key:                  d.Key,
		Secure:               d.Secure,
		Nonce:                d.nonce,
	})
}
