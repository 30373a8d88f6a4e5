package relay

import (
	"encoding/json"
	"fmt"

	"github.com/LukaGiorgadze/gonull"
)

// Allocation is a relay service's grant of a relay slot, as received by the relay client.
//
// Byte fields are base64 in JSON, as the relay service sends them.
type Allocation struct {
	// The allocation id in its textual (UUID) form, informational.
	ID string `json:"allocationId,omitempty"`

	Region string `json:"region,omitempty"`

	ServerEndpoints []ServerEndpoint `json:"serverEndpoints"`

	AllocationIDBytes []byte `json:"allocationIdBytes"`

	ConnectionData []byte `json:"connectionData"`

	// The hosting participant's connection data, only set on allocations obtained by joining a host.
	HostConnectionData gonull.Nullable[[]byte] `json:"hostConnectionData"`

	Key []byte `json:"key"`
}

// IsJoin reports whether this allocation was obtained by joining a host.
func (a *Allocation) IsJoin() bool {
	return a.HostConnectionData.Valid
}

// ParseAllocation decodes an allocation from the JSON body of a relay service response.
func ParseAllocation(b []byte) (*Allocation, error) {
	a := new(Allocation)

	if err := json.Unmarshal(b, a); err != nil {
		return nil, fmt.Errorf("could not decode allocation: %w", err)
	}

	return a, nil
}
