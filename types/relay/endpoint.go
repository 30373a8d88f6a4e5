package relay

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"

	"golang.org/x/exp/slices"
)

// ServerEndpoint is one of the candidate addresses a relay server can be reached on.
type ServerEndpoint struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`

	// The protocol this endpoint speaks, e.g. "udp" or "dtls". Compared case-sensitively.
	ConnectionType string `json:"connectionType"`

	// Informational, as reported by the relay service.
	Network  string `json:"network,omitempty"`
	Reliable bool   `json:"reliable,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
}

func (e ServerEndpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// AddrPort parses the endpoint as an IP address and port.
//
// Relay services hand out literal addresses; a hostname results in an error.
func (e ServerEndpoint) AddrPort() (netip.AddrPort, error) {
	addr, err := netip.ParseAddr(e.Host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("endpoint host is not an ip address: %w", err)
	}

	return netip.AddrPortFrom(addr.Unmap(), e.Port), nil
}

// SelectEndpoint returns the first endpoint with the given connection type, in order of endpoints.
//
// If there is none, it returns an *EndpointNotFoundError.
func SelectEndpoint(endpoints []ServerEndpoint, connectionType string) (ServerEndpoint, error) {
	i := slices.IndexFunc(endpoints, func(e ServerEndpoint) bool {
		return e.ConnectionType == connectionType
	})

	if i == -1 {
		return ServerEndpoint{}, &EndpointNotFoundError{
			ConnectionType: connectionType,
			Candidates:     len(endpoints),
		}
	}

	return endpoints[i], nil
}
