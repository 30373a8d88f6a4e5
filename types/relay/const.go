package relay

// Connection types a relay server may list an endpoint under.
const (
	ConnectionTypeUDP  = "udp"
	ConnectionTypeDTLS = "dtls"
	ConnectionTypeWS   = "ws"
	ConnectionTypeWSS  = "wss"
)

type ProtocolVersion byte

const (
	ProtocolV0 ProtocolVersion = 0
)

// Credential sizes of the relay wire format, as of ProtocolV0.
const (
	DefaultAllocationIDLength   = 16
	DefaultConnectionDataLength = 255
	DefaultHMACKeyLength        = 64
)
