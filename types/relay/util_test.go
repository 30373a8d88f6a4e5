package relay

import (
	"github.com/LukaGiorgadze/gonull"
)

// Lengths used throughout the tests, smaller than the default protocol's connection data.
const (
	testAllocIDLen  = 16
	testConnDataLen = 64
	testKeyLen      = 64
)

var testProtocol = Protocol{
	ConnectionType:       ConnectionTypeUDP,
	Version:              ProtocolV0,
	AllocationIDLength:   testAllocIDLen,
	ConnectionDataLength: testConnDataLen,
	HMACKeyLength:        testKeyLen,
}

var udpEndpoint = ServerEndpoint{Host: "1.2.3.4", Port: 7777, ConnectionType: ConnectionTypeUDP}

func zeroBytes(n int) []byte {
	return make([]byte, n)
}

func filledBytes(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

func hostAllocation() *Allocation {
	return &Allocation{
		ServerEndpoints:   []ServerEndpoint{udpEndpoint},
		AllocationIDBytes: filledBytes(testAllocIDLen, 0xA1),
		ConnectionData:    zeroBytes(testConnDataLen),
		Key:               zeroBytes(testKeyLen),
	}
}

func joinAllocation() *Allocation {
	a := hostAllocation()
	a.ConnectionData = filledBytes(testConnDataLen, 0x01)
	a.HostConnectionData = gonull.NewNullable(filledBytes(testConnDataLen, 0x02))
	return a
}

// fixedNonce hands out the same nonce every time, to tell it apart from the process counter.
type fixedNonce uint64

func (f fixedNonce) Next() uint64 {
	return uint64(f)
}
