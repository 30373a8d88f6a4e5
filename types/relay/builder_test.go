package relay

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/LukaGiorgadze/gonull"
	"github.com/edup2p/relaysupport/types/relaykey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, opts ...BuilderOption) *Builder {
	b, err := NewBuilder(append([]BuilderOption{WithProtocol(testProtocol)}, opts...)...)
	require.NoError(t, err)
	return b
}

func TestForHost(t *testing.T) {
	b := newTestBuilder(t)

	d, err := b.ForHost(hostAllocation())
	require.NoError(t, err)

	assert.Equal(t, RoleHost, d.Role())
	assert.Equal(t, udpEndpoint, d.Endpoint)
	assert.Equal(t, ProtocolV0, d.Version)
	assert.False(t, d.Secure)
	assert.Equal(t, filledBytes(testAllocIDLen, 0xA1), d.AllocationID.Bytes())
	assert.Equal(t, zeroBytes(testConnDataLen), d.LocalConnectionData.Bytes())
	assert.Equal(t, zeroBytes(testConnDataLen), d.RemoteConnectionData.Bytes())
	assert.True(t, d.LocalConnectionData.Equal(d.RemoteConnectionData))
	assert.Equal(t, zeroBytes(testKeyLen), d.Key.Bytes())
	assert.NotZero(t, d.Nonce())
}

func TestForHostIgnoresHostConnectionData(t *testing.T) {
	b := newTestBuilder(t)

	d, err := b.ForHost(joinAllocation())
	require.NoError(t, err)
	assert.True(t, d.LocalConnectionData.Equal(d.RemoteConnectionData), "host duplicates its own connection data")
}

func TestForPlayer(t *testing.T) {
	b := newTestBuilder(t)
	a := joinAllocation()

	d, err := b.ForPlayer(a)
	require.NoError(t, err)

	assert.Equal(t, RolePlayer, d.Role())
	assert.Equal(t, udpEndpoint, d.Endpoint)
	assert.False(t, d.Secure)
	assert.Equal(t, a.ConnectionData, d.LocalConnectionData.Bytes())
	assert.Equal(t, a.HostConnectionData.Val, d.RemoteConnectionData.Bytes())
	assert.False(t, d.LocalConnectionData.Equal(d.RemoteConnectionData))
	assert.NotZero(t, d.Nonce())
}

func TestForPlayerMissingHostConnectionData(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.ForPlayer(hostAllocation())

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "host connection data", missing.Field)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestNilAllocation(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.ForHost(nil)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = b.ForPlayer(nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestBuildWithoutUDPEndpoint(t *testing.T) {
	b := newTestBuilder(t)

	for name, build := range map[string]func(*Allocation) (*Descriptor, error){
		"host":   b.ForHost,
		"player": b.ForPlayer,
	} {
		a := joinAllocation()
		a.ServerEndpoints = []ServerEndpoint{
			{Host: "1.2.3.4", Port: 443, ConnectionType: ConnectionTypeWSS},
			{Host: "1.2.3.4", Port: 7778, ConnectionType: ConnectionTypeDTLS},
		}

		d, err := build(a)
		assert.Nil(t, d, name)

		var notFound *EndpointNotFoundError
		require.ErrorAs(t, err, &notFound, name)
		assert.Equal(t, ConnectionTypeUDP, notFound.ConnectionType, name)
	}
}

func TestBuildInvalidLengths(t *testing.T) {
	b := newTestBuilder(t)

	cases := []struct {
		name     string
		mutate   func(a *Allocation)
		field    string
		expected int
		actual   int
	}{
		{
			name:     "short connection data",
			mutate:   func(a *Allocation) { a.ConnectionData = zeroBytes(63) },
			field:    "connection data",
			expected: testConnDataLen,
			actual:   63,
		},
		{
			name:     "long key",
			mutate:   func(a *Allocation) { a.Key = zeroBytes(65) },
			field:    "hmac key",
			expected: testKeyLen,
			actual:   65,
		},
		{
			name:     "empty allocation id",
			mutate:   func(a *Allocation) { a.AllocationIDBytes = nil },
			field:    "allocation id",
			expected: testAllocIDLen,
			actual:   0,
		},
		{
			name:     "short host connection data",
			mutate:   func(a *Allocation) { a.HostConnectionData = gonull.NewNullable(zeroBytes(10)) },
			field:    "host connection data",
			expected: testConnDataLen,
			actual:   10,
		},
	}

	for _, c := range cases {
		a := joinAllocation()
		c.mutate(a)

		d, err := b.ForPlayer(a)
		assert.Nil(t, d, c.name)

		var lenErr *relaykey.InvalidRecordLengthError
		require.ErrorAs(t, err, &lenErr, c.name)
		assert.Equal(t, c.field, lenErr.Field, c.name)
		assert.Equal(t, c.expected, lenErr.Expected, c.name)
		assert.Equal(t, c.actual, lenErr.Actual, c.name)
	}
}

func TestHostExampleShortConnectionData(t *testing.T) {
	b := newTestBuilder(t)

	a := hostAllocation()
	a.ConnectionData = zeroBytes(63)

	_, err := b.ForHost(a)

	var lenErr *relaykey.InvalidRecordLengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 64, lenErr.Expected)
	assert.Equal(t, 63, lenErr.Actual)
}

func TestDescriptorDoesNotAliasAllocation(t *testing.T) {
	b := newTestBuilder(t)
	a := joinAllocation()

	d, err := b.ForPlayer(a)
	require.NoError(t, err)

	a.ConnectionData[0] = 0xFF
	a.HostConnectionData.Val[0] = 0xFF
	a.Key[0] = 0xFF
	a.AllocationIDBytes[0] = 0xFF

	assert.Equal(t, byte(0x01), d.LocalConnectionData.Bytes()[0])
	assert.Equal(t, byte(0x02), d.RemoteConnectionData.Bytes()[0])
	assert.Equal(t, byte(0x00), d.Key.Bytes()[0])
	assert.Equal(t, byte(0xA1), d.AllocationID.Bytes()[0])
}

func TestSuccessiveNoncesDiffer(t *testing.T) {
	b := newTestBuilder(t)
	a := hostAllocation()

	d1, err := b.ForHost(a)
	require.NoError(t, err)
	d2, err := b.ForHost(a)
	require.NoError(t, err)
	d3, err := b.ForPlayer(joinAllocation())
	require.NoError(t, err)

	assert.NotEqual(t, d1.Nonce(), d2.Nonce())
	assert.NotEqual(t, d2.Nonce(), d3.Nonce())
	assert.NotEqual(t, d1.Nonce(), d3.Nonce())
}

func TestBuildersShareProcessNonces(t *testing.T) {
	b1 := newTestBuilder(t)
	b2 := newTestBuilder(t)

	d1, err := b1.ForHost(hostAllocation())
	require.NoError(t, err)
	d2, err := b2.ForHost(hostAllocation())
	require.NoError(t, err)

	assert.NotEqual(t, d1.Nonce(), d2.Nonce())
}

func TestConcurrentBuilds(t *testing.T) {
	const n = 64

	b := newTestBuilder(t)

	var (
		wg     sync.WaitGroup
		nonces = make([]uint64, n)
		errs   = make([]error, n)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			var d *Descriptor
			if i%2 == 0 {
				d, errs[i] = b.ForHost(hostAllocation())
			} else {
				d, errs[i] = b.ForPlayer(joinAllocation())
			}
			if d != nil {
				nonces[i] = d.Nonce()
			}
		}(i)
	}

	wg.Wait()

	seen := make(map[uint64]struct{}, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		seen[nonces[i]] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestWithNonceSource(t *testing.T) {
	b := newTestBuilder(t, WithNonceSource(fixedNonce(42)))

	d, err := b.ForHost(hostAllocation())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), d.Nonce())

	_, err = NewBuilder(WithNonceSource(nil))
	assert.Error(t, err)
}

func TestWithProtocolSecure(t *testing.T) {
	p := testProtocol
	p.ConnectionType = ConnectionTypeDTLS

	b := newTestBuilder(t, WithProtocol(p))

	a := hostAllocation()
	dtls := ServerEndpoint{Host: "1.2.3.4", Port: 7778, ConnectionType: ConnectionTypeDTLS}
	a.ServerEndpoints = append(a.ServerEndpoints, dtls)

	d, err := b.ForHost(a)
	require.NoError(t, err)
	assert.Equal(t, dtls, d.Endpoint)
	assert.True(t, d.Secure)
}

func TestWithProtocolInvalid(t *testing.T) {
	p := testProtocol
	p.ConnectionDataLength = 0

	_, err := NewBuilder(WithProtocol(p))
	assert.Error(t, err)
}

func TestDefaultBuilderLengths(t *testing.T) {
	// Test allocations are sized for testProtocol, not for the default one
	_, err := HostDescriptor(hostAllocation())
	assert.ErrorIs(t, err, relaykey.ErrInvalidRecordLength)

	a := joinAllocation()
	a.ConnectionData = zeroBytes(DefaultConnectionDataLength)
	a.HostConnectionData = gonull.NewNullable(filledBytes(DefaultConnectionDataLength, 3))

	d, err := PlayerDescriptor(a)
	require.NoError(t, err)
	assert.Equal(t, DefaultConnectionDataLength, d.RemoteConnectionData.Len())
}

func TestBuilderLogs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := newTestBuilder(t, WithLogger(l), WithNonceSource(fixedNonce(7)))

	d, err := b.ForHost(hostAllocation())
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "built relay descriptor", entry["msg"])
	assert.Equal(t, "host", entry["role"])
	assert.Equal(t, "1.2.3.4:7777", entry["endpoint"])
	assert.Equal(t, d.Key.Debug(), entry["key"])
	assert.EqualValues(t, 7, entry["nonce"])
	assert.NotContains(t, buf.String(), d.Key.HexString(), "raw key must never be logged")
}

func TestDescriptorJSON(t *testing.T) {
	b := newTestBuilder(t, WithNonceSource(fixedNonce(9)))

	d, err := b.ForPlayer(joinAllocation())
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "player", out["role"])
	assert.EqualValues(t, 9, out["nonce"])
	assert.Equal(t, false, out["secure"])
	assert.Equal(t, "conndata:"+d.RemoteConnectionData.HexString(), out["remote_connection_data"])
}
