package relay

import (
	"context"
	"errors"
	"log/slog"

	"github.com/edup2p/relaysupport/types"
	"github.com/edup2p/relaysupport/types/relaykey"
)

type BuilderOption func(*Builder) error

// WithProtocol makes the Builder check credentials against, and select endpoints by, p.
func WithProtocol(p Protocol) BuilderOption {
	return func(b *Builder) error {
		if err := p.Validate(); err != nil {
			return err
		}
		b.proto = p
		return nil
	}
}

// WithNonceSource replaces the process-wide nonce counter.
func WithNonceSource(src NonceSource) BuilderOption {
	return func(b *Builder) error {
		if src == nil {
			return errors.New("nonce source cannot be nil")
		}
		b.nonces = src
		return nil
	}
}

func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		b.logger = l
		return nil
	}
}

// Builder turns allocations into descriptors.
//
// A Builder holds no mutable state of its own, and can be used from multiple goroutines.
type Builder struct {
	proto  Protocol
	nonces NonceSource
	logger *slog.Logger
}

func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		proto:  DefaultProtocol(),
		nonces: processNonces,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

var defaultBuilder = &Builder{
	proto:  DefaultProtocol(),
	nonces: processNonces,
}

// HostDescriptor builds a host's descriptor with the default protocol, see Builder.ForHost.
func HostDescriptor(a *Allocation) (*Descriptor, error) {
	return defaultBuilder.ForHost(a)
}

// PlayerDescriptor builds a joining player's descriptor with the default protocol, see Builder.ForPlayer.
func PlayerDescriptor(a *Allocation) (*Descriptor, error) {
	return defaultBuilder.ForPlayer(a)
}

func (b *Builder) Protocol() Protocol {
	return b.proto
}

func (b *Builder) L() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return slog.Default()
}

// ForHost builds the descriptor for the participant hosting the session.
//
// The host has no counterpart connection data of its own, so its connection data fills both the local and
// remote slot.
func (b *Builder) ForHost(a *Allocation) (*Descriptor, error) {
	if a == nil {
		return nil, &MissingFieldError{Field: "allocation"}
	}

	d, err := b.assemble(RoleHost, a)
	if err != nil {
		return nil, err
	}

	d.RemoteConnectionData = d.LocalConnectionData

	return b.finish(d), nil
}

// ForPlayer builds the descriptor for a participant that joined a host's allocation.
//
// The allocation must carry HostConnectionData, which becomes the remote connection data.
func (b *Builder) ForPlayer(a *Allocation) (*Descriptor, error) {
	if a == nil {
		return nil, &MissingFieldError{Field: "allocation"}
	}

	d, err := b.assemble(RolePlayer, a)
	if err != nil {
		return nil, err
	}

	if !a.HostConnectionData.Valid {
		return nil, &MissingFieldError{Field: "host connection data"}
	}

	d.RemoteConnectionData, err = relaykey.MakeConnectionData("host connection data", a.HostConnectionData.Val, b.proto.ConnectionDataLength)
	if err != nil {
		return nil, err
	}

	return b.finish(d), nil
}

// assemble fills everything that both roles share: the endpoint, the allocation id, own connection data,
// and the key.
func (b *Builder) assemble(role Role, a *Allocation) (*Descriptor, error) {
	endpoint, err := SelectEndpoint(a.ServerEndpoints, b.proto.ConnectionType)
	if err != nil {
		return nil, err
	}

	b.L().Log(context.Background(), types.LevelTrace, "selected relay endpoint",
		"role", role, "endpoint", endpoint.String(), "candidates", len(a.ServerEndpoints))

	allocID, err := relaykey.MakeAllocationID(a.AllocationIDBytes, b.proto.AllocationIDLength)
	if err != nil {
		return nil, err
	}

	connData, err := relaykey.MakeConnectionData("connection data", a.ConnectionData, b.proto.ConnectionDataLength)
	if err != nil {
		return nil, err
	}

	key, err := relaykey.MakeHMACKey(a.Key, b.proto.HMACKeyLength)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Endpoint:            endpoint,
		Version:             b.proto.Version,
		AllocationID:        allocID,
		LocalConnectionData: connData,
		Key:                 key,
		Secure:              b.proto.Secure(),
		role:                role,
	}, nil
}

// finish assigns the nonce; nothing may change the descriptor after this.
func (b *Builder) finish(d *Descriptor) *Descriptor {
	d.assignNonce(b.nonces)

	b.L().Debug("built relay descriptor",
		"role", d.role,
		"endpoint", d.Endpoint.String(),
		"allocation-id", d.AllocationID.Debug(),
		"local-conn", d.LocalConnectionData.Debug(),
		"remote-conn", d.RemoteConnectionData.Debug(),
		"key", d.Key.Debug(),
		"nonce", d.Nonce(),
	)

	return d
}
