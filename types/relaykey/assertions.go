package relaykey

import (
	"encoding"

	"go.mongodb.org/mongo-driver/bson"
)

type record interface {
	IsZero() bool
	Len() int
	Bytes() []byte
	Debug() string
	HexString() string
}

type canTextMarshal interface {
	// We need text encoding for JSON and BSON (currently)

	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

type canBsonMarshal interface {
	bson.ValueMarshaler
	bson.ValueUnmarshaler
}

var (
	_ record = AllocationID{}
	_ record = ConnectionData{}
	_ record = HMACKey{}

	_ canTextMarshal = &AllocationID{}
	_ canTextMarshal = &ConnectionData{}
	_ canTextMarshal = &HMACKey{}

	// Descriptors get persisted alongside session state by callers.
	_ canBsonMarshal = &AllocationID{}
	_ canBsonMarshal = &ConnectionData{}
	_ canBsonMarshal = &HMACKey{}
)
