package relaykey

import (
	"encoding"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func textMarshalBson(val encoding.TextMarshaler) (bsontype.Type, []byte, error) {
	textBytes, err := val.MarshalText()
	if err != nil {
		return 0, nil, err
	}

	return bson.MarshalValue(string(textBytes))
}

func textUnmarshalBson(val encoding.TextUnmarshaler, b bsontype.Type, bytes []byte) error {
	var s = new(string)

	if err := bson.UnmarshalValue(b, bytes, s); err != nil {
		return err
	}

	return val.UnmarshalText([]byte(*s))
}

func (a AllocationID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return textMarshalBson(a)
}

func (a *AllocationID) UnmarshalBSONValue(b bsontype.Type, bytes []byte) error {
	return textUnmarshalBson(a, b, bytes)
}

func (c ConnectionData) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return textMarshalBson(c)
}

func (c *ConnectionData) UnmarshalBSONValue(b bsontype.Type, bytes []byte) error {
	return textUnmarshalBson(c, b, bytes)
}

func (k HMACKey) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return textMarshalBson(k)
}

func (k *HMACKey) UnmarshalBSONValue(b bsontype.Type, bytes []byte) error {
	return textUnmarshalBson(k, b, bytes)
}
