// Package bson provides a BSON codec implementation.
package bson

import (
	"github.com/zoobzio/replica"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements replica.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. BSON documents are always maps or structs at
// the root; top-level sequences fail to encode.
func New() replica.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. Documents decoded into an untyped
// target become bson.D values.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
