// Package json provides a JSON codec implementation.
package json

import (
	"encoding/json"

	"github.com/zoobzio/replica"
)

// jsonCodec implements replica.Codec for JSON.
type jsonCodec struct {
	indent string
}

// New returns a compact JSON codec.
func New() replica.Codec {
	return &jsonCodec{}
}

// NewIndented returns a JSON codec that writes one value per line with
// two-space indentation and a trailing newline.
func NewIndented() replica.Codec {
	return &jsonCodec{indent: "  "}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON, indented when the codec was built by
// NewIndented.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	if c.indent == "" {
		return json.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", c.indent)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
