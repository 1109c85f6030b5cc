package json

import (
	"testing"

	"github.com/zoobzio/replica"
)

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestDecodedDocument_Clone(t *testing.T) {
	c := New()

	var doc any
	if err := c.Unmarshal([]byte(`{"a":1,"c":[{"e":3,"g":78}]}`), &doc); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	cloned := replica.Clone(doc)

	src := doc.(map[string]any)
	src["c"].([]any)[0].(map[string]any)["g"] = 9999.0

	dst := cloned.(map[string]any)
	if g := dst["c"].([]any)[0].(map[string]any)["g"]; g != 78.0 {
		t.Errorf("clone g = %v, want 78", g)
	}
}

func TestMarshal_ClonedDocument(t *testing.T) {
	c := New()

	var doc any
	input := `{"address":{"country":"Sweden","town":"Lerum"},"name":"Paddy"}`
	if err := c.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	data, err := c.Marshal(replica.Clone(doc))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != input {
		t.Errorf("Marshal(clone) = %s, want %s", data, input)
	}
}

func TestNewIndented(t *testing.T) {
	c := NewIndented()

	data, err := c.Marshal(replica.Clone(map[string]any{"g": 78}))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "{\n  \"g\": 78\n}\n" {
		t.Errorf("Marshal() = %q", data)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v any
	if err := c.Unmarshal([]byte("invalid json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
