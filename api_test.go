package replica_test

import (
	"encoding/json"
	"testing"

	"github.com/zoobzio/replica"
)

// Model types satisfy the shapes they are classified by.
var (
	_ replica.Sequential = (*replica.Sequence)(nil)
	_ replica.Settleable = (*replica.Future)(nil)
	_ replica.Matcher    = (*replica.Pattern)(nil)
	_ replica.Timed      = (*replica.Instant)(nil)
	_ replica.Templated  = (*replica.Object)(nil)
)

// testCodec is a simple JSON codec for testing without importing replica/json.
type testCodec struct{}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

var _ replica.Codec = (*testCodec)(nil)

// --- Cloneable interface tests ---

type clonerTestStruct struct {
	Value   string
	Pointer *string
	Slice   []string
	Map     map[string]string
}

func (c clonerTestStruct) Clone() clonerTestStruct {
	out := clonerTestStruct{Value: c.Value}
	if c.Pointer != nil {
		p := *c.Pointer
		out.Pointer = &p
	}
	if c.Slice != nil {
		out.Slice = make([]string, len(c.Slice))
		copy(out.Slice, c.Slice)
	}
	if c.Map != nil {
		out.Map = make(map[string]string, len(c.Map))
		for k, v := range c.Map {
			out.Map[k] = v
		}
	}
	return out
}

var _ replica.Cloneable[clonerTestStruct] = clonerTestStruct{}

func TestCloneable_UsedByClone(t *testing.T) {
	str := "pointer"
	original := clonerTestStruct{
		Value:   "value",
		Pointer: &str,
		Slice:   []string{"a", "b"},
		Map:     map[string]string{"k": "v"},
	}

	cloned := replica.Clone(original)

	*cloned.Pointer = "modified"
	cloned.Slice[0] = "modified"
	cloned.Map["k"] = "modified"

	if *original.Pointer != "pointer" {
		t.Error("Pointer was not deep copied")
	}
	if original.Slice[0] != "a" {
		t.Error("Slice was not deep copied")
	}
	if original.Map["k"] != "v" {
		t.Error("Map was not deep copied")
	}
}

func TestCodec_DecodedGraphClones(t *testing.T) {
	var c replica.Codec = &testCodec{}

	var doc any
	if err := c.Unmarshal([]byte(`{"a":1,"c":[{"e":3},{"g":78}]}`), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	cloned := replica.Clone(doc)

	want, _ := c.Marshal(doc)
	got, err := c.Marshal(cloned)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Marshal(clone) = %s, want %s", got, want)
	}
}
