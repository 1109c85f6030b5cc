// Package testing provides test utilities for replica.
package testing

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/zoobzio/replica"
)

// NestedObject returns the object {a: 1, b: {c: 1, d: [{e: 3, f: [1, 2, 3, 4]}, {g: 78}]}}
// built from *replica.Object and *replica.Sequence values.
func NestedObject() *replica.Object {
	e := obj("e", 3, "f", replica.NewSequence(1, 2, 3, 4))
	g := obj("g", 78)
	b := obj("c", 1, "d", replica.NewSequence(e, g))
	return obj("a", 1, "b", b)
}

// NestedMap returns the same graph as NestedObject built from Go maps and slices.
func NestedMap() map[string]any {
	return map[string]any{
		"a": 1,
		"b": map[string]any{
			"c": 1,
			"d": []any{
				map[string]any{"e": 3, "f": []any{1, 2, 3, 4}},
				map[string]any{"g": 78},
			},
		},
	}
}

// CyclicObject returns an object whose "self" attribute points back at it.
func CyclicObject() *replica.Object {
	o := obj("name", "loop")
	_ = o.Set("self", o)
	return o
}

// ChristmasEve returns the instant 2018-12-24T10:33:30Z.
func ChristmasEve() *replica.Instant {
	return replica.NewInstant(time.Date(2018, time.December, 24, 10, 33, 30, 0, time.UTC))
}

// Ledger is a Go struct exercising every clone tag and an override.
type Ledger struct {
	Owner   string
	Entries []Entry
	Index   map[string]*Entry
	Shared  *Entry `clone:"shallow"`
	Scratch []byte `clone:"-"`
	Stamp   time.Time
}

// Entry is a Ledger line.
type Entry struct {
	Account string
	Amount  int64
	Tags    []string
}

// Money is a type that clones itself.
type Money struct {
	Units []int64
}

// Clone implements replica.Cloneable[Money].
func (m Money) Clone() Money {
	units := make([]int64, len(m.Units))
	copy(units, m.Units)
	return Money{Units: units}
}

var _ replica.Cloneable[Money] = Money{}

// NewLedger returns a populated Ledger.
func NewLedger() *Ledger {
	rent := &Entry{Account: "rent", Amount: -1200, Tags: []string{"home"}}
	return &Ledger{
		Owner: "alice",
		Entries: []Entry{
			{Account: "salary", Amount: 4000, Tags: []string{"work", "monthly"}},
			*rent,
		},
		Index:   map[string]*Entry{"rent": rent},
		Shared:  &Entry{Account: "shared"},
		Scratch: []byte("scratch"),
		Stamp:   time.Date(2018, time.December, 24, 10, 33, 30, 0, time.UTC),
	}
}

func obj(kv ...any) *replica.Object {
	o := replica.NewObject(replica.ObjectTemplate)
	for i := 0; i+1 < len(kv); i += 2 {
		_ = o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

// AssertSameShape fails t when src and dst have different fingerprints.
func AssertSameShape(t testing.TB, src, dst any) {
	t.Helper()
	want, err := replica.Fingerprint(src)
	if err != nil {
		t.Fatalf("Fingerprint(src) error: %v", err)
	}
	got, err := replica.Fingerprint(dst)
	if err != nil {
		t.Fatalf("Fingerprint(dst) error: %v", err)
	}
	if got != want {
		t.Errorf("clone fingerprint %s differs from source %s", got, want)
	}
}

// AssertDisjoint fails t when any mutable reference reachable from src is
// also reachable from dst. Fields tagged clone:"shallow" are not followed,
// and compiled regexps and templates may be shared.
func AssertDisjoint(t testing.TB, src, dst any) {
	t.Helper()
	seen := make(map[ref]string)
	collect(reflect.ValueOf(&src).Elem(), "src", seen, nil)
	collect(reflect.ValueOf(&dst).Elem(), "dst", nil, func(r ref, path string) {
		if srcPath, ok := seen[r]; ok {
			t.Errorf("%s shares %s with %s", path, r.typ, srcPath)
		}
	})
}

var immutableTypes = map[reflect.Type]bool{
	reflect.TypeFor[*regexp.Regexp]():    true,
	reflect.TypeFor[*replica.Template](): true,
}

type ref struct {
	typ reflect.Type
	ptr uintptr
}

// collect walks v, recording references into seen or reporting them to visit.
func collect(v reflect.Value, path string, seen map[ref]string, visit func(ref, string)) {
	visited := make(map[ref]bool)
	var walk func(v reflect.Value, path string)
	note := func(v reflect.Value, path string) bool {
		r := ref{typ: v.Type(), ptr: v.Pointer()}
		if visited[r] {
			return false
		}
		visited[r] = true
		if seen != nil {
			seen[r] = path
		}
		if visit != nil {
			visit(r, path)
		}
		return true
	}

	walk = func(v reflect.Value, path string) {
		if !v.IsValid() || immutableTypes[v.Type()] {
			return
		}
		if v.Kind() == reflect.Interface {
			if !v.IsNil() {
				walk(v.Elem(), path)
			}
			return
		}

		if v.CanInterface() {
			if c, ok := v.Interface().(replica.Composite); ok && v.Kind() == reflect.Pointer && !v.IsNil() {
				if !note(v, path) {
					return
				}
				if s, ok := c.(replica.Sequential); ok {
					for i := 0; i < s.Len(); i++ {
						walk(reflect.ValueOf(s.At(i)), path+"["+strconv.Itoa(i)+"]")
					}
				}
				attrs := c.Attrs()
				for _, name := range attrs.Names() {
					val, _ := attrs.Get(name)
					walk(reflect.ValueOf(val), path+"."+name)
				}
				if v.Elem().Kind() == reflect.Struct {
					walk(v.Elem(), path)
				}
				return
			}
		}

		switch v.Kind() {
		case reflect.Pointer:
			if v.IsNil() || !note(v, path) {
				return
			}
			walk(v.Elem(), path)
		case reflect.Map:
			if v.IsNil() || !note(v, path) {
				return
			}
			iter := v.MapRange()
			for iter.Next() {
				walk(iter.Value(), path+"["+fmt.Sprint(iter.Key())+"]")
			}
		case reflect.Slice:
			if v.IsNil() || v.Cap() == 0 || !note(v, path) {
				return
			}
			for i := 0; i < v.Len(); i++ {
				walk(v.Index(i), path+"["+strconv.Itoa(i)+"]")
			}
		case reflect.Array:
			for i := 0; i < v.Len(); i++ {
				walk(v.Index(i), path+"["+strconv.Itoa(i)+"]")
			}
		case reflect.Struct:
			t := v.Type()
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				if !f.IsExported() || f.Tag.Get("clone") == "shallow" {
					continue
				}
				walk(v.Field(i), path+"."+f.Name)
			}
		}
	}

	walk(v, path)
}

