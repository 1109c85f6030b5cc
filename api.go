// Package replica deep-copies heterogeneous in-memory object graphs.
//
// A clone is structurally identical to its source and shares no mutable
// reference with it. Only what is meant to be shared stays shared: function
// code, type templates and platform handles such as channels.
//
// # Kinds
//
// Every value is classified into exactly one kind at each level of the walk:
//
//   - Primitive: nil (the null marker), Undefined (the absent marker), bools,
//     numbers, strings, funcs, channels
//   - Sequence: ordered, index-addressed collections (*Sequence, Go slices and arrays)
//   - Async: values that settle later (*Future)
//   - Pattern: compiled expressions (*Pattern, *regexp.Regexp)
//   - Instant: points in time (*Instant, time.Time)
//   - Generic: everything else (*Object, maps, structs, pointers)
//
// Classification is structural. A type is a Sequence because it exposes the
// Sequence shape, not because it is *Sequence, so foreign implementations of
// the shapes below classify and clone like the built-in ones.
//
// # Basic Usage
//
//	src := replica.NewObject(replica.ObjectTemplate)
//	src.Set("a", 1)
//	src.Set("c", replica.NewSequence(map[string]any{"e": 3, "g": 78}))
//
//	dst := replica.Clone(src)
//
// # Attributes
//
// Composite values carry attribute descriptors (enumerable, writable,
// configurable). Cloning copies every own attribute, including hidden ones,
// and preserves the metadata verbatim; only the value is cloned.
//
// # Futures
//
// Cloning a pending *Future returns a new pending future immediately. When
// the source settles, the clone settles with a clone of the payload or of
// the rejection reason.
//
// # Cycles
//
// Cyclic graphs are not supported. A cyclic input exhausts the cloner's
// depth budget and fails with ErrDepthExceeded; WithCycleDetection reports
// ErrCycle as soon as the cycle is entered instead.
//
// # Go Values
//
// Ordinary Go values clone through the same dispatch and keep their static
// types. Types with a Clone method returning their own type are cloned by
// that method. Struct fields accept a clone tag:
//
//	type Session struct {
//	    ID     string
//	    Cache  *Cache   `clone:"shallow"` // shared with the source
//	    Cursor *Cursor  `clone:"-"`       // left zero on the clone
//	}
//
// Go types that implement Composite clone by shape. A Generic one keeps its
// Go type and fields and gets a rebuilt attribute table. Any other shape
// clones into its model type, so a pointer to it held in a slot of its own
// type needs a Clone method; without one the clone fails with ErrUnsupported.
// Compiled *regexp.Regexp values are shared.
//
// # Codec Providers
//
// The following codec implementations are available as subpackages and are
// used by the invite package and the replica command:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package replica

import "time"

// Cloneable allows types to provide deep copy logic.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. When a Go type implements it, the graph
// walk calls it instead of copying the value field by field:
//
//	func (o Order) Clone() Order {
//	    items := make([]Item, len(o.Items))
//	    copy(items, o.Items)
//	    return Order{ID: o.ID, Items: items}
//	}
type Cloneable[T any] interface {
	Clone() T
}

// Composite is any structured value that carries attribute descriptors.
type Composite interface {
	Attrs() *Attributes
}

// Sequential is the Sequence shape.
type Sequential interface {
	Composite
	Len() int
	At(i int) any
}

// Settleable is the Async shape: a value that registers completion handlers.
type Settleable interface {
	Composite
	Then(onFulfilled, onRejected func(any))
}

// Matcher is the Pattern shape.
type Matcher interface {
	Composite
	Source() string
	Flags() Flags
	LastIndex() int
}

// Timed is the Instant shape.
type Timed interface {
	Composite
	Time() time.Time
}

// Templated is implemented by Generic composites that expose their type template.
type Templated interface {
	Composite
	Template() *Template
}
