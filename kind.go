package replica

import (
	"reflect"
	"regexp"
	"time"
)

// Kind is the structural classification of a value.
type Kind uint8

// Kinds, in dispatch priority order after KindPrimitive.
const (
	KindPrimitive Kind = iota
	KindSequence
	KindAsync
	KindPattern
	KindInstant
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindAsync:
		return "async"
	case KindPattern:
		return "pattern"
	case KindInstant:
		return "instant"
	case KindGeneric:
		return "generic"
	default:
		return "primitive"
	}
}

var (
	timeType   = reflect.TypeFor[time.Time]()
	regexpType = reflect.TypeFor[*regexp.Regexp]()
)

// KindOf classifies v. The first matching shape wins, in the order
// Sequence, Async, Pattern, Instant, Generic.
func KindOf(v any) Kind {
	if v == nil || IsUndefined(v) {
		return KindPrimitive
	}
	if c, ok := v.(Composite); ok {
		return compositeKind(c)
	}
	return nativeKind(reflect.TypeOf(v))
}

// compositeKind classifies a value of the attribute model by shape.
func compositeKind(c Composite) Kind {
	if _, ok := c.(Sequential); ok {
		return KindSequence
	}
	if _, ok := c.(Settleable); ok {
		return KindAsync
	}
	if _, ok := c.(Matcher); ok {
		return KindPattern
	}
	if _, ok := c.(Timed); ok {
		return KindInstant
	}
	return KindGeneric
}

// nativeKind classifies a plain Go type by its reflect kind.
func nativeKind(t reflect.Type) Kind {
	switch {
	case t == timeType:
		return KindInstant
	case t == regexpType:
		return KindPattern
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map, reflect.Struct, reflect.Pointer, reflect.Interface:
		return KindGeneric
	default:
		return KindPrimitive
	}
}
