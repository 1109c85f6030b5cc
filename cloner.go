package replica

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxDepth is the default nesting budget of a Cloner.
const DefaultMaxDepth = 10000

// Option configures a Cloner.
type Option func(*Cloner)

// WithMaxDepth sets the nesting budget. Graphs nested deeper, and every
// cyclic graph, fail with ErrDepthExceeded. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *Cloner) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithCycleDetection makes the cloner track the composites on the current
// path and fail with ErrCycle when one is entered twice.
func WithCycleDetection() Option {
	return func(c *Cloner) {
		c.detectCycles = true
	}
}

// WithName labels the cloner on emitted events.
func WithName(name string) Option {
	return func(c *Cloner) {
		c.name = name
	}
}

// Cloner deep-copies object graphs. A Cloner is immutable after
// construction and safe for concurrent use.
type Cloner struct {
	name         string
	maxDepth     int
	detectCycles bool
}

// NewCloner creates a Cloner.
func NewCloner(opts ...Option) *Cloner {
	c := &Cloner{
		name:     "replica",
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone returns a deep copy of v.
//
// The walk itself is synchronous. Futures reachable from v are cloned into
// pending futures that settle once their sources do.
func (c *Cloner) Clone(ctx context.Context, v any) (any, error) {
	return cloneAs(ctx, c, v)
}

// cloneAs runs one walk over v, keeping the static type T.
func cloneAs[T any](ctx context.Context, c *Cloner, v T) (out T, err error) {
	scan[T]()
	op := uuid.NewString()
	kind := KindOf(v)
	typeName := typeNameOf(v)
	start := time.Now()
	emitCloneStart(ctx, op, c.name, kind, typeName)

	w := c.newWalk(ctx, op)
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(walkFailure)
			if !ok {
				panic(r)
			}
			var zero T
			out, err = zero, f.err
		}
		emitCloneComplete(ctx, op, c.name, kind, typeName, w.nodes, time.Since(start), err)
	}()

	res := w.cloneValue(reflect.ValueOf(&v).Elem())
	if cloned, ok := res.Interface().(T); ok {
		out = cloned
	}
	return out, nil
}

func typeNameOf(v any) string {
	if v == nil {
		return "nil"
	}
	if o, ok := v.(*Object); ok && o != nil && o.template != nil {
		return o.template.Name
	}
	return fmt.Sprintf("%T", v)
}

// walkFailure carries a failure out of the recursion.
type walkFailure struct {
	err error
}

// visitKey identifies a reference on the current path.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
}

// walk is the private state of one Clone call.
type walk struct {
	c     *Cloner
	ctx   context.Context
	op    string
	depth int
	nodes int
	path  map[visitKey]struct{}
}

func (c *Cloner) newWalk(ctx context.Context, op string) *walk {
	w := &walk{c: c, ctx: ctx, op: op}
	if c.detectCycles {
		w.path = make(map[visitKey]struct{})
	}
	return w
}

func (w *walk) fail(err error) {
	panic(walkFailure{err: err})
}

// enter accounts for one composite level; the returned func leaves it.
func (w *walk) enter(rv reflect.Value) func() {
	w.depth++
	w.nodes++
	if w.depth > w.c.maxDepth {
		w.fail(newCodedError(ErrDepthExceeded, CodeDepthExceeded,
			"graph nested deeper than %d levels; cyclic input is not supported", w.c.maxDepth))
	}

	if w.path == nil || !hasIdentity(rv) {
		return w.leave
	}
	key := visitKey{typ: rv.Type(), ptr: rv.Pointer()}
	if _, seen := w.path[key]; seen {
		w.fail(newCodedError(ErrCycle, CodeCycle, "cyclic reference to %s", rv.Type()))
	}
	w.path[key] = struct{}{}
	return func() {
		delete(w.path, key)
		w.leave()
	}
}

func (w *walk) leave() {
	w.depth--
}

func hasIdentity(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		return !rv.IsNil()
	case reflect.Slice:
		return rv.Len() > 0
	default:
		return false
	}
}

var (
	attributesType = reflect.TypeFor[Attributes]()
	templateType   = reflect.TypeFor[*Template]()
	compositeType  = reflect.TypeFor[Composite]()
	objectType     = reflect.TypeFor[*Object]()
)

// cloneValue clones src keeping its static type.
func (w *walk) cloneValue(src reflect.Value) reflect.Value {
	t := src.Type()

	switch t {
	case attributesType:
		attrs := src.Interface().(Attributes)
		var out Attributes
		w.copyAttributes(&attrs, &out)
		return reflect.ValueOf(out)
	case timeType, templateType, regexpType:
		// Shared. A compiled regexp is immutable.
		return src
	}

	switch t.Kind() {
	case reflect.Interface:
		if src.IsNil() {
			return src
		}
		out := w.cloneDynamic(src.Elem())
		if !out.Type().AssignableTo(t) {
			// A foreign shape rebuilt as a model type that t cannot hold.
			out = w.cloneValue(src.Elem())
		}
		dst := reflect.New(t).Elem()
		dst.Set(out)
		return dst
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if src.IsNil() {
			return src
		}
	case reflect.Array, reflect.Struct:
	default:
		// Primitives, funcs, channels and unsafe pointers are shared.
		return src
	}

	if t.Kind() == reflect.Pointer && t.Implements(compositeType) {
		return w.cloneTypedComposite(src)
	}
	return w.cloneNative(src)
}

// cloneTypedComposite clones a composite held in a slot of its own concrete
// type. Kind dispatch may rebuild a foreign shape as a model type; when t
// cannot hold that result, t must implement Cloneable.
func (w *walk) cloneTypedComposite(src reflect.Value) reflect.Value {
	t := src.Type()
	if plan := planFor(t); plan.override >= 0 {
		return src.Method(plan.override).Call(nil)[0]
	}
	out := reflect.ValueOf(w.cloneComposite(src.Interface().(Composite)))
	if out.Type() != t {
		w.fail(newCodedError(ErrUnsupported, CodeUnsupported,
			"%s clones as %s; implement Cloneable[%s] to keep its type", t, out.Type(), t))
	}
	return out
}

// cloneNative clones a Go value by its reflect kind.
func (w *walk) cloneNative(src reflect.Value) reflect.Value {
	t := src.Type()
	plan := planFor(t)
	if plan.flat {
		return src
	}
	if plan.override >= 0 {
		return src.Method(plan.override).Call(nil)[0]
	}

	defer w.enter(src)()

	switch t.Kind() {
	case reflect.Pointer:
		dst := reflect.New(t.Elem())
		dst.Elem().Set(w.cloneValue(src.Elem()))
		return dst

	case reflect.Slice:
		dst := reflect.MakeSlice(t, src.Len(), src.Len())
		if isFlat(t.Elem()) {
			reflect.Copy(dst, src)
			return dst
		}
		for i := 0; i < src.Len(); i++ {
			dst.Index(i).Set(w.cloneValue(src.Index(i)))
		}
		return dst

	case reflect.Array:
		dst := reflect.New(t).Elem()
		for i := 0; i < src.Len(); i++ {
			dst.Index(i).Set(w.cloneValue(src.Index(i)))
		}
		return dst

	case reflect.Map:
		// Keys are comparable and keep their identity.
		dst := reflect.MakeMapWithSize(t, src.Len())
		iter := src.MapRange()
		for iter.Next() {
			dst.SetMapIndex(iter.Key(), w.cloneValue(iter.Value()))
		}
		return dst

	default: // reflect.Struct
		dst := reflect.New(t).Elem()
		// Unexported state is carried by value.
		dst.Set(src)
		for _, f := range plan.fields {
			field := dst.FieldByIndex(f.index)
			if !field.CanSet() {
				continue
			}
			switch f.mode {
			case fieldDeep:
				field.Set(w.cloneValue(src.FieldByIndex(f.index)))
			case fieldSkip:
				field.SetZero()
			}
		}
		return dst
	}
}

// cloneDynamic clones the dynamic value held by an interface.
func (w *walk) cloneDynamic(v reflect.Value) reflect.Value {
	if !v.CanInterface() {
		return v
	}
	iface := v.Interface()
	if IsUndefined(iface) {
		return v
	}
	if c, ok := iface.(Composite); ok {
		if isNilPointer(v) {
			return v
		}
		if plan := planFor(v.Type()); plan.override >= 0 {
			return v.Method(plan.override).Call(nil)[0]
		}
		return reflect.ValueOf(w.cloneComposite(c))
	}
	return w.cloneValue(v)
}

func isNilPointer(v reflect.Value) bool {
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// clone clones a dynamically typed value.
func (w *walk) clone(v any) any {
	if v == nil {
		return nil
	}
	return w.cloneDynamic(reflect.ValueOf(v)).Interface()
}

// cloneComposite builds the target container for the source's kind, then
// copies every own attribute onto it.
func (w *walk) cloneComposite(src Composite) Composite {
	rv := reflect.ValueOf(src)
	if compositeKind(src) == KindGeneric && rv.Type() != objectType {
		return w.cloneForeign(rv)
	}

	defer w.enter(rv)()

	var dst Composite
	switch s := src.(type) {
	case Sequential:
		seq := &Sequence{elems: make([]any, 0, s.Len())}
		for i := 0; i < s.Len(); i++ {
			seq.elems = append(seq.elems, w.clone(s.At(i)))
		}
		dst = seq
	case Settleable:
		dst = w.cloneFuture(s)
	case Matcher:
		dst = w.clonePattern(s)
	case Timed:
		dst = NewInstant(s.Time())
	default:
		var t *Template
		if tt, ok := src.(Templated); ok {
			t = tt.Template()
		}
		dst = NewObject(t)
	}

	w.copyAttributes(src.Attrs(), dst.Attrs())
	return dst
}

// cloneForeign clones a Generic composite other than *Object. The Go value
// is cloned by kind, keeping its type and fields. An attribute table the
// walk did not reach, and so still shares storage with the source, is then
// rebuilt from the source's.
func (w *walk) cloneForeign(src reflect.Value) Composite {
	srcAttrs := src.Interface().(Composite).Attrs()
	dst := w.cloneNative(src).Interface().(Composite)
	attrs := dst.Attrs()
	if attrs == srcAttrs {
		w.fail(newCodedError(ErrUnsupported, CodeUnsupported,
			"%s shares its attributes with its clone; implement Cloneable[%s]", src.Type(), src.Type()))
	}
	if attrs.shares(srcAttrs) {
		*attrs = Attributes{}
		w.copyAttributes(srcAttrs, attrs)
	}
	return dst
}

// copyAttributes defines a clone of every own attribute of src on dst,
// keeping each descriptor's metadata.
func (w *walk) copyAttributes(src, dst *Attributes) {
	for _, name := range src.Names() {
		attr, _ := src.Descriptor(name)
		attr.Value = w.clone(attr.Value)
		dst.define(attr)
	}
}

func (w *walk) clonePattern(src Matcher) *Pattern {
	p, err := NewPattern(src.Source(), src.Flags())
	if err != nil {
		w.fail(err)
	}
	p.lastIndex = src.LastIndex()
	return p
}

// cloneFuture returns a pending future settled from src's settlement.
// The payload is cloned by a fresh walk when src settles.
func (w *walk) cloneFuture(src Settleable) *Future {
	dst := NewFuture()
	c, op := w.c, w.op
	ctx := context.WithoutCancel(w.ctx)

	src.Then(func(v any) {
		out, err := cloneAs(ctx, c, v)
		if err != nil {
			dst.Reject(err)
			emitFutureSettled(ctx, op, Rejected, err)
			return
		}
		dst.Resolve(out)
		emitFutureSettled(ctx, op, Fulfilled, nil)
	}, func(reason any) {
		out, err := cloneAs(ctx, c, reason)
		if err != nil {
			dst.Reject(err)
			emitFutureSettled(ctx, op, Rejected, err)
			return
		}
		dst.Reject(out)
		emitFutureSettled(ctx, op, Rejected, nil)
	})
	return dst
}
