package replica

import (
	"fmt"
	"runtime"
	"strings"
)

// undefined is the type of the absent-value marker.
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the absent-value marker. It is distinct from nil, which is the
// null marker, and both pass through cloning unchanged.
var Undefined any = undefined{}

// IsUndefined reports whether v is the absent-value marker.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Method is behavior a Template exposes to the objects built on it.
type Method func(self *Object, args ...any) (any, error)

// Template is the shared type template of Generic objects: a named method
// set with an optional parent. Templates are never cloned; a clone is built
// on the same Template as its source.
type Template struct {
	Name    string
	Parent  *Template
	methods map[string]Method
}

// NewTemplate creates a template inheriting from parent (which may be nil).
func NewTemplate(name string, parent *Template) *Template {
	return &Template{Name: name, Parent: parent, methods: make(map[string]Method)}
}

// Method registers fn under name and returns the template for chaining.
func (t *Template) Method(name string, fn Method) *Template {
	t.methods[name] = fn
	return t
}

// Lookup resolves name through the template chain.
func (t *Template) Lookup(name string) (Method, bool) {
	for cur := t; cur != nil; cur = cur.Parent {
		if fn, ok := cur.methods[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Is reports whether other is t or one of its ancestors.
func (t *Template) Is(other *Template) bool {
	for cur := t; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Built-in templates.
var (
	ObjectTemplate = NewTemplate("Object", nil)
	ErrorTemplate  = NewTemplate("Error", ObjectTemplate)
)

func init() {
	ErrorTemplate.Method("toString", func(self *Object, _ ...any) (any, error) {
		name, _ := self.Get("name")
		msg, _ := self.Get("message")
		if msg == nil || msg == "" {
			return fmt.Sprint(name), nil
		}
		return fmt.Sprintf("%v: %v", name, msg), nil
	})
}

// Object is a Generic composite: a template handle plus attributes.
type Object struct {
	Attributes
	template *Template
}

// NewObject creates an empty object built on t. A nil t yields an object
// with no inherited behavior.
func NewObject(t *Template) *Object {
	return &Object{template: t}
}

// Template returns the object's type template.
func (o *Object) Template() *Template {
	return o.template
}

// Call invokes the method name resolved through the template chain.
func (o *Object) Call(name string, args ...any) (any, error) {
	if o.template == nil {
		return nil, fmt.Errorf("method %q: object has no template", name)
	}
	fn, ok := o.template.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("method %q not found on %s", name, o.template.Name)
	}
	return fn(o, args...)
}

// String uses the template's toString method when one is reachable.
func (o *Object) String() string {
	if o.template != nil {
		if fn, ok := o.template.Lookup("toString"); ok {
			if s, err := fn(o); err == nil {
				return fmt.Sprint(s)
			}
		}
	}
	keys := o.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := o.Get(k)
		parts = append(parts, fmt.Sprintf("%s: %v", k, v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// NewError creates an error object on ErrorTemplate. Its name, message and
// stack live in non-enumerable attributes.
func NewError(message string) *Object {
	o := NewObject(ErrorTemplate)
	o.define(Attribute{Name: "name", Value: ErrorTemplate.Name, Writable: true, Configurable: true})
	o.define(Attribute{Name: "message", Value: message, Writable: true, Configurable: true})
	o.define(Attribute{Name: "stack", Value: captureStack(2), Writable: true, Configurable: true})
	return o
}

// NewCodedErrorObject creates an error object that also carries an
// enumerable code, the object-model counterpart of CodedError.
func NewCodedErrorObject(message, code string) *Object {
	o := NewError(message)
	o.define(Attribute{Name: "name", Value: "CodedError", Writable: true, Configurable: true})
	o.define(Attribute{Name: "code", Value: code, Enumerable: true, Writable: true, Configurable: true})
	return o
}

// captureStack renders the caller's stack, skipping skip frames.
func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "    at %s (%s:%d)\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
