package replica

import "reflect"

// Attribute is an attribute's value paired with its visibility and mutability metadata.
type Attribute struct {
	Name         string
	Value        any
	Enumerable   bool // listed by Keys
	Writable     bool // Set may replace Value
	Configurable bool // Define may redefine, Delete may remove
}

// Attributes is an insertion-ordered table of attribute descriptors.
// The zero value is an empty table ready for use. It is not safe for
// concurrent mutation.
type Attributes struct {
	order  []string
	byName map[string]*Attribute
}

// Define adds an attribute or redefines an existing configurable one.
func (a *Attributes) Define(attr Attribute) error {
	if existing, ok := a.byName[attr.Name]; ok {
		if !existing.Configurable {
			return newAttributeError(ErrNotConfigurable, "define", attr.Name)
		}
		*existing = attr
		return nil
	}
	a.define(attr)
	return nil
}

// shares reports whether a and b are backed by the same descriptor storage.
func (a *Attributes) shares(b *Attributes) bool {
	return a.byName != nil && reflect.ValueOf(a.byName).UnsafePointer() == reflect.ValueOf(b.byName).UnsafePointer()
}

// define installs attr without checks. Only used on tables under construction.
func (a *Attributes) define(attr Attribute) {
	if a.byName == nil {
		a.byName = make(map[string]*Attribute)
	}
	if existing, ok := a.byName[attr.Name]; ok {
		*existing = attr
		return
	}
	stored := attr
	a.byName[attr.Name] = &stored
	a.order = append(a.order, attr.Name)
}

// Set assigns v to name. A missing attribute is created enumerable,
// writable and configurable.
func (a *Attributes) Set(name string, v any) error {
	if existing, ok := a.byName[name]; ok {
		if !existing.Writable {
			return newAttributeError(ErrNotWritable, "set", name)
		}
		existing.Value = v
		return nil
	}
	a.define(Attribute{Name: name, Value: v, Enumerable: true, Writable: true, Configurable: true})
	return nil
}

// Get returns the value of name.
func (a *Attributes) Get(name string) (any, bool) {
	attr, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return attr.Value, true
}

// Descriptor returns a copy of the full descriptor of name.
func (a *Attributes) Descriptor(name string) (Attribute, bool) {
	attr, ok := a.byName[name]
	if !ok {
		return Attribute{}, false
	}
	return *attr, true
}

// Has reports whether name is an own attribute.
func (a *Attributes) Has(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// Delete removes a configurable attribute. Deleting a missing attribute is a no-op.
func (a *Attributes) Delete(name string) error {
	attr, ok := a.byName[name]
	if !ok {
		return nil
	}
	if !attr.Configurable {
		return newAttributeError(ErrNotConfigurable, "delete", name)
	}
	delete(a.byName, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return nil
}

// Names returns every own attribute name, enumerable or not, in insertion order.
func (a *Attributes) Names() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Keys returns the enumerable attribute names in insertion order.
func (a *Attributes) Keys() []string {
	keys := make([]string, 0, len(a.order))
	for _, name := range a.order {
		if a.byName[name].Enumerable {
			keys = append(keys, name)
		}
	}
	return keys
}

// Len returns the number of own attributes.
func (a *Attributes) Len() int {
	return len(a.order)
}

// Attrs returns the table itself so that types embedding Attributes
// satisfy Composite.
func (a *Attributes) Attrs() *Attributes {
	return a
}
