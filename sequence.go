package replica

// Sequence is an ordered, index-addressed, variable-length collection.
// Extra attributes may be attached alongside the elements.
type Sequence struct {
	Attributes
	elems []any
}

// NewSequence creates a sequence holding elems in order.
func NewSequence(elems ...any) *Sequence {
	s := &Sequence{elems: make([]any, len(elems))}
	copy(s.elems, elems)
	return s
}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.elems)
}

// At returns the element at index i, or Undefined when i is out of range.
func (s *Sequence) At(i int) any {
	if i < 0 || i >= len(s.elems) {
		return Undefined
	}
	return s.elems[i]
}

// Set replaces the element at index i, growing the sequence with Undefined
// holes when i is past the end.
func (s *Sequence) Set(i int, v any) {
	if i < 0 {
		return
	}
	for len(s.elems) <= i {
		s.elems = append(s.elems, Undefined)
	}
	s.elems[i] = v
}

// Push appends elements and returns the new length.
func (s *Sequence) Push(elems ...any) int {
	s.elems = append(s.elems, elems...)
	return len(s.elems)
}

// Elements returns a copy of the element slice.
func (s *Sequence) Elements() []any {
	out := make([]any, len(s.elems))
	copy(out, s.elems)
	return out
}
