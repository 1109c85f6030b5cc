package replica

import (
	"reflect"
	"testing"
)

func TestSequence(t *testing.T) {
	s := NewSequence(1, 2)

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !IsUndefined(s.At(5)) || !IsUndefined(s.At(-1)) {
		t.Error("out of range At should be Undefined")
	}

	if n := s.Push(3, 4); n != 4 {
		t.Errorf("Push() = %d, want 4", n)
	}

	s.Set(6, "x")
	if s.Len() != 7 || !IsUndefined(s.At(5)) || s.At(6) != "x" {
		t.Errorf("Set past end = %v", s.Elements())
	}
}

func TestSequence_ElementsIsCopy(t *testing.T) {
	elems := []any{1, 2}
	s := NewSequence(elems...)
	elems[0] = 9

	got := s.Elements()
	if !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("Elements() = %v", got)
	}
	got[0] = 9
	if s.At(0) != 1 {
		t.Error("Elements should return a copy")
	}
}
