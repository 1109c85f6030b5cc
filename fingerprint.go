package replica

import (
	"encoding/hex"
	"fmt"
	"hash"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex-encoded BLAKE2b-256 digest of v's structure.
//
// Two graphs have the same fingerprint when they hold equal primitives in
// the same shape, with the same attribute metadata and type templates.
// Reference identity does not contribute, so a faithful clone fingerprints
// like its source. Unexported struct fields are not visited.
func Fingerprint(v any) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	fp := &fingerprinter{h: h}
	if err := fp.write(reflect.ValueOf(&v).Elem(), 0); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type fingerprinter struct {
	h hash.Hash
}

func (fp *fingerprinter) tag(parts ...string) {
	for _, p := range parts {
		fp.h.Write([]byte(strconv.Itoa(len(p))))
		fp.h.Write([]byte{':'})
		fp.h.Write([]byte(p))
	}
}

func (fp *fingerprinter) write(v reflect.Value, depth int) error {
	if depth > DefaultMaxDepth {
		return newCodedError(ErrDepthExceeded, CodeDepthExceeded,
			"fingerprint: graph nested deeper than %d levels", DefaultMaxDepth)
	}
	depth++

	if !v.IsValid() {
		fp.tag("nil")
		return nil
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			fp.tag("nil")
			return nil
		}
		return fp.write(v.Elem(), depth)
	}

	if v.CanInterface() {
		iface := v.Interface()
		if IsUndefined(iface) {
			fp.tag("undefined")
			return nil
		}
		if c, ok := iface.(Composite); ok && !isNilPointer(v) {
			return fp.writeComposite(c, depth)
		}
		switch x := iface.(type) {
		case time.Time:
			fp.tag("time", x.UTC().Format(time.RFC3339Nano))
			return nil
		case *regexp.Regexp:
			if x != nil {
				fp.tag("regexp", x.String())
				return nil
			}
		case *Template:
			if x != nil {
				fp.tag("template", x.Name)
				return nil
			}
		}
	}

	t := v.Type()
	switch t.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			fp.tag("nil", t.String())
			return nil
		}
		fp.tag("ptr")
		return fp.write(v.Elem(), depth)

	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && v.IsNil() {
			fp.tag("nil", t.String())
			return nil
		}
		fp.tag("seq", t.String(), strconv.Itoa(v.Len()))
		for i := 0; i < v.Len(); i++ {
			if err := fp.write(v.Index(i), depth); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		if v.IsNil() {
			fp.tag("nil", t.String())
			return nil
		}
		fp.tag("map", t.String(), strconv.Itoa(v.Len()))
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprintf("%T:%v", keys[i].Interface(), keys[i].Interface()) <
				fmt.Sprintf("%T:%v", keys[j].Interface(), keys[j].Interface())
		})
		for _, k := range keys {
			fp.tag(fmt.Sprintf("%T:%v", k.Interface(), k.Interface()))
			if err := fp.write(v.MapIndex(k), depth); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		fp.tag("struct", t.String())
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			fp.tag(t.Field(i).Name)
			if err := fp.write(v.Field(i), depth); err != nil {
				return err
			}
		}
		return nil

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		fp.tag("handle", t.String())
		return nil

	default:
		fp.tag(t.String(), fmt.Sprint(v))
		return nil
	}
}

func (fp *fingerprinter) writeComposite(c Composite, depth int) error {
	switch s := c.(type) {
	case Sequential:
		fp.tag("Sequence", strconv.Itoa(s.Len()))
		for i := 0; i < s.Len(); i++ {
			if err := fp.write(reflect.ValueOf(s.At(i)), depth); err != nil {
				return err
			}
		}
	case Settleable:
		fp.tag("Future")
		if f, ok := s.(*Future); ok {
			f.mu.Lock()
			state, value := f.state, f.value
			f.mu.Unlock()
			fp.tag(state.String())
			if state != Pending {
				if err := fp.write(reflect.ValueOf(value), depth); err != nil {
					return err
				}
			}
		}
	case Matcher:
		fp.tag("Pattern", s.Source(), s.Flags().String(), strconv.Itoa(s.LastIndex()))
	case Timed:
		fp.tag("Instant", s.Time().UTC().Format(time.RFC3339Nano))
	default:
		name := ""
		if tt, ok := c.(Templated); ok && tt.Template() != nil {
			name = tt.Template().Name
		}
		fp.tag("Object", name)
	}

	attrs := c.Attrs()
	fp.tag("attrs", strconv.Itoa(attrs.Len()))
	for _, n := range attrs.Names() {
		attr, _ := attrs.Descriptor(n)
		fp.tag(n, flagBits(attr))
		if err := fp.write(reflect.ValueOf(attr.Value), depth); err != nil {
			return err
		}
	}
	return nil
}

func flagBits(a Attribute) string {
	b := []byte("---")
	if a.Enumerable {
		b[0] = 'e'
	}
	if a.Writable {
		b[1] = 'w'
	}
	if a.Configurable {
		b[2] = 'c'
	}
	return string(b)
}
