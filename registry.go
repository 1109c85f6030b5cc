package replica

import (
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the field tag with sentinel
	sentinel.Tag("clone")
}

// fieldMode is how a struct field is carried onto the clone.
type fieldMode uint8

const (
	fieldDeep    fieldMode = iota // cloned (default)
	fieldShallow                  // clone:"shallow", shared with the source
	fieldSkip                     // clone:"-", left zero
)

// typePlan describes how to clone values of one Go type.
type typePlan struct {
	typeName string
	override int  // method index of Clone() T, -1 when absent
	flat     bool // no references anywhere, a value copy is a deep copy
	fields   []fieldPlan
}

// fieldPlan describes how to carry a single exported struct field.
type fieldPlan struct {
	index []int     // reflect.Value.FieldByIndex access path
	name  string    // field name for diagnostics
	mode  fieldMode // tag-selected mode
}

var (
	plans   = make(map[reflect.Type]*typePlan)
	plansMu sync.RWMutex
)

// planFor returns the cached plan for t, building it on first use.
func planFor(t reflect.Type) *typePlan {
	// Fast path: read-lock cache check
	plansMu.RLock()
	if cached, ok := plans[t]; ok {
		plansMu.RUnlock()
		return cached
	}
	plansMu.RUnlock()

	// Slow path: build and cache with write-lock
	plansMu.Lock()
	defer plansMu.Unlock()

	// Double-check pattern
	if cached, ok := plans[t]; ok {
		return cached
	}

	plan := buildPlan(t)
	plans[t] = plan
	return plan
}

// ResetPlans clears the plan registry.
// This is primarily useful for test isolation.
func ResetPlans() {
	plansMu.Lock()
	defer plansMu.Unlock()
	plans = make(map[reflect.Type]*typePlan)
	scanned.Clear()
}

// buildPlan scans t once.
func buildPlan(t reflect.Type) *typePlan {
	plan := &typePlan{
		typeName: t.String(),
		override: overrideIndex(t),
		flat:     isFlat(t),
	}

	if t.Kind() != reflect.Struct || plan.flat {
		return plan
	}

	plan.fields = fieldPlans(t)
	return plan
}

// overrideIndex returns the method index of a Clone method returning t,
// or -1. Interface types never have an override.
func overrideIndex(t reflect.Type) int {
	if t.Kind() == reflect.Interface {
		return -1
	}
	m, ok := t.MethodByName("Clone")
	if !ok {
		return -1
	}
	// Method types from reflect.Type include the receiver.
	if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || m.Type.Out(0) != t {
		return -1
	}
	return m.Index
}

// isFlat reports whether values of t hold no references at all.
func isFlat(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Array:
		return isFlat(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isFlat(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

var scanned sync.Map // reflect.Type -> struct{}

// scan hands the struct type behind T to sentinel once, so the plans of T
// and of the module types it references are built from sentinel metadata.
func scan[T any]() {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	if _, done := scanned.LoadOrStore(t, struct{}{}); done {
		return
	}
	_, _ = sentinel.TryScan[T]()
}

// metadataOf returns sentinel's metadata for t. sentinel keys types by
// bare name, so the package path must match as well.
func metadataOf(t reflect.Type) (sentinel.Metadata, bool) {
	if t.Name() == "" {
		return sentinel.Metadata{}, false
	}
	meta, ok := sentinel.Lookup(t.Name())
	if !ok || meta.PackageName != t.PkgPath() {
		return sentinel.Metadata{}, false
	}
	return meta, true
}

// fieldPlans plans the exported fields of struct t.
func fieldPlans(t reflect.Type) []fieldPlan {
	if meta, ok := metadataOf(t); ok {
		fields := make([]fieldPlan, 0, len(meta.Fields))
		for _, f := range meta.Fields {
			fields = append(fields, fieldPlan{index: f.Index, name: f.Name, mode: modeOf(f.Tags["clone"])})
		}
		return fields
	}

	var fields []fieldPlan
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.IsExported() {
			fields = append(fields, fieldPlan{index: sf.Index, name: sf.Name, mode: modeOf(sf.Tag.Get("clone"))})
		}
	}
	return fields
}

func modeOf(tag string) fieldMode {
	switch tag {
	case "shallow":
		return fieldShallow
	case "-":
		return fieldSkip
	default:
		return fieldDeep
	}
}
