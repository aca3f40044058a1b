// Package valueobject derives equality, hashing, copying,
// dictionary conversion and formatting for plain data-holder
// structs from their exported fields.
//
// Fields tagged `valueobject:"private"` are excluded from every
// structural operation except AsDict(v, true). Unexported fields
// are never enumerated; they are still carried along by Copy.
package valueobject

import (
	"errors"
	"reflect"
	"sync"
)

// ErrField is returned by FromDict for unknown fields and values
// that cannot be assigned.
var ErrField = errors.New("invalid value-object field")

const (
	tagName    = "valueobject"
	tagPrivate = "private"
)

// Renderer produces display strings for field values.
type Renderer interface {
	Render(v any) string
}

// structOf dereferences v down to a struct value. The second
// result is the pointer identity, zero when v was passed by
// value.
func structOf(v any) (reflect.Value, uintptr, bool) {
	rv := reflect.ValueOf(v)
	var ptr uintptr
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, 0, false
		}
		ptr = rv.Pointer()
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, 0, false
	}
	return rv, ptr, true
}

// Fields returns the names of t's attributes in declaration
// order: exported top-level fields, minus private ones unless
// includePrivate is set.
func Fields(t reflect.Type, includePrivate bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if !includePrivate && isPrivate(f) {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

func isPrivate(f reflect.StructField) bool {
	return f.Tag.Get(tagName) == tagPrivate
}

type guardKey struct {
	op  string
	ptr uintptr
}

// reentry tracks which (operation, instance) pairs are in
// progress so that methods calling back into this package on a
// cyclic graph degrade to identity instead of recursing forever.
var reentry = struct {
	sync.Mutex
	active map[guardKey]bool
}{active: make(map[guardKey]bool)}

// enter marks (op, ptr) as in progress. It returns false when the
// pair is already active. A zero ptr is never guarded.
func enter(op string, ptr uintptr) bool {
	if ptr == 0 {
		return true
	}
	reentry.Lock()
	defer reentry.Unlock()
	k := guardKey{op: op, ptr: ptr}
	if reentry.active[k] {
		return false
	}
	reentry.active[k] = true
	return true
}

func leave(op string, ptr uintptr) {
	if ptr == 0 {
		return
	}
	reentry.Lock()
	delete(reentry.active, guardKey{op: op, ptr: ptr})
	reentry.Unlock()
}
