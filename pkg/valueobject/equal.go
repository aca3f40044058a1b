package valueobject

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// ignoreHidden drops unexported and private fields from nested
// comparisons.
var ignoreHidden = cmp.FilterPath(func(p cmp.Path) bool {
	sf, ok := p.Last().(cmp.StructField)
	if !ok {
		return false
	}
	parent := p.Index(-2).Type()
	for parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}
	f, ok := parent.FieldByName(sf.Name())
	if !ok {
		return true
	}
	return !f.IsExported() || isPrivate(f)
}, cmp.Ignore())

// Equal reports whether a and b have the same concrete type and
// pairwise-equal public fields. Comparisons that panic count as
// unequal. Non-struct values fall back to cmp.Equal.
func Equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()

	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	va, pa, okA := structOf(a)
	vb, pb, okB := structOf(b)
	if !okA || !okB {
		return cmp.Equal(a, b, ignoreHidden)
	}
	if pa != 0 && pa == pb {
		return true
	}

	if !enter("eq", pa) {
		return pa == pb
	}
	defer leave("eq", pa)

	for _, name := range Fields(va.Type(), false) {
		fa := va.FieldByName(name).Interface()
		fb := vb.FieldByName(name).Interface()
		if !cmp.Equal(fa, fb, ignoreHidden) {
			return false
		}
	}
	return true
}
