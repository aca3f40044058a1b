package assertion

import "reflect"

// Truther lets a type decide its own truthiness.
type Truther interface {
	Truth() bool
}

// Truthy reports whether v counts as true: nil, false, numeric
// zero, empty strings and containers, and nil references are
// false; everything else is true unless v implements Truther.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if t, ok := v.(Truther); ok {
		return t.Truth()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.String, reflect.Array:
		return rv.Len() > 0
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.Interface,
		reflect.UnsafePointer:
		return !rv.IsNil()
	}
	return true
}
