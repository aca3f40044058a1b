package valueobject

import (
	"fmt"
	"reflect"
	"sort"
)

// AsDict returns a deep-copied snapshot of v's fields keyed by Go
// field name. Private fields are included only when
// includePrivate is set. Non-struct values yield an empty map.
func AsDict(v any, includePrivate bool) map[string]any {
	sv, _, ok := structOf(v)
	if !ok {
		return map[string]any{}
	}

	names := Fields(sv.Type(), includePrivate)
	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = DeepCopy(sv.FieldByName(name).Interface())
	}
	return out
}

// FromDict builds a new *T by assigning each entry of m to the
// field of the same name. Numeric values are converted when the
// conversion is lossless; a nil value leaves the zero value.
// Unknown or unexported names, and values that cannot be
// assigned, return an error wrapping ErrField.
func FromDict[T any](m map[string]any) (*T, error) {
	out := new(T)
	sv := reflect.ValueOf(out).Elem()
	st := sv.Type()
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrField, st)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f, ok := st.FieldByName(k)
		if !ok || !f.IsExported() || len(f.Index) != 1 {
			return nil, fmt.Errorf(
				"%w: %s has no field %q", ErrField, st, k,
			)
		}
		if err := assign(sv.Field(f.Index[0]), m[k]); err != nil {
			return nil, fmt.Errorf(
				"%w: %s.%s: %v", ErrField, st, k, err,
			)
		}
	}
	return out, nil
}

func assign(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	if isNumeric(rv.Kind()) && isNumeric(field.Kind()) &&
		rv.Type().ConvertibleTo(field.Type()) {
		converted := rv.Convert(field.Type())
		if converted.Convert(rv.Type()).Interface() == rv.Interface() {
			field.Set(converted)
			return nil
		}
		return fmt.Errorf("%v does not fit in %s", value, field.Type())
	}

	return fmt.Errorf("cannot use %T as %s", value, field.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
