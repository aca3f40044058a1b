package valueobject

import "reflect"

// Copy returns a new *T holding v's fields. A shallow copy shares
// every reference-typed field with v; a deep copy recursively
// duplicates pointers, slices, maps and interfaces reachable
// through exported fields, preserving aliasing and cycles.
// Unexported fields are always copied shallowly. No constructor
// is invoked.
func Copy[T any](v *T, deep bool) *T {
	if v == nil {
		return nil
	}
	if !deep {
		out := new(T)
		*out = *v
		return out
	}
	c := &copier{memo: make(map[memoKey]reflect.Value)}
	return c.copy(reflect.ValueOf(v)).Interface().(*T)
}

// DeepCopy duplicates an arbitrary value the way Copy does for
// struct fields.
func DeepCopy(v any) any {
	if v == nil {
		return nil
	}
	c := &copier{memo: make(map[memoKey]reflect.Value)}
	return c.copy(reflect.ValueOf(v)).Interface()
}

type memoKey struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

type copier struct {
	memo map[memoKey]reflect.Value
}

func (c *copier) copy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		key := memoKey{typ: v.Type(), ptr: v.Pointer()}
		if seen, ok := c.memo[key]; ok {
			return seen
		}
		out := reflect.New(v.Type().Elem())
		c.memo[key] = out
		out.Elem().Set(c.copy(v.Elem()))
		return out

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(c.copy(v.Elem()))
		return out

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		key := memoKey{typ: v.Type(), ptr: v.Pointer(), n: v.Len()}
		if seen, ok := c.memo[key]; ok {
			return seen
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
		c.memo[key] = out
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(c.copy(v.Index(i)))
		}
		return out

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		key := memoKey{typ: v.Type(), ptr: v.Pointer()}
		if seen, ok := c.memo[key]; ok {
			return seen
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		c.memo[key] = out
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), c.copy(iter.Value()))
		}
		return out

	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(c.copy(v.Index(i)))
		}
		return out

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			out.Field(i).Set(c.copy(v.Field(i)))
		}
		return out

	default:
		return v
	}
}
