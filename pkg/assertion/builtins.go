package assertion

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

func callable(obj any) bool {
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Func && !v.IsNil()
}

// hasattr reports whether obj has a method, exported struct field
// or string map key called name.
func hasattr(obj any, name string) bool {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return false
	}
	if v.MethodByName(name).IsValid() {
		return true
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		f, ok := v.Type().FieldByName(name)
		return ok && f.IsExported()
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			key := reflect.ValueOf(name).Convert(v.Type().Key())
			return v.MapIndex(key).IsValid()
		}
	}
	return false
}

// classInfo accepts a reflect.Type or a []reflect.Type.
func classInfo(fn string, info any) ([]reflect.Type, error) {
	switch t := info.(type) {
	case reflect.Type:
		return []reflect.Type{t}, nil
	case []reflect.Type:
		return t, nil
	}
	return nil, fmt.Errorf(
		"%w: %s() arg 2 must be a reflect.Type or []reflect.Type, not %s",
		ErrArgument, fn, typeOf(info),
	)
}

func subtypeOf(t, of reflect.Type) bool {
	if t == nil || of == nil {
		return false
	}
	if t == of {
		return true
	}
	return of.Kind() == reflect.Interface && t.Implements(of)
}

// isinstance reports whether obj's dynamic type is, or implements,
// one of the given types.
func isinstance(obj any, classinfo any) (bool, error) {
	types, err := classInfo("isinstance", classinfo)
	if err != nil {
		return false, err
	}
	t := reflect.TypeOf(obj)
	for _, of := range types {
		if subtypeOf(t, of) {
			return true, nil
		}
	}
	return false, nil
}

func issubclass(cls any, classinfo any) (bool, error) {
	t, ok := cls.(reflect.Type)
	if !ok {
		return false, fmt.Errorf(
			"%w: issubclass() arg 1 must be a reflect.Type, not %s",
			ErrArgument, typeOf(cls),
		)
	}
	types, err := classInfo("issubclass", classinfo)
	if err != nil {
		return false, err
	}
	for _, of := range types {
		if subtypeOf(t, of) {
			return true, nil
		}
	}
	return false, nil
}

// length counts characters of a string and items of a container.
func length(obj any) (int, error) {
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(v.String()), nil
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return v.Len(), nil
	}
	return 0, fmt.Errorf(
		"%w: object of type %s has no len()", ErrArgument, typeOf(obj),
	)
}

func boolOf(x any) bool {
	return Truthy(x)
}

func anyOf(iterable any) (bool, error) {
	found := false
	err := iterate(iterable, func(item any) bool {
		found = Truthy(item)
		return !found
	})
	return found, err
}

func allOf(iterable any) (bool, error) {
	ok := true
	err := iterate(iterable, func(item any) bool {
		ok = Truthy(item)
		return ok
	})
	return ok, err
}
