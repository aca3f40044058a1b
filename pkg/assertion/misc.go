package assertion

import (
	"fmt"
	"reflect"
	"slices"

	"digital.vasic.assertions/pkg/render"
)

// lenEq reports whether a has exactly b items.
func lenEq(a any, b int) (bool, error) {
	n, err := length(a)
	if err != nil {
		return false, err
	}
	return n == b, nil
}

// strEq compares the string form of a with b. The form comes from
// the "str_converter" named operand, a func(any) string, and
// defaults to the bounded renderer.
func strEq(a any, b string, kw Kwargs) (bool, error) {
	convert := render.Default.Render
	for _, name := range sortedKeys(kw) {
		if name != "str_converter" {
			return false, fmt.Errorf(
				"%w: unexpected named operand %q", ErrArgument, name,
			)
		}
		fn, ok := kw[name].(func(any) string)
		if !ok {
			return false, fmt.Errorf(
				"%w: str_converter must be a func(any) string, not %s",
				ErrArgument, typeOf(kw[name]),
			)
		}
		convert = fn
	}
	return convert(a) == b, nil
}

// shape returns the dimensions of nested slices and arrays,
// following the first element of each level.
func shape(v any) ([]int, bool) {
	rv := reflect.ValueOf(v)
	if !isSequence(rv) {
		return nil, false
	}
	var dims []int
	for isSequence(rv) {
		dims = append(dims, rv.Len())
		if rv.Len() == 0 {
			break
		}
		rv = rv.Index(0)
		for rv.Kind() == reflect.Interface && !rv.IsNil() {
			rv = rv.Elem()
		}
	}
	return dims, true
}

// shapeEq compares the shape of a with b, which is either another
// nested sequence or a []int of dimensions.
func shapeEq(a, b any) (bool, error) {
	sa, ok := shape(a)
	if !ok {
		return false, fmt.Errorf(
			"%w: %s has no shape", ErrArgument, typeOf(a),
		)
	}
	sb, ok := b.([]int)
	if !ok {
		if sb, ok = shape(b); !ok {
			return false, fmt.Errorf(
				"%w: %s has no shape", ErrArgument, typeOf(b),
			)
		}
	}
	return slices.Equal(sa, sb), nil
}

// isdisjoint reports whether a and b share no items. Items must be
// comparable.
func isdisjoint(a, b any) (bool, error) {
	seen := make(map[any]struct{})
	var hashErr error
	err := iterate(a, func(item any) bool {
		if !hashable(item) {
			hashErr = unhashable(item)
			return false
		}
		seen[item] = struct{}{}
		return true
	})
	if err != nil {
		return false, err
	}
	if hashErr != nil {
		return false, hashErr
	}

	disjoint := true
	err = iterate(b, func(item any) bool {
		if !hashable(item) {
			hashErr = unhashable(item)
			return false
		}
		_, shared := seen[item]
		disjoint = !shared
		return disjoint
	})
	if err != nil {
		return false, err
	}
	return disjoint, hashErr
}

func hashable(v any) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

func unhashable(v any) error {
	return fmt.Errorf("%w: unhashable type: %s", ErrArgument, typeOf(v))
}

// functionEq reports whether two funcs share the same code. Only
// identity is checked.
func functionEq(f1, f2 any) (bool, error) {
	v1, v2 := reflect.ValueOf(f1), reflect.ValueOf(f2)
	if v1.Kind() != reflect.Func || v2.Kind() != reflect.Func {
		return false, fmt.Errorf(
			"%w: function_eq requires two funcs, got %s and %s",
			ErrArgument, typeOf(f1), typeOf(f2),
		)
	}
	if v1.IsNil() || v2.IsNil() {
		return v1.IsNil() && v2.IsNil(), nil
	}
	return v1.Pointer() == v2.Pointer(), nil
}
