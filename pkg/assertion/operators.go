package assertion

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"digital.vasic.assertions/pkg/valueobject"
)

// eq compares numbers by value across numeric types and
// everything else structurally.
func eq(a, b any) bool {
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if okA && okB {
		if na.isInt && nb.isInt {
			return cmpIntNumbers(na, nb) == 0
		}
		return na.float() == nb.float()
	}
	return valueobject.Equal(a, b)
}

func ne(a, b any) bool {
	return !eq(a, b)
}

// order compares a and b. ok is false when the pair is unordered,
// as with NaN.
func order(a, b any) (c int, ok bool, err error) {
	if na, okA := toNumber(a); okA {
		if nb, okB := toNumber(b); okB {
			if na.isInt && nb.isInt {
				return cmpIntNumbers(na, nb), true, nil
			}
			x, y := na.float(), nb.float()
			if math.IsNaN(x) || math.IsNaN(y) {
				return 0, false, nil
			}
			return cmpFloats(x, y), true, nil
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true, nil
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), true, nil
		}
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isSequence(va) && isSequence(vb) {
		return orderSequences(va, vb)
	}

	return 0, false, fmt.Errorf(
		"%w: ordering not supported between %s and %s",
		ErrArgument, typeOf(a), typeOf(b),
	)
}

// orderSequences compares element-wise, then by length.
func orderSequences(a, b reflect.Value) (int, bool, error) {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		x, y := a.Index(i).Interface(), b.Index(i).Interface()
		if eq(x, y) {
			continue
		}
		return order(x, y)
	}
	return cmpInts(int64(a.Len()), int64(b.Len())), true, nil
}

func cmpInts(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func cmpFloats(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func ordered(a, b any, accept func(c int) bool) (bool, error) {
	c, ok, err := order(a, b)
	if err != nil || !ok {
		return false, err
	}
	return accept(c), nil
}

func lt(a, b any) (bool, error) {
	return ordered(a, b, func(c int) bool { return c < 0 })
}

func le(a, b any) (bool, error) {
	return ordered(a, b, func(c int) bool { return c <= 0 })
}

func gt(a, b any) (bool, error) {
	return ordered(a, b, func(c int) bool { return c > 0 })
}

func ge(a, b any) (bool, error) {
	return ordered(a, b, func(c int) bool { return c >= 0 })
}

func isSequence(v reflect.Value) bool {
	k := v.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// contains reports whether b is a substring, element or key of a.
func contains(a, b any) (bool, error) {
	if s, ok := a.(string); ok {
		switch sub := b.(type) {
		case string:
			return strings.Contains(s, sub), nil
		case rune:
			return strings.ContainsRune(s, sub), nil
		}
		return false, fmt.Errorf(
			"%w: 'in <string>' requires string as left operand, not %s",
			ErrArgument, typeOf(b),
		)
	}

	found := false
	err := iterate(a, func(item any) bool {
		found = eq(item, b)
		return !found
	})
	return found, err
}

// countOf counts the items of a equal to b.
func countOf(a, b any) (int, error) {
	if s, ok := a.(string); ok {
		sub, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf(
				"%w: must be str, not %s", ErrArgument, typeOf(b),
			)
		}
		return strings.Count(s, sub), nil
	}

	n := 0
	err := iterate(a, func(item any) bool {
		if eq(item, b) {
			n++
		}
		return true
	})
	return n, err
}

// indexOf returns the position of the first item of a equal to b.
func indexOf(a, b any) (int, error) {
	i, found := 0, false
	if s, ok := a.(string); ok {
		sub, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf(
				"%w: must be str, not %s", ErrArgument, typeOf(b),
			)
		}
		if at := strings.Index(s, sub); at >= 0 {
			return utf8.RuneCountInString(s[:at]), nil
		}
	} else {
		err := iterate(a, func(item any) bool {
			if eq(item, b) {
				found = true
				return false
			}
			i++
			return true
		})
		if err != nil {
			return 0, err
		}
		if found {
			return i, nil
		}
	}
	return 0, fmt.Errorf(
		"%w: sequence.index(x): x not in sequence", ErrValue,
	)
}

// getitem returns a[b]. Negative indices count from the end.
func getitem(a, b any) (any, error) {
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.String:
		runes := []rune(v.String())
		i, err := itemIndex(b, len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[i]), nil

	case reflect.Slice, reflect.Array:
		i, err := itemIndex(b, v.Len())
		if err != nil {
			return nil, err
		}
		return v.Index(i).Interface(), nil

	case reflect.Map:
		key, err := operandValue(b, v.Type().Key())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArgument, err)
		}
		item := v.MapIndex(key)
		if !item.IsValid() {
			return nil, fmt.Errorf("%w: %v", ErrKey, b)
		}
		return item.Interface(), nil
	}

	return nil, fmt.Errorf(
		"%w: %s is not subscriptable", ErrArgument, typeOf(a),
	)
}

func itemIndex(b any, n int) (int, error) {
	nb, ok := toNumber(b)
	if !ok || !nb.isInt {
		return 0, fmt.Errorf(
			"%w: indices must be integers, not %s",
			ErrArgument, typeOf(b),
		)
	}
	if nb.wide {
		return 0, fmt.Errorf("%w: %d", ErrIndex, nb.u)
	}
	i := int(nb.i)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d", ErrIndex, nb.i)
	}
	return i, nil
}

// is reports identity: reference values must point at the same
// memory, comparable values must be ==.
func is(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan,
		reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() &&
			va.Len() == vb.Len() && va.Cap() == vb.Cap()
	}
	if va.Type().Comparable() {
		return safeEqual(a, b)
	}
	return false
}

// safeEqual is a == b, false if the comparison panics.
func safeEqual(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func isNot(a, b any) bool {
	return !is(a, b)
}

func not(a any) bool {
	return !Truthy(a)
}

func truth(a any) bool {
	return Truthy(a)
}

// concat joins two strings or two slices of the same type.
func concat(a, b any) (any, error) {
	if out, ok := joinSequences(a, b); ok {
		return out, nil
	}
	return nil, fmt.Errorf(
		"%w: %s object can't be concatenated with %s",
		ErrArgument, typeOf(a), typeOf(b),
	)
}

func joinSequences(a, b any) (any, bool) {
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return x + y, true
		}
		return nil, false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Slice || vb.Kind() != reflect.Slice ||
		va.Type() != vb.Type() {
		return nil, false
	}
	out := reflect.MakeSlice(va.Type(), 0, va.Len()+vb.Len())
	out = reflect.AppendSlice(out, va)
	out = reflect.AppendSlice(out, vb)
	return out.Interface(), true
}

// repeatSequence returns seq repeated n times.
func repeatSequence(seq, n any) (any, bool) {
	count, ok := toNumber(n)
	if !ok || !count.isInt || count.wide {
		return nil, false
	}
	times := int(max(count.i, 0))

	if s, ok := seq.(string); ok {
		return strings.Repeat(s, times), true
	}
	v := reflect.ValueOf(seq)
	if v.Kind() != reflect.Slice {
		return nil, false
	}
	out := reflect.MakeSlice(v.Type(), 0, v.Len()*times)
	for i := 0; i < times; i++ {
		out = reflect.AppendSlice(out, v)
	}
	return out.Interface(), true
}

// iterate calls fn for each item of a slice or array, each key
// of a map, or each character of a string, until fn returns
// false.
func iterate(a any, fn func(item any) bool) error {
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !fn(v.Index(i).Interface()) {
				return nil
			}
		}
		return nil

	case reflect.Map:
		keys := v.MapKeys()
		for _, k := range keys {
			if !fn(k.Interface()) {
				return nil
			}
		}
		return nil

	case reflect.String:
		for _, r := range v.String() {
			if !fn(string(r)) {
				return nil
			}
		}
		return nil
	}

	return fmt.Errorf(
		"%w: %s is not iterable", ErrArgument, typeOf(a),
	)
}
