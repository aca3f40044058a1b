package assertion

import (
	"fmt"
	"reflect"

	"digital.vasic.assertions/pkg/diagnostic"
	"digital.vasic.assertions/pkg/render"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// invoke calls fn with the positional and named operands. A final
// error result is returned as err; a panic is recovered into a
// *PanicError. The remaining results become the output: nil for
// none, the value itself for one, a []any otherwise.
func invoke(
	fn any,
	args []any,
	named []diagnostic.Operand,
) (out any, err error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, fmt.Errorf(
			"%w: %s is not callable", ErrArgument, render.TypeName(fn),
		)
	}

	in, err := bindOperands(rv.Type(), args, named)
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, newPanicError(rec)
		}
	}()

	return splitResults(rv.Type(), rv.Call(in))
}

// bindOperands converts operands to the argument values fn
// expects. Arity and type mismatches wrap ErrArgument.
func bindOperands(
	t reflect.Type,
	args []any,
	named []diagnostic.Operand,
) ([]reflect.Value, error) {
	numIn := t.NumIn()
	hasKwargs := numIn > 0 && !t.IsVariadic() &&
		t.In(numIn-1) == kwargsType
	fixed := numIn
	if hasKwargs {
		fixed--
	}

	if len(named) > 0 && !hasKwargs {
		return nil, fmt.Errorf(
			"%w: unexpected named operand %q",
			ErrArgument, named[0].Name,
		)
	}

	switch {
	case t.IsVariadic() && len(args) < fixed-1:
		return nil, fmt.Errorf(
			"%w: takes at least %d operands, got %d",
			ErrArgument, fixed-1, len(args),
		)
	case !t.IsVariadic() && len(args) != fixed:
		return nil, fmt.Errorf(
			"%w: takes %d operands, got %d",
			ErrArgument, fixed, len(args),
		)
	}

	in := make([]reflect.Value, 0, numIn)
	for i, arg := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= fixed-1 {
			pt = t.In(fixed - 1).Elem()
		} else {
			pt = t.In(i)
		}
		v, err := operandValue(arg, pt)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: operand %d: %v", ErrArgument, i, err,
			)
		}
		in = append(in, v)
	}

	if hasKwargs {
		kw := make(Kwargs, len(named))
		for _, op := range named {
			kw[op.Name] = op.Value
		}
		in = append(in, reflect.ValueOf(kw))
	}
	return in, nil
}

// operandValue adapts arg to type t. Assignable values pass
// through, numbers convert when no precision is lost, and nil
// becomes the zero value of nillable types.
func operandValue(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice,
			reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumberKind(v.Kind()) && isNumberKind(t.Kind()) {
		c := v.Convert(t)
		if c.Convert(v.Type()).Interface() == arg {
			return c, nil
		}
		return reflect.Value{}, fmt.Errorf("%v does not fit in %s", arg, t)
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

func splitResults(t reflect.Type, results []reflect.Value) (any, error) {
	var err error
	if n := len(results); n > 0 && t.Out(n-1) == errorType {
		if e := results[n-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return nil, err
	case 1:
		return results[0].Interface(), err
	}
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, err
}

// safePostProcess applies fn, recovering a panic into an error.
func safePostProcess(fn func(any) any, v any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, newPanicError(rec)
		}
	}()
	return fn(v), nil
}

// safeTruthy evaluates Truthy(v), recovering a panicking Truther
// into an error.
func safeTruthy(v any) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok, err = false, newPanicError(rec)
		}
	}()
	return Truthy(v), nil
}
