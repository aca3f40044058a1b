package assertion

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"digital.vasic.assertions/pkg/diagnostic"
)

// Sentinel errors raised by predicates and by the engine itself.
var (
	// ErrAssertionFailed matches every normalized failure.
	ErrAssertionFailed = errors.New("assertion failed")

	// ErrArgument reports operands of the wrong number or type.
	ErrArgument = errors.New("invalid argument")

	// ErrValue reports an operand of the right type but an
	// unacceptable value.
	ErrValue = errors.New("invalid value")

	// ErrIndex reports an out-of-range sequence index.
	ErrIndex = errors.New("index out of range")

	// ErrKey reports a missing map key.
	ErrKey = errors.New("key not found")

	// ErrZeroDivision reports division or modulo by zero.
	ErrZeroDivision = errors.New("division by zero")

	// ErrUsage reports a misconfigured engine call. It is
	// returned directly, never wrapped in *Error.
	ErrUsage = errors.New("invalid assertion usage")
)

// AssertionError is raised inside an evaluation when the verdict
// is falsy or an expected error never materialized.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	if e.Message == "" {
		return ErrAssertionFailed.Error()
	}
	return e.Message
}

// Is makes every AssertionError match ErrAssertionFailed.
func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertionFailed
}

// Error is the normalized failure returned by a failed
// assertion. Its text is the rendered diagnostic report.
type Error struct {
	Report  diagnostic.Report
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Report.String()
}

// Is makes every Error match ErrAssertionFailed.
func (e *Error) Is(target error) bool {
	return target == ErrAssertionFailed
}

// Unwrap returns the error the predicate raised. It is nil when
// the failure came from a falsy verdict or when the predicate
// itself returned an assertion failure.
func (e *Error) Unwrap() error {
	return e.cause
}

// PanicError wraps a value recovered from a panicking predicate
// or post-process function.
type PanicError struct {
	Value any

	// kind is the sentinel the runtime panic maps to, such as
	// ErrZeroDivision for an integer divide by zero.
	kind error
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error, along with
// the matching sentinel for runtime panics.
func (e *PanicError) Unwrap() []error {
	var errs []error
	if err, ok := e.Value.(error); ok {
		errs = append(errs, err)
	}
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	return errs
}

func newPanicError(v any) *PanicError {
	pe := &PanicError{Value: v}
	if err, ok := v.(runtime.Error); ok {
		pe.kind = classifyRuntime(err.Error())
	}
	return pe
}

// classifyRuntime maps runtime panic messages to sentinels.
func classifyRuntime(msg string) error {
	switch {
	case strings.Contains(msg, "divide by zero"):
		return ErrZeroDivision
	case strings.Contains(msg, "index out of range"),
		strings.Contains(msg, "slice bounds out of range"):
		return ErrIndex
	case strings.Contains(msg, "assignment to entry in nil map"):
		return ErrKey
	case strings.Contains(msg, "interface conversion"):
		return ErrArgument
	}
	return nil
}
