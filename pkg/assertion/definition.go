// Package assertion evaluates predicates over arbitrary operands
// and, on failure, returns an *Error whose text is a structured,
// bounded diagnostic report.
//
//	err := assertion.Default.Eq(5, 6)
//	// output = eq(a, b); assert output
//	//
//	// exception: *assertion.AssertionError = AssertionError(assertion failed)
//	//
//	// output: bool = false
//	// a: int = 5
//	// b: int = 6
//
// A Manager holds a statically declared table of predicates
// mirroring common operators and filesystem, math and builtin
// checks. Custom predicates are added with AddToInstance.
package assertion

import (
	"reflect"
	"strings"

	"digital.vasic.assertions/pkg/diagnostic"
	"digital.vasic.assertions/pkg/render"
)

// Predicate is a callable whose truthiness is asserted.
type Predicate struct {
	// Name is shown in the report expression, e.g. "eq".
	Name string

	// Params names the positional operands. Extra operands are
	// shown as _a, _b, ...; with no names the operands are shown
	// as a, b, c, ... .
	Params []string

	// Fn is any Go function. A final error result counts as a
	// raised error. A final Kwargs parameter receives the named
	// operands.
	Fn any
}

// Func builds a Predicate named after fn's Go symbol.
func Func(fn any) Predicate {
	return Predicate{Name: shortName(render.FuncName(fn)), Fn: fn}
}

// shortName drops the package qualifier of a symbol name:
// "strings.Contains" becomes "Contains" and
// "render.(*Renderer).Render" becomes "(*Renderer).Render".
func shortName(name string) string {
	if _, rest, ok := strings.Cut(name, "."); ok {
		return rest
	}
	return name
}

// Kwargs carries named operands. Declare it as a predicate's
// final parameter to accept them:
//
//	func near(a, b float64, kw assertion.Kwargs) bool
type Kwargs map[string]any

var kwargsType = reflect.TypeOf(Kwargs(nil))

// Option configures a single assertion.
type Option func(*call)

type call struct {
	invert      bool
	raises      error
	postProcess func(any) any
	message     string
	named       []diagnostic.Operand
}

func newCall(opts []Option) *call {
	c := &call{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invert asserts that the predicate result is falsy.
func Invert() Option {
	return func(c *call) { c.invert = true }
}

// Raises expects the predicate to return or panic with an error
// matching err under errors.Is. Evaluation succeeds only when it
// does.
func Raises(err error) Option {
	return func(c *call) { c.raises = err }
}

// PostProcess transforms the (possibly inverted) result before its
// truthiness is checked.
func PostProcess(fn func(any) any) Option {
	return func(c *call) { c.postProcess = fn }
}

// Message attaches a custom message to the failure.
func Message(msg string) Option {
	return func(c *call) { c.message = msg }
}

// Named passes a named operand. Operands keep the order in which
// they were given.
func Named(name string, value any) Option {
	return func(c *call) {
		c.named = append(c.named, diagnostic.Operand{Name: name, Value: value})
	}
}
