// Package diagnostic composes the multi-line failure report carried
// by a failed assertion.
//
// A report looks like:
//
//	output = eq(a, b); assert output
//
//	exception: *assertion.AssertionError = AssertionError(assertion failed)
//
//	output: bool = false
//	a: int = 5
//	b: int = 6
//
// Identical requests always produce byte-identical reports.
package diagnostic

import (
	"strings"

	"digital.vasic.assertions/pkg/render"
)

// Operand is a named argument supplied to a predicate.
type Operand struct {
	Name  string
	Value any
}

// Outcome is what evaluating the predicate produced: the result
// value (after inversion) and the error that ended evaluation.
type Outcome struct {
	Output any
	Err    error
}

// Request describes one failed evaluation.
type Request struct {
	// Name is the predicate's display name. Empty for plain
	// value assertions.
	Name string

	// Params are the predicate's declared positional parameter
	// names. May be nil.
	Params []string

	Args  []any
	Named []Operand

	Outcome Outcome
	Invert  bool

	// PostProcess is the post-processing function, nil when none
	// was applied.
	PostProcess any
}

// Field is one "name: type = value" block of a report.
type Field struct {
	Name     string
	TypeName string
	Value    string
}

// Report is a composed diagnostic.
type Report struct {
	Expression  string
	Exception   Field
	Output      Field
	PostProcess *Field
	Operands    []Field

	// wrapAt is the combined key/value length past which a value
	// moves to its own line.
	wrapAt int
}

// Composer builds reports using a renderer's budget.
type Composer struct {
	renderer *render.Renderer
}

// NewComposer returns a Composer bound to r, or to render.Default
// when r is nil.
func NewComposer(r *render.Renderer) *Composer {
	if r == nil {
		r = render.Default
	}
	return &Composer{renderer: r}
}

// Renderer returns the renderer used for operand values.
func (c *Composer) Renderer() *render.Renderer {
	return c.renderer
}

// OperandNames returns the display names of nargs positional
// operands. Declared names are used first and extra operands are
// named _a, _b, ... . Without declared names the operands become
// a, b, c, ... .
func OperandNames(params []string, nargs int) []string {
	names := make([]string, nargs)
	for i := range names {
		switch {
		case i < len(params):
			names[i] = params[i]
		case len(params) == 0:
			names[i] = letters(i)
		default:
			names[i] = "_" + letters(i-len(params))
		}
	}
	return names
}

// letters maps 0, 1, ..., 25, 26 to a, b, ..., z, aa.
func letters(i int) string {
	var out []byte
	for i++; i > 0; i = (i - 1) / 26 {
		out = append([]byte{byte('a' + (i-1)%26)}, out...)
	}
	return string(out)
}

// Signature renders the call signature "(a, b, k=k)" for nargs
// positional operands followed by the named ones. When the result
// would exceed the signature budget it is cut at an item boundary
// and closed with ", ...)".
func (c *Composer) Signature(params []string, nargs int, named []Operand) string {
	items := OperandNames(params, nargs)
	for _, op := range named {
		items = append(items, op.Name+"="+op.Name)
	}

	full := "(" + strings.Join(items, ", ") + ")"
	limit := c.renderer.MaxSignature()
	if len(full) <= limit {
		return full
	}

	const tail = ", ...)"
	var b strings.Builder
	b.WriteString("(")
	kept := 0
	for _, item := range items {
		sep := ""
		if kept > 0 {
			sep = ", "
		}
		if b.Len()+len(sep)+len(item)+len(tail) > limit {
			break
		}
		b.WriteString(sep)
		b.WriteString(item)
		kept++
	}
	if kept == 0 {
		return "(...)"
	}
	b.WriteString(tail)
	return b.String()
}

// Compose builds the report for req.
func (c *Composer) Compose(req Request) Report {
	var expr strings.Builder
	expr.WriteString("output =")
	if req.Invert {
		expr.WriteString(" not")
	}
	expr.WriteString(" ")
	expr.WriteString(req.Name)
	expr.WriteString(c.Signature(req.Params, len(req.Args), req.Named))
	if req.PostProcess != nil {
		expr.WriteString("; assert post_process(output)")
	} else {
		expr.WriteString("; assert output")
	}

	rep := Report{
		Expression: expr.String(),
		Exception:  c.field("exception", req.Outcome.Err),
		Output:     c.field("output", req.Outcome.Output),
		wrapAt:     c.renderer.MaxString(),
	}
	if req.PostProcess != nil {
		f := c.field("post_process", req.PostProcess)
		rep.PostProcess = &f
	}

	names := OperandNames(req.Params, len(req.Args))
	rep.Operands = make([]Field, 0, len(req.Args)+len(req.Named))
	for i, arg := range req.Args {
		rep.Operands = append(rep.Operands, c.field(names[i], arg))
	}
	for _, op := range req.Named {
		rep.Operands = append(rep.Operands, c.field(op.Name, op.Value))
	}
	return rep
}

func (c *Composer) field(name string, v any) Field {
	return Field{
		Name:     name,
		TypeName: render.TypeName(v),
		Value:    c.renderer.Render(v),
	}
}

// String renders the report text.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString(r.Expression)
	b.WriteString("\n\n")
	b.WriteString(r.line(r.Exception))
	b.WriteString("\n\n")
	b.WriteString(r.line(r.Output))
	if r.PostProcess != nil {
		b.WriteString("\n")
		b.WriteString(r.line(*r.PostProcess))
	}
	for _, f := range r.Operands {
		b.WriteString("\n")
		b.WriteString(r.line(f))
	}
	return b.String()
}

// line renders one block, moving the value onto an indented
// continuation line when it is multi-line or too long.
func (r Report) line(f Field) string {
	key := f.Name + ": " + f.TypeName + " ="
	wrapAt := r.wrapAt
	if wrapAt <= 0 {
		wrapAt = render.DefaultBudget().MaxString
	}
	if strings.Contains(f.Value, "\n") || len(key)+len(f.Value) > wrapAt {
		return key + "\n" + indent(f.Value, "    ")
	}
	return key + " " + f.Value
}

// indent prefixes every non-blank line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
