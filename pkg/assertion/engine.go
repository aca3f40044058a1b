package assertion

import (
	"errors"
	"fmt"
	"time"

	"digital.vasic.assertions/pkg/diagnostic"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/metrics"
	"digital.vasic.assertions/pkg/render"
	"digital.vasic.assertions/pkg/valueobject"
)

// Manager evaluates assertions and holds the predicate table. It
// is safe for concurrent use once configured.
//
// Equality and copying follow the value-object contract: only
// Renderer is compared, and predicates added with AddToInstance
// are not.
type Manager struct {
	// Renderer renders operand values in failure reports.
	Renderer *render.Renderer

	// Logger receives one entry per failed assertion. Nil
	// disables logging.
	Logger logging.Logger `valueobject:"private"`

	// Metrics counts evaluations. Nil disables metrics.
	Metrics metrics.AssertionMetrics `valueobject:"private"`

	reg *registry
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRenderer sets the renderer used for reports.
func WithRenderer(r *render.Renderer) ManagerOption {
	return func(m *Manager) { m.Renderer = r }
}

// WithLogger enables failure logging.
func WithLogger(l logging.Logger) ManagerOption {
	return func(m *Manager) { m.Logger = l }
}

// WithMetrics enables evaluation metrics.
func WithMetrics(mm metrics.AssertionMetrics) ManagerOption {
	return func(m *Manager) { m.Metrics = mm }
}

// New creates a Manager with all built-in predicates registered.
func New(opts ...ManagerOption) *Manager {
	m := &Manager{
		Renderer: render.Default,
		reg:      newRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.Renderer == nil {
		m.Renderer = render.Default
	}
	m.registerDefaults()
	return m
}

// Default is the package-level manager.
var Default = New()

// registerDefaults registers the built-in predicate table.
func (m *Manager) registerDefaults() {
	for _, p := range builtins {
		m.reg.predicates[p.Name] = p
	}
	for alias, name := range aliases {
		p := m.reg.predicates[name]
		p.Name = alias
		m.reg.predicates[alias] = p
	}
}

// Assert evaluates fn over args and returns nil when the result
// is truthy. fn is a Predicate or any Go function.
//
// On failure the returned error is an *Error carrying the
// diagnostic report. A Raises option whose error matches
// ErrAssertionFailed is rejected with an error wrapping ErrUsage.
func (m *Manager) Assert(fn any, args []any, opts ...Option) error {
	var p Predicate
	switch v := fn.(type) {
	case Predicate:
		p = v
	case *Predicate:
		if v == nil {
			return fmt.Errorf("%w: nil predicate", ErrUsage)
		}
		p = *v
	default:
		p = Func(fn)
	}
	return m.assert(p, args, newCall(opts))
}

// Call asserts that value is truthy.
func (m *Manager) Call(value any, opts ...Option) error {
	p := Predicate{Params: []string{"value"}, Fn: identity}
	return m.assert(p, []any{value}, newCall(opts))
}

func identity(value any) any { return value }

// Run evaluates the registered predicate name over args.
func (m *Manager) Run(name string, args []any, opts ...Option) error {
	p, err := m.reg.get(name)
	if err != nil {
		m.recordUsage("unknown_predicate")
		return err
	}
	return m.assert(p, args, newCall(opts))
}

// AddToInstance registers p under name, or under p.Name when name
// is empty. It fails with an error wrapping ErrUsage when the
// name is taken, unless override is set.
func (m *Manager) AddToInstance(p Predicate, name string, override bool) error {
	if name == "" {
		name = p.Name
	}
	if name == "" {
		name = shortName(render.FuncName(p.Fn))
	}
	if name == "" {
		return fmt.Errorf("%w: predicate has no name", ErrUsage)
	}
	if p.Name == "" {
		p.Name = name
	}
	return m.reg.register(name, p, override)
}

// Has reports whether a predicate is registered under name.
func (m *Manager) Has(name string) bool {
	return m.reg.has(name)
}

// Names returns the registered predicate names, sorted.
func (m *Manager) Names() []string {
	return m.reg.names()
}

// Copy returns a Manager with the same configuration and an
// independent predicate table.
func (m *Manager) Copy() *Manager {
	cp := valueobject.Copy(m, false)
	cp.reg = m.reg.clone()
	return cp
}

// Equal reports whether both managers render reports the same
// way.
func (m *Manager) Equal(o *Manager) bool {
	return valueobject.Equal(m, o)
}

func (m *Manager) assert(p Predicate, args []any, c *call) error {
	if c.raises != nil && errors.Is(c.raises, ErrAssertionFailed) {
		m.recordUsage("raises_assertion_failed")
		return fmt.Errorf(
			"%w: %v is not allowed as the expected error",
			ErrUsage, c.raises,
		)
	}

	start := time.Now()
	output, err := m.evaluate(p, args, c)
	if err == nil && c.raises != nil {
		msg := fmt.Sprintf("Failed to raise '%v'", c.raises)
		if c.message != "" {
			msg += "; " + c.message
		}
		err = &AssertionError{Message: msg}
	}

	if err == nil || (c.raises != nil && errors.Is(err, c.raises)) {
		m.record(p, true, time.Since(start))
		return nil
	}

	failure := m.fail(p, args, c, output, err)
	elapsed := time.Since(start)
	m.record(p, false, elapsed)
	m.log(p, failure, elapsed)
	return failure
}

// evaluate runs the predicate once, applies invert and
// post-processing, and turns a falsy verdict into an
// *AssertionError.
func (m *Manager) evaluate(p Predicate, args []any, c *call) (any, error) {
	output, err := invoke(p.Fn, args, c.named)
	if err != nil {
		return nil, err
	}

	if c.invert {
		truth, err := safeTruthy(output)
		if err != nil {
			return output, err
		}
		output = !truth
	}

	verdict := output
	if c.postProcess != nil {
		verdict, err = safePostProcess(c.postProcess, output)
		if err != nil {
			return output, err
		}
	}

	truth, err := safeTruthy(verdict)
	if err != nil {
		return output, err
	}
	if !truth {
		return output, &AssertionError{Message: c.message}
	}
	return output, nil
}

func (m *Manager) fail(
	p Predicate,
	args []any,
	c *call,
	output any,
	err error,
) *Error {
	req := diagnostic.Request{
		Name:    p.Name,
		Params:  p.Params,
		Args:    args,
		Named:   c.named,
		Outcome: diagnostic.Outcome{Output: output, Err: err},
		Invert:  c.invert,
	}
	if c.postProcess != nil {
		req.PostProcess = c.postProcess
	}

	failure := &Error{
		Report:  diagnostic.NewComposer(m.Renderer).Compose(req),
		Message: c.message,
		cause:   err,
	}
	switch err.(type) {
	case *AssertionError, *Error:
		failure.cause = nil
	}
	return failure
}

func (m *Manager) record(p Predicate, passed bool, d time.Duration) {
	if m.Metrics == nil {
		return
	}
	m.Metrics.RecordAssertion(metricName(p), passed, d)
}

func (m *Manager) recordUsage(reason string) {
	if m.Metrics == nil {
		return
	}
	m.Metrics.RecordUsageError(reason)
}

func (m *Manager) log(p Predicate, failure *Error, d time.Duration) {
	if m.Logger == nil {
		return
	}
	entry := logging.AssertionLog{
		Timestamp:  time.Now().Format(time.RFC3339Nano),
		Predicate:  metricName(p),
		Expression: failure.Report.Expression,
		Passed:     false,
		Duration:   d,
		Report:     failure.Error(),
	}
	if cause := failure.Unwrap(); cause != nil {
		entry.Error = cause.Error()
	}
	m.Logger.LogAssertion(entry)
}

func metricName(p Predicate) string {
	if p.Name == "" {
		return "value"
	}
	return p.Name
}
