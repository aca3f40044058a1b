// Package render turns arbitrary Go values into bounded,
// deterministic display strings for assertion diagnostics.
//
// A Renderer never panics: values whose String or Error methods
// panic, cyclic pointer graphs and very large containers all
// produce finite output no longer than Budget.MaxLength.
package render

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Ellipsis marks every truncation.
const Ellipsis = "..."

// Renderer converts values to strings within a Budget.
type Renderer struct {
	budget Budget
}

// Default is the renderer used when none is configured.
var Default = &Renderer{budget: DefaultBudget()}

// New creates a Renderer from the default budget plus named
// overrides, e.g. New(map[string]any{"max_string": 120}).
func New(overrides map[string]any) (*Renderer, error) {
	b, err := DefaultBudget().ApplyOverrides(overrides)
	if err != nil {
		return nil, err
	}
	return NewWithBudget(b)
}

// NewWithBudget creates a Renderer after validating b.
func NewWithBudget(b Budget) (*Renderer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{budget: b}, nil
}

// Budget returns a copy of the renderer's limits.
func (r *Renderer) Budget() Budget {
	return r.budget
}

// MaxString returns the string budget.
func (r *Renderer) MaxString() int {
	return r.budget.MaxString
}

// MaxSignature returns the signature budget.
func (r *Renderer) MaxSignature() int {
	return r.budget.MaxSignature
}

// Equal reports whether both renderers use the same budget. A nil
// renderer equals only another nil renderer.
func (r *Renderer) Equal(o *Renderer) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.budget == o.budget
}

// Render returns the bounded representation of v.
func (r *Renderer) Render(v any) string {
	return r.RenderLevel(v, r.budget.MaxLevel)
}

// RenderLevel renders v with an explicit remaining depth.
func (r *Renderer) RenderLevel(v any, level int) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = r.Truncate(fmt.Sprintf("<%T: render panic>", v))
		}
	}()

	s := &state{r: r, active: make(map[visit]bool)}
	return r.Truncate(s.repr(reflect.ValueOf(v), level))
}

// Truncate clips s to MaxLength, ending it with Ellipsis when
// anything was removed. Applying it twice is the same as once.
func (r *Renderer) Truncate(s string) string {
	return clip(s, r.budget.MaxLength)
}

// TypeName returns the display type of v ("int", "[]string",
// "*errors.errorString"), or "nil".
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// clip cuts s to at most n bytes on a rune boundary.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= len(Ellipsis) {
		return Ellipsis[:max(n, 0)]
	}
	return head(s, n-len(Ellipsis)) + Ellipsis
}

// head returns the longest prefix of s no longer than n bytes
// that ends on a rune boundary.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

type visit struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// state is the per-call visited set guarding against cycles.
type state struct {
	r      *Renderer
	active map[visit]bool
}

func (s *state) repr(v reflect.Value, level int) string {
	if !v.IsValid() {
		return "nil"
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "nil"
		}
		return s.repr(v.Elem(), level)
	}

	if isNil(v) {
		return "nil"
	}

	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case error:
			return s.reprError(x)
		case fmt.Stringer:
			if v.Type().PkgPath() != "" || v.Kind() == reflect.Pointer {
				if str, ok := safeString(x.String); ok {
					return clip(str, s.r.budget.MaxOther)
				}
				return fmt.Sprintf("<%s: render panic>", v.Type())
			}
		}
	}

	b := s.r.budget

	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return s.r.FormatFloat(v.Float(), 32)
	case reflect.Float64:
		return s.r.FormatFloat(v.Float(), 64)
	case reflect.Complex64, reflect.Complex128:
		return s.reprComplex(v.Complex())
	case reflect.String:
		return s.reprString(v.String())
	case reflect.Func:
		return reprFunc(v)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return s.reprString(string(v.Bytes()))
		}
		return s.guard(v, func() string {
			return s.seq(v, level, b.MaxList)
		})
	case reflect.Array:
		return s.seq(v, level, b.MaxArray)
	case reflect.Map:
		return s.guard(v, func() string {
			return s.reprMap(v, level)
		})
	case reflect.Pointer:
		return s.guard(v, func() string {
			return "&" + s.repr(v.Elem(), level)
		})
	case reflect.Struct:
		return s.reprStruct(v, level)
	default:
		return clip("<"+v.Type().String()+">", b.MaxOther)
	}
}

// guard renders a reference value once per call path; re-entry
// yields a cycle placeholder.
func (s *state) guard(v reflect.Value, render func() string) string {
	key := visit{typ: v.Type(), ptr: v.Pointer()}
	if v.Kind() == reflect.Slice {
		key.n = v.Len()
	}
	if s.active[key] {
		return "<cycle " + v.Type().String() + ">"
	}
	s.active[key] = true
	defer delete(s.active, key)
	return render()
}

func (s *state) seq(v reflect.Value, level, limit int) string {
	n := v.Len()
	if n == 0 {
		return "[]"
	}
	if level <= 0 {
		return "[" + Ellipsis + "]"
	}

	k := min(n, limit)
	parts := make([]string, 0, k+1)
	for i := 0; i < k; i++ {
		parts = append(parts, s.repr(v.Index(i), level-1))
	}
	if n > limit {
		parts = append(parts, Ellipsis)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (s *state) reprMap(v reflect.Value, level int) string {
	n := v.Len()
	if n == 0 {
		return "{}"
	}
	if level <= 0 {
		return "{" + Ellipsis + "}"
	}

	limit := s.r.budget.MaxMap
	keys := v.MapKeys()
	rendered := sortKeys(keys, func(k reflect.Value) string {
		return s.repr(k, level-1)
	})

	k := min(n, limit)
	parts := make([]string, 0, k+1)
	for i := 0; i < k; i++ {
		val := s.repr(v.MapIndex(keys[i]), level-1)
		parts = append(parts, rendered(i)+": "+val)
	}
	if n > limit {
		parts = append(parts, Ellipsis)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *state) reprStruct(v reflect.Value, level int) string {
	t := v.Type()
	name := t.String()
	if t.Name() == "" {
		name = "struct"
	}
	if level <= 0 {
		return name + "{" + Ellipsis + "}"
	}

	limit := s.r.budget.MaxStruct
	parts := make([]string, 0, limit+1)
	shown := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if shown == limit {
			parts = append(parts, Ellipsis)
			break
		}
		parts = append(parts, f.Name+": "+s.repr(v.Field(i), level-1))
		shown++
	}
	return name + "{" + strings.Join(parts, ", ") + "}"
}

func (s *state) reprString(str string) string {
	return clip(strconv.Quote(str), s.r.budget.MaxString)
}

func (s *state) reprError(err error) string {
	msg, ok := safeString(err.Error)
	if !ok {
		msg = "<render panic>"
	}
	if limit := s.r.budget.MaxException; len(msg) > limit {
		msg = head(msg, limit) + Ellipsis
	}
	return ErrorName(err) + "(" + msg + ")"
}

func (s *state) reprComplex(c complex128) string {
	re := s.r.FormatFloat(real(c), 64)
	im := s.r.FormatFloat(imag(c), 64)
	if !strings.HasPrefix(im, "-") && !strings.HasPrefix(im, "+") {
		im = "+" + im
	}
	return "(" + re + im + "i)"
}

// FormatFloat renders f with MaxFloat decimals, switching to
// exponential notation when |f| > 10^MaxFloat or
// 0 < |f| < 10^-MaxFloat.
func (r *Renderer) FormatFloat(f float64, bitSize int) string {
	p := r.budget.MaxFloat
	a := math.Abs(f)
	if a != 0 && (a > math.Pow10(p) || a < math.Pow10(-p)) {
		return strconv.FormatFloat(f, 'e', p, bitSize)
	}
	return strconv.FormatFloat(f, 'f', p, bitSize)
}

// ErrorName returns the short type name of err, e.g.
// "errorString" for errors.New values.
func ErrorName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "error"
	}
	return t.Name()
}

// FuncName returns the package-qualified symbol name of a func
// value, e.g. "strings.Contains".
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func reprFunc(v reflect.Value) string {
	name := FuncName(v.Interface())
	if name == "" {
		return "<func>"
	}
	return "<func " + name + ">"
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

func safeString(fn func() string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	return fn(), true
}

// sortKeys orders map keys in place: natively for basic kinds,
// by rendered text otherwise. It returns a lookup of the
// rendered key at each sorted position.
func sortKeys(keys []reflect.Value, render func(reflect.Value) string) func(int) string {
	if len(keys) == 0 {
		return func(int) string { return "" }
	}

	switch keys[0].Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	case reflect.Float32, reflect.Float64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Float() < keys[j].Float() })
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	default:
		texts := make([]string, len(keys))
		for i, k := range keys {
			texts[i] = render(k)
		}
		idx := make([]int, len(keys))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return texts[idx[a]] < texts[idx[b]] })
		sorted := make([]reflect.Value, len(keys))
		sortedText := make([]string, len(keys))
		for i, j := range idx {
			sorted[i] = keys[j]
			sortedText[i] = texts[j]
		}
		copy(keys, sorted)
		return func(i int) string { return sortedText[i] }
	}

	return func(i int) string { return render(keys[i]) }
}
