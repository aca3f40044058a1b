package assertion

import "reflect"

// Eq asserts a == b.
func (m *Manager) Eq(a, b any, opts ...Option) error {
	return m.Run("eq", []any{a, b}, opts...)
}

// Ne asserts a != b.
func (m *Manager) Ne(a, b any, opts ...Option) error {
	return m.Run("ne", []any{a, b}, opts...)
}

// Lt asserts a < b.
func (m *Manager) Lt(a, b any, opts ...Option) error {
	return m.Run("lt", []any{a, b}, opts...)
}

// Le asserts a <= b.
func (m *Manager) Le(a, b any, opts ...Option) error {
	return m.Run("le", []any{a, b}, opts...)
}

// Gt asserts a > b.
func (m *Manager) Gt(a, b any, opts ...Option) error {
	return m.Run("gt", []any{a, b}, opts...)
}

// Ge asserts a >= b.
func (m *Manager) Ge(a, b any, opts ...Option) error {
	return m.Run("ge", []any{a, b}, opts...)
}

// Contains asserts that b is in a.
func (m *Manager) Contains(a, b any, opts ...Option) error {
	return m.Run("contains", []any{a, b}, opts...)
}

// Len asserts that obj has a non-zero length.
func (m *Manager) Len(obj any, opts ...Option) error {
	return m.Run("len", []any{obj}, opts...)
}

// LenEq asserts that obj has exactly n items.
func (m *Manager) LenEq(obj any, n int, opts ...Option) error {
	return m.Run("len_eq", []any{obj, n}, opts...)
}

// IsClose asserts that a and b are within tolerance. Pass
// Named("rel_tol", ...) or Named("abs_tol", ...) to widen it.
func (m *Manager) IsClose(a, b float64, opts ...Option) error {
	return m.Run("isclose", []any{a, b}, opts...)
}

// IsNaN asserts that x is NaN.
func (m *Manager) IsNaN(x float64, opts ...Option) error {
	return m.Run("isnan", []any{x}, opts...)
}

// IsFile asserts that path names a regular file.
func (m *Manager) IsFile(path string, opts ...Option) error {
	return m.Run("isfile", []any{path}, opts...)
}

// IsDir asserts that path names a directory.
func (m *Manager) IsDir(path string, opts ...Option) error {
	return m.Run("isdir", []any{path}, opts...)
}

// IsAbs asserts that path is absolute.
func (m *Manager) IsAbs(path string, opts ...Option) error {
	return m.Run("isabs", []any{path}, opts...)
}

// IsInstance asserts that obj is of, or implements, typ.
func (m *Manager) IsInstance(obj any, typ reflect.Type, opts ...Option) error {
	return m.Run("isinstance", []any{obj, typ}, opts...)
}

// Truth asserts that v is truthy.
func (m *Manager) Truth(v any, opts ...Option) error {
	return m.Run("truth", []any{v}, opts...)
}
