package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.assertions/pkg/env"
	"digital.vasic.assertions/pkg/valueobject"
)

// ErrConfig is returned for unrecognised or invalid budget
// settings.
var ErrConfig = errors.New("invalid render configuration")

// Budget bounds how large and how deep a rendered value may
// become. It is a plain value object: equality, copying and
// dictionary conversion go through the valueobject package.
type Budget struct {
	// MaxLevel is the container nesting depth rendered before
	// a placeholder is substituted.
	MaxLevel int `yaml:"max_level" json:"max_level"`

	// MaxString caps quoted strings; it also decides when a
	// diagnostic value moves to its own line.
	MaxString int `yaml:"max_string" json:"max_string"`

	// MaxOther caps Stringer output and opaque values.
	MaxOther int `yaml:"max_other" json:"max_other"`

	// MaxList is the number of slice items shown.
	MaxList int `yaml:"max_list" json:"max_list"`

	// MaxArray is the number of array items shown.
	MaxArray int `yaml:"max_array" json:"max_array"`

	// MaxMap is the number of map entries shown.
	MaxMap int `yaml:"max_map" json:"max_map"`

	// MaxStruct is the number of struct fields shown.
	MaxStruct int `yaml:"max_struct" json:"max_struct"`

	// MaxFloat is the number of decimals for floats, and the
	// exponent at which exponential notation kicks in.
	MaxFloat int `yaml:"max_float" json:"max_float"`

	// MaxException caps error messages.
	MaxException int `yaml:"max_exception" json:"max_exception"`

	// MaxSignature caps rendered call signatures.
	MaxSignature int `yaml:"max_signature" json:"max_signature"`

	// MaxLength is the hard ceiling for any single rendered
	// value.
	MaxLength int `yaml:"max_length" json:"max_length"`
}

// DefaultBudget returns the process-wide default limits.
func DefaultBudget() Budget {
	const maxString = 80
	return Budget{
		MaxLevel:     6,
		MaxString:    maxString,
		MaxOther:     30,
		MaxList:      6,
		MaxArray:     5,
		MaxMap:       4,
		MaxStruct:    6,
		MaxFloat:     4,
		MaxException: 1000,
		MaxSignature: maxString - 20,
		MaxLength:    2048,
	}
}

// Validate checks that every limit is positive.
func (b Budget) Validate() error {
	v := reflect.ValueOf(b)
	for _, f := range budgetFields() {
		if n := v.FieldByName(f.name).Int(); n <= 0 {
			return fmt.Errorf(
				"%w: %s must be positive, got %d",
				ErrConfig, f.key, n,
			)
		}
	}
	return nil
}

type budgetField struct {
	name string // Go field name
	key  string // snake-case key used in files and env
}

// budgetFields lists Budget's fields in declaration order.
func budgetFields() []budgetField {
	t := reflect.TypeOf(Budget{})
	out := make([]budgetField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		out = append(out, budgetField{name: f.Name, key: key})
	}
	return out
}

// fieldName resolves a snake-case key or a Go field name to the
// Go field name.
func fieldName(key string) (string, bool) {
	for _, f := range budgetFields() {
		if key == f.key || key == f.name {
			return f.name, true
		}
	}
	return "", false
}

// ApplyOverrides returns a copy of b with the named fields
// replaced. Keys may be snake-case ("max_string") or Go field
// names ("MaxString"). Unknown keys and values that are not
// integers produce an error wrapping ErrConfig.
func (b Budget) ApplyOverrides(overrides map[string]any) (Budget, error) {
	if len(overrides) == 0 {
		return b, nil
	}

	fields := valueobject.AsDict(&b, false)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name, ok := fieldName(k)
		if !ok {
			return b, fmt.Errorf(
				"%w: unrecognized budget field %q", ErrConfig, k,
			)
		}
		fields[name] = overrides[k]
	}

	out, err := valueobject.FromDict[Budget](fields)
	if err != nil {
		return b, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return *out, nil
}

// LoadBudget reads a YAML budget file. Fields missing from the
// file keep their default value; unknown fields are rejected.
func LoadBudget(path string) (Budget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Budget{}, fmt.Errorf(
			"failed to read budget file %s: %w", path, err,
		)
	}
	return ParseBudget(data)
}

// ParseBudget decodes a YAML budget document on top of the
// defaults.
func ParseBudget(data []byte) (Budget, error) {
	b := DefaultBudget()
	if len(bytes.TrimSpace(data)) == 0 {
		return b, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return Budget{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// BudgetFromEnv overlays ASSERTIONS_MAX_* settings from the loader
// on top of base.
func BudgetFromEnv(l env.Loader, base Budget) (Budget, error) {
	overrides := make(map[string]any)
	for _, f := range budgetFields() {
		n, ok, err := env.SettingInt(l, f.key)
		if err != nil {
			return base, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if ok {
			overrides[f.key] = n
		}
	}

	b, err := base.ApplyOverrides(overrides)
	if err != nil {
		return base, err
	}
	if err := b.Validate(); err != nil {
		return base, err
	}
	return b, nil
}
