package plugin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/assertion"
)

func TestLoader_LoadAndInit(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)

	plugins := []Plugin{
		&mockPlugin{name: "p1", version: "1.0"},
		&mockPlugin{name: "p2", version: "2.0"},
	}

	err := l.LoadAndInit(plugins, &PluginContext{})
	assert.NoError(t, err)
	assert.Equal(t, 2, r.Count())
	assert.True(t, r.IsLoaded("p1"))
	assert.True(t, r.IsLoaded("p2"))
}

func TestLoader_LoadOne(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)

	err := l.LoadOne(&mockPlugin{name: "single", version: "1.0"}, &PluginContext{})
	assert.NoError(t, err)
	assert.True(t, r.IsLoaded("single"))
}

func TestLoader_LoadAndInit_DuplicateError(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)

	plugins := []Plugin{
		&mockPlugin{name: "same", version: "1.0"},
		&mockPlugin{name: "same", version: "2.0"},
	}

	err := l.LoadAndInit(plugins, &PluginContext{})
	assert.Error(t, err)
}

func stringsPack() *Pack {
	return NewPack("strings", "1.0",
		assertion.Func(strings.HasPrefix),
		assertion.Predicate{
			Name:   "is_upper",
			Params: []string{"s"},
			Fn:     func(s string) bool { return s == strings.ToUpper(s) },
		},
	)
}

func TestInstall_Pack(t *testing.T) {
	m := assertion.New()
	require.NoError(t, Install(m, stringsPack()))

	assert.True(t, m.Has("HasPrefix"))
	assert.True(t, m.Has("is_upper"))

	assert.NoError(t, m.Run("HasPrefix", []any{"golang", "go"}))
	assert.NoError(t, m.Run("is_upper", []any{"GO"}))

	err := m.Run("is_upper", []any{"Go"})
	assert.ErrorIs(t, err, assertion.ErrAssertionFailed)
	assert.Contains(t, err.Error(), "output = is_upper(s); assert output")
}

func TestInstall_Conflict(t *testing.T) {
	m := assertion.New()
	clash := NewPack("clash", "1.0", assertion.Predicate{
		Name: "eq", Fn: func(a, b any) bool { return true },
	})

	err := Install(m, clash)
	assert.ErrorIs(t, err, assertion.ErrUsage)
	assert.Contains(t, err.Error(), `init plugin "clash": pack clash:`)

	// builtin left in place
	assert.Error(t, m.Eq(1, 2))
}

func TestPack_Predicates(t *testing.T) {
	p := stringsPack()
	assert.Equal(t, "strings", p.Name())
	assert.Equal(t, "1.0", p.Version())

	preds := p.Predicates()
	require.Len(t, preds, 2)
	preds[0].Name = "changed"
	assert.Equal(t, "HasPrefix", p.Predicates()[0].Name)
}

func TestPack_ConfigSettings(t *testing.T) {
	alwaysEq := assertion.Predicate{
		Name: "eq", Params: []string{"a", "b"},
		Fn: func(a, b any) bool { return true },
	}

	tests := []struct {
		name    string
		config  map[string]interface{}
		wantErr string
		check   func(t *testing.T, m *assertion.Manager)
	}{
		{
			name:   "override replaces builtin",
			config: map[string]interface{}{"loose": map[string]interface{}{"override": true}},
			check: func(t *testing.T, m *assertion.Manager) {
				assert.NoError(t, m.Eq(1, 2))
			},
		},
		{
			name:   "prefix avoids the clash",
			config: map[string]interface{}{"loose": map[string]interface{}{"prefix": "loose_"}},
			check: func(t *testing.T, m *assertion.Manager) {
				assert.True(t, m.Has("loose_eq"))
				assert.NoError(t, m.Run("loose_eq", []any{1, 2}))
				assert.Error(t, m.Eq(1, 2))
			},
		},
		{
			name:    "no settings keeps builtin",
			wantErr: "already registered: eq",
		},
		{
			name:    "settings not a map",
			config:  map[string]interface{}{"loose": true},
			wantErr: "settings must be a map",
		},
		{
			name:    "override not a bool",
			config:  map[string]interface{}{"loose": map[string]interface{}{"override": "yes"}},
			wantErr: "override must be a bool",
		},
		{
			name:    "prefix not a string",
			config:  map[string]interface{}{"loose": map[string]interface{}{"prefix": 1}},
			wantErr: "prefix must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := assertion.New()
			l := NewLoader(NewRegistry())
			err := l.LoadOne(
				NewPack("loose", "1.0", alwaysEq),
				&PluginContext{Predicates: m, Config: tt.config},
			)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, m)
		})
	}
}

func TestPluginContext_Settings(t *testing.T) {
	var nilCtx *PluginContext
	s, err := nilCtx.Settings("x")
	assert.NoError(t, err)
	assert.Nil(t, s)

	ctx := &PluginContext{Config: map[string]interface{}{
		"x": map[string]interface{}{"prefix": "p_"},
	}}
	s, err = ctx.Settings("x")
	require.NoError(t, err)
	assert.Equal(t, "p_", s["prefix"])

	s, err = ctx.Settings("missing")
	assert.NoError(t, err)
	assert.Nil(t, s)
}
