package valueobject

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type point struct {
	X     int
	Y     int
	Label string
	Tags  []string
	Meta  map[string]int
	cache string
	Token string `valueobject:"private"`
}

type node struct {
	Name string
	Next *node
}

type plainRenderer struct{}

func (plainRenderer) Render(v any) string { return fmt.Sprintf("%v", v) }

func newPoint() *point {
	return &point{
		X:     1,
		Y:     2,
		Label: "origin",
		Tags:  []string{"a", "b"},
		Meta:  map[string]int{"k": 1},
		cache: "hidden",
		Token: "secret",
	}
}

func TestFields(t *testing.T) {
	typ := reflect.TypeOf(point{})

	assert.Equal(t,
		[]string{"X", "Y", "Label", "Tags", "Meta"},
		Fields(typ, false))
	assert.Equal(t,
		[]string{"X", "Y", "Label", "Tags", "Meta", "Token"},
		Fields(reflect.PointerTo(typ), true))
	assert.Nil(t, Fields(reflect.TypeOf(5), false))
}

func TestEqual(t *testing.T) {
	a := newPoint()
	b := newPoint()

	assert.True(t, Equal(a, b))
	assert.True(t, Equal(a, a))

	b.Token = "other"
	b.cache = "other"
	assert.True(t, Equal(a, b), "private and unexported fields are ignored")

	b.Tags = append(b.Tags, "c")
	assert.False(t, Equal(a, b))

	assert.False(t, Equal(a, *a), "different concrete types")
	assert.False(t, Equal(a, nil))
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(5, 5))
	assert.False(t, Equal(5, 6))
}

func TestEqual_Cyclic(t *testing.T) {
	a := &node{Name: "a"}
	a.Next = a
	b := &node{Name: "a"}
	b.Next = b

	assert.NotPanics(t, func() { Equal(a, b) })
	assert.True(t, Equal(a, a))
}

func TestHash(t *testing.T) {
	a := &point{X: 1, Y: 2, Label: "p"}
	b := &point{X: 1, Y: 2, Label: "p", Token: "ignored"}
	c := &point{X: 2, Y: 1, Label: "p"}

	assert.Equal(t, Hash(a), Hash(b))
	assert.NotEqual(t, Hash(a), Hash(c))
	assert.Equal(t, Hash(a), Hash(*a))
}

func TestHash_UnhashableFieldUsesIdentity(t *testing.T) {
	a := &point{Tags: []string{"x"}}
	b := &point{Tags: []string{"x"}}

	assert.True(t, Equal(a, b))
	assert.NotEqual(t, Hash(a), Hash(b))

	shared := []string{"x"}
	a.Tags, b.Tags = shared, shared
	assert.Equal(t, Hash(a), Hash(b))
}

func TestHash_Cyclic(t *testing.T) {
	n := &node{Name: "loop"}
	n.Next = n

	assert.NotPanics(t, func() { Hash(n) })
	assert.Equal(t, Hash(n), Hash(n))
}

func TestCopy_Shallow(t *testing.T) {
	src := newPoint()
	cp := Copy(src, false)

	require.NotSame(t, src, cp)
	assert.True(t, Equal(src, cp))
	assert.Equal(t, "hidden", cp.cache)
	assert.Same(t, &src.Tags[0], &cp.Tags[0])
	assert.Equal(t,
		reflect.ValueOf(src.Meta).Pointer(),
		reflect.ValueOf(cp.Meta).Pointer())
}

func TestCopy_Deep(t *testing.T) {
	src := newPoint()
	cp := Copy(src, true)

	assert.True(t, Equal(src, cp))
	assert.NotSame(t, &src.Tags[0], &cp.Tags[0])
	assert.NotEqual(t,
		reflect.ValueOf(src.Meta).Pointer(),
		reflect.ValueOf(cp.Meta).Pointer())

	cp.Tags[0] = "changed"
	cp.Meta["k"] = 99
	assert.Equal(t, "a", src.Tags[0])
	assert.Equal(t, 1, src.Meta["k"])
}

func TestCopy_DeepCycle(t *testing.T) {
	n := &node{Name: "loop"}
	n.Next = n

	cp := Copy(n, true)
	assert.NotSame(t, n, cp)
	assert.Same(t, cp, cp.Next)
}

func TestCopy_Nil(t *testing.T) {
	var p *point
	assert.Nil(t, Copy(p, true))
}

func TestAsDict(t *testing.T) {
	src := newPoint()

	d := AsDict(src, false)
	assert.Len(t, d, 5)
	assert.Equal(t, 1, d["X"])
	assert.NotContains(t, d, "Token")
	assert.NotContains(t, d, "cache")

	d["Tags"].([]string)[0] = "mutated"
	assert.Equal(t, "a", src.Tags[0], "snapshot is deep-copied")

	withPrivate := AsDict(src, true)
	assert.Equal(t, "secret", withPrivate["Token"])

	assert.Empty(t, AsDict(42, false))
}

func TestFromDict(t *testing.T) {
	p, err := FromDict[point](map[string]any{
		"X":     int64(3),
		"Y":     4.0,
		"Label": "p",
		"Tags":  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 4, p.Y)
	assert.Nil(t, p.Tags)
}

func TestFromDict_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{"unknown field", map[string]any{"Z": 1}},
		{"unexported field", map[string]any{"cache": "x"}},
		{"wrong type", map[string]any{"Label": 5}},
		{"lossy number", map[string]any{"X": 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDict[point](tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrField)
		})
	}

	_, err := FromDict[int](nil)
	assert.ErrorIs(t, err, ErrField)
}

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := &point{
			X:     rapid.Int().Draw(rt, "x"),
			Y:     rapid.Int().Draw(rt, "y"),
			Label: rapid.String().Draw(rt, "label"),
			Tags:  rapid.SliceOf(rapid.String()).Draw(rt, "tags"),
			Meta: rapid.MapOf(
				rapid.StringN(1, 8, -1), rapid.Int(),
			).Draw(rt, "meta"),
		}

		back, err := FromDict[point](AsDict(src, false))
		require.NoError(rt, err)
		assert.True(rt, Equal(src, back))

		deep := Copy(src, true)
		assert.True(rt, Equal(src, deep))
	})
}

func TestFormat(t *testing.T) {
	p := &point{X: 1, Label: "l"}

	out := Format(p, plainRenderer{})
	assert.Equal(t, "point(\n"+
		"    X     = 1,\n"+
		"    Y     = 0,\n"+
		"    Label = l,\n"+
		"    Tags  = [],\n"+
		"    Meta  = map[]\n"+
		")", out)

	type empty struct{}
	assert.Equal(t, "empty()", Format(&empty{}, plainRenderer{}))
	assert.Equal(t, "7", Format(7, plainRenderer{}))
}

type selfFormatting struct {
	Name string
	Self *selfFormatting
}

func (s *selfFormatting) String() string {
	return Format(s, stringerRenderer{})
}

type stringerRenderer struct{}

func (stringerRenderer) Render(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

func TestFormat_ReentryGuard(t *testing.T) {
	s := &selfFormatting{Name: "me"}
	s.Self = s

	out := s.String()
	assert.Contains(t, out, "selfFormatting(...)")
}
