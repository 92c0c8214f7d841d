package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSetKeepsPosition(t *testing.T) {
	m := New(0)
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestMapDelete(t *testing.T) {
	m := New(0)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestNilMapReadsAsEmpty(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("x"))
	assert.Nil(t, m.Map("x"))
	assert.Equal(t, 0, m.Clone().Len())
	assert.Empty(t, m.ToAny())
}

func TestZeroValueMapIsUsable(t *testing.T) {
	var m Map
	m.Set("x", "y")
	assert.Equal(t, []string{"x"}, m.Keys())
}

func TestClone(t *testing.T) {
	src := FromAny(map[string]any{
		"form": map[string]any{
			"fields": map[string]any{"title": map[string]any{"type": "text"}},
		},
		"list": []any{map[string]any{"a": 1}},
	})

	dup := src.Clone()
	require.True(t, Equal(src, dup))

	dup.SetPath([]string{"form", "fields", "title", "type"}, "textarea")
	dup.GetPath([]string{"list"}).([]any)[0].(*Map).Set("a", 2)

	assert.Equal(t, "text", src.GetPath([]string{"form", "fields", "title", "type"}))
	assert.Equal(t, 1, src.GetPath([]string{"list"}).([]any)[0].(*Map).values["a"])
}

func TestGetPath(t *testing.T) {
	m := FromAny(map[string]any{
		"form": map[string]any{
			"fields": map[string]any{"title": map[string]any{"type": "text"}},
		},
		"scalar": "x",
	})

	tests := []struct {
		name string
		path []string
		want any
	}{
		{name: "leaf", path: []string{"form", "fields", "title", "type"}, want: "text"},
		{name: "missing", path: []string{"form", "nope"}, want: nil},
		{name: "through scalar", path: []string{"scalar", "deeper"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.GetPath(tt.path))
		})
	}

	t.Run("empty path returns root", func(t *testing.T) {
		assert.Same(t, m, m.GetPath(nil))
	})
}

func TestSetPath(t *testing.T) {
	t.Run("creates intermediates", func(t *testing.T) {
		m := New(0)
		m.SetPath([]string{"a", "b", "c"}, 1)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, m.ToAny())
	})

	t.Run("replaces scalar intermediates", func(t *testing.T) {
		m := New(0)
		m.Set("a", "scalar")
		m.SetPath([]string{"a", "b"}, true)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": true}}, m.ToAny())
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		m := New(0)
		m.SetPath(nil, 1)
		assert.Equal(t, 0, m.Len())
	})
}

func TestSplitPath(t *testing.T) {
	assert.Nil(t, SplitPath("", "/"))
	assert.Equal(t, []string{"form", "fields"}, SplitPath("form/fields", ""))
	assert.Equal(t, []string{"form", "fields", "title"}, SplitPath("form.fields.title", "."))
}

func TestFromAnySortsKeys(t *testing.T) {
	m := FromAny(map[string]any{"zebra": 1, "apple": 2, "mango": map[string]any{"b": 1, "a": 2}})
	assert.Equal(t, []string{"apple", "mango", "zebra"}, m.Keys())
	assert.Equal(t, []string{"a", "b"}, m.Map("mango").Keys())
}

func TestEqual(t *testing.T) {
	a := New(0)
	a.Set("x", 1)
	a.Set("y", []any{"z"})

	b := New(0)
	b.Set("x", 1)
	b.Set("y", []any{"z"})
	assert.True(t, Equal(a, b))

	reordered := New(0)
	reordered.Set("y", []any{"z"})
	reordered.Set("x", 1)
	assert.False(t, Equal(a, reordered))

	var nilMap *Map
	assert.True(t, Equal(nilMap, New(0)))
}
