package fieldpath

import (
	"strings"
	"testing"

	"github.com/erraggy/blueprints/tree"
	"github.com/stretchr/testify/assert"
)

func TestWalk(t *testing.T) {
	fields := mustFields(t, schema)

	var got []string
	Walk(fields, func(path []string, _ *tree.Map) bool {
		got = append(got, strings.Join(path, "/"))
		return true
	})

	assert.Equal(t, []string{
		"title",
		".header",
		".header/subtitle",
		"items",
		"items/name",
		"items/tags",
		"items/tags/label",
		"flat",
	}, got)
}

func TestWalkStops(t *testing.T) {
	fields := mustFields(t, schema)

	var got []string
	Walk(fields, func(path []string, _ *tree.Map) bool {
		got = append(got, strings.Join(path, "/"))
		return len(got) < 3
	})

	assert.Equal(t, []string{"title", ".header", ".header/subtitle"}, got)
}

func TestWalkSkipsScalars(t *testing.T) {
	fields := tree.New(0)
	fields.Set("note", "plain")
	fields.Set("name", tree.New(0))

	var got [][]string
	Walk(fields, func(path []string, _ *tree.Map) bool {
		got = append(got, path)
		return true
	})
	assert.Equal(t, [][]string{{"name"}}, got)

	Walk(nil, func([]string, *tree.Map) bool {
		t.Fatal("nil fields visited")
		return false
	})
}

func TestIsArray(t *testing.T) {
	fields := mustFields(t, schema)
	assert.True(t, IsArray(fields.Map("items")))
	assert.False(t, IsArray(fields.Map("title")))
	assert.False(t, IsArray(nil))
}
