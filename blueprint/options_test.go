package blueprint

import (
	"errors"
	"testing"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithOptions(t *testing.T) {
	f := testutil.NewFixture()
	f.Add("theme://base.yaml", "from: base\n")
	f.Add("custom://page.yaml", "\"@extends\": alias\ntitle: Page\n")
	f.Add("custom://partials/x.yaml", "form:\n  fields:\n    a:\n      type: text\n")

	t.Run("by name", func(t *testing.T) {
		b, err := LoadWithOptions(
			WithName("page"),
			WithContext("custom://"),
			WithOverrides(map[string]string{"alias": "theme://base"}),
			WithLocator(f.Locator),
			WithStore(f.Store),
			WithLogger(NopLogger{}),
			WithMaxDepth(10),
		)
		require.NoError(t, err)
		assert.Equal(t, "Page", b.Get("title", "/"))
		assert.Equal(t, "base", b.Get("from", "/"))
		assert.Equal(t, "custom://", b.Context)
		assert.Equal(t, 10, b.MaxDepth)
	})

	t.Run("by items", func(t *testing.T) {
		items := testutil.MustParseYAML(t, "form:\n  \"@import\": partials/x\n")
		b, err := LoadWithOptions(
			WithItems(items),
			WithContext("custom://"),
			WithLocator(f.Locator),
			WithStore(f.Store),
		)
		require.NoError(t, err)
		assert.Equal(t, "text", b.Get("form/fields/a/type", "/"))
	})

	t.Run("empty items never load a chain", func(t *testing.T) {
		b, err := LoadWithOptions(
			WithItems(testutil.MustParseYAML(t, "")),
			WithLocator(f.Locator),
			WithStore(f.Store),
		)
		require.NoError(t, err)

		require.NoError(t, b.Load())
		assert.Equal(t, 0, b.Items().Len())
		assert.Equal(t, 0, b.Stats().DocumentsParsed)
		assert.Empty(t, b.Location())
	})

	t.Run("strict", func(t *testing.T) {
		items := testutil.MustParseYAML(t, "form:\n  \"@import\": missing\n")
		_, err := LoadWithOptions(
			WithItems(items),
			WithLocator(f.Locator),
			WithStore(f.Store),
			WithStrictReferences(true),
		)
		assert.True(t, errors.Is(err, bperrors.ErrReferenceNotFound))
	})

	t.Run("overrides are copied", func(t *testing.T) {
		overrides := map[string]string{"alias": "theme://base"}
		cfg, err := applyOptions(WithName("page"), WithOverrides(overrides))
		require.NoError(t, err)
		overrides["alias"] = "changed"
		assert.Equal(t, "theme://base", cfg.overrides["alias"])
	})

	t.Run("default context", func(t *testing.T) {
		cfg, err := applyOptions(WithName("page"))
		require.NoError(t, err)
		assert.Equal(t, DefaultContext, cfg.context)
	})
}

func TestLoadWithOptionsErrors(t *testing.T) {
	items := testutil.MustParseYAML(t, "a: 1\n")

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"no identity", nil, "must specify one of WithName or WithItems"},
		{"two identities", []Option{WithName("a"), WithItems(items)}, "must specify only one of"},
		{"empty name", []Option{WithName("")}, "name cannot be empty"},
		{"nil items", []Option{WithItems(nil)}, "items cannot be nil"},
		{"negative depth", []Option{WithName("a"), WithMaxDepth(-1)}, "maxDepth cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadWithOptionsNotFound(t *testing.T) {
	f := testutil.NewFixture()
	_, err := LoadWithOptions(WithName("nope"), WithLocator(f.Locator), WithStore(f.Store))
	assert.True(t, errors.Is(err, bperrors.ErrReferenceNotFound))
}
