package directive

import (
	"testing"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		key      string
		wantKind Kind
		wantName string
	}{
		{key: "@extends", wantKind: KindExtends, wantName: "extends"},
		{key: "extends@", wantKind: KindExtends, wantName: "extends"},
		{key: "@import", wantKind: KindImport, wantName: "import"},
		{key: "import@", wantKind: KindImport, wantName: "import"},
		{key: "@@import@", wantKind: KindImport, wantName: "import"},
		{key: "@config", wantKind: KindUnknown, wantName: "config"},
		{key: "data@", wantKind: KindUnknown, wantName: "data"},
		{key: "import", wantKind: KindNone},
		{key: "em@il", wantKind: KindNone},
		{key: "", wantKind: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			kind, name := Classify(tt.key)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "extends", KindExtends.String())
	assert.Equal(t, "import", KindImport.String())
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func obj(pairs ...any) *tree.Map {
	m := tree.New(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

func TestParseReferences(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		refs, errs := ParseReferences("@extends", "default")
		assert.Empty(t, errs)
		assert.Equal(t, []Reference{{Type: "default"}}, refs)
	})

	t.Run("object with context", func(t *testing.T) {
		refs, errs := ParseReferences("import@", obj("type", "partials/seo", "context", "blueprints://pages"))
		assert.Empty(t, errs)
		assert.Equal(t, []Reference{{Type: "partials/seo", Context: "blueprints://pages"}}, refs)
	})

	t.Run("list of mixed entries", func(t *testing.T) {
		refs, errs := ParseReferences("@extends", []any{"@parent", obj("type", "default")})
		assert.Empty(t, errs)
		require.Len(t, refs, 2)
		assert.True(t, refs[0].IsParent())
		assert.Equal(t, "default", refs[1].Type)
	})

	t.Run("malformed entries are skipped and reported", func(t *testing.T) {
		refs, errs := ParseReferences("@extends", []any{
			"good",
			obj("context", "x"),
			42,
			obj("type", "ok", "context", []any{"bad"}),
			"",
		})
		assert.Equal(t, []Reference{{Type: "good"}}, refs)
		require.Len(t, errs, 4)
		for _, err := range errs {
			assert.ErrorIs(t, err, bperrors.ErrMalformedDirective)
		}

		var dErr *bperrors.DirectiveError
		require.ErrorAs(t, errs[0], &dErr)
		assert.Equal(t, 1, dErr.Index)
	})

	t.Run("scalar value", func(t *testing.T) {
		refs, errs := ParseReferences("@import", true)
		assert.Empty(t, refs)
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], bperrors.ErrMalformedDirective)
	})

	t.Run("nil context is ignored", func(t *testing.T) {
		refs, errs := ParseReferences("@import", obj("type", "x", "context", nil))
		assert.Empty(t, errs)
		assert.Equal(t, []Reference{{Type: "x"}}, refs)
	})
}

func TestReferenceIsParent(t *testing.T) {
	assert.True(t, Reference{Type: "@parent"}.IsParent())
	assert.True(t, Reference{Type: "parent@"}.IsParent())
	assert.False(t, Reference{Type: "parent"}.IsParent())
}
