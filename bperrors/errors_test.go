package bperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/blueprints/pages/default.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}
		assert.Equal(t, "parse error in /blueprints/pages/default.yaml at line 42, column 10: invalid syntax: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.Same(t, cause, err.Unwrap())
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrReference)
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "partials/missing",
			Directive:  "import",
			Location:   "blueprints://partials/missing.yaml",
			IsNotFound: true,
		}
		assert.Equal(t, "reference not found in import: partials/missing (blueprints://partials/missing.yaml)", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrReferenceNotFound)
		assert.NotErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("cycle carries chain", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "a",
			Directive:  "extends",
			IsCircular: true,
			Chain:      []string{"/a.yaml", "/b.yaml", "/a.yaml"},
		}
		assert.Equal(t, "cycle detected in extends: a: /a.yaml -> /b.yaml -> /a.yaml", err.Error())
		assert.ErrorIs(t, err, ErrCycleDetected)
		assert.NotErrorIs(t, err, ErrReferenceNotFound)
		assert.NotErrorIs(t, err, ErrPathTraversal)
	})

	t.Run("path traversal", func(t *testing.T) {
		err := &ReferenceError{Ref: "../../etc/passwd", IsPathTraversal: true}
		assert.ErrorIs(t, err, ErrPathTraversal)
		assert.Equal(t, "path traversal detected: ../../etc/passwd", err.Error())
	})

	t.Run("As through wrapping", func(t *testing.T) {
		inner := &ReferenceError{Ref: "x", IsCircular: true}
		wrapped := fmt.Errorf("loading blueprint: %w", inner)

		var refErr *ReferenceError
		require.ErrorAs(t, wrapped, &refErr)
		assert.True(t, refErr.IsCircular)
		assert.ErrorIs(t, wrapped, ErrCycleDetected)
	})

	t.Run("cause is unwrapped", func(t *testing.T) {
		cause := &ParseError{Path: "x.yaml"}
		err := &ReferenceError{Ref: "x", Cause: cause}
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestDirectiveError(t *testing.T) {
	tests := []struct {
		name string
		err  *DirectiveError
		want string
	}{
		{
			name: "scalar value",
			err:  &DirectiveError{Key: "@import", Index: -1, Value: 42, Message: "expected string or object"},
			want: "malformed directive @import: expected string or object (value: 42)",
		},
		{
			name: "list entry",
			err:  &DirectiveError{Key: "extends@", Index: 2, Message: "missing type"},
			want: "malformed directive extends@[2]: missing type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrMalformedDirective)
		})
	}
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{Resource: ResourceChainDepth, Limit: 100, Actual: 101, Location: "blueprints://pages/deep.yaml"}
	assert.Equal(t, "resource limit exceeded: chain_depth 101 > 100 at blueprints://pages/deep.yaml", err.Error())
	assert.ErrorIs(t, err, ErrResourceLimit)

	err = &ResourceLimitError{Resource: ResourceFileSize, Limit: 10}
	assert.Equal(t, "resource limit exceeded: file_size over 10", err.Error())
}

func TestConfigError(t *testing.T) {
	cause := errors.New("boom")
	err := &ConfigError{Option: "format", Value: "xml", Message: "must be text, json, or yaml", Cause: cause}
	assert.Equal(t, `invalid format "xml": must be text, json, or yaml: boom`, err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, cause)
}
