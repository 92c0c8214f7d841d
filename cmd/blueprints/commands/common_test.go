package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/erraggy/blueprints/internal/testutil"
	"github.com/erraggy/blueprints/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects command output to buffers for the rest of the test.
func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })
	return out, errOut
}

// layers writes a user and a system layer and returns --root flags for them.
func layers(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	user := testutil.WriteFiles(t, filepath.Join(dir, "user"), map[string]string{
		"pages/default.yaml": `
"@extends": "@parent"
title: User Page
form:
  fields:
    gallery:
      type: section
      "@import": partials/gallery
`,
	})
	system := testutil.WriteFiles(t, filepath.Join(dir, "system"), map[string]string{
		"pages/default.yaml": `
title: System Page
form:
  fields:
    content:
      type: markdown
`,
		"partials/gallery.yaml": `
form:
  fields:
    images:
      type: list
      array: true
      fields:
        image_url:
          type: file
`,
		"pages/broken.yaml": "extends@: missing\n",
	})
	return []string{"--root", "blueprints=" + user, "--root", "blueprints=" + system}
}

func TestMarshalTree(t *testing.T) {
	doc := tree.New(0)
	doc.Set("zeta", 1)
	doc.Set("alpha", "a")

	data, err := marshalTree(doc, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"zeta\": 1,\n  \"alpha\": \"a\"\n}", string(data))

	for _, format := range []string{FormatYAML, FormatText} {
		data, err = marshalTree(doc, format)
		require.NoError(t, err)
		assert.Equal(t, "zeta: 1\nalpha: a\n", string(data))
	}
}

func TestMarshalValue(t *testing.T) {
	data, err := marshalValue([]string{"a"}, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"a\"\n]", string(data))

	data, err = marshalValue([]string{"a"}, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "- a\n", string(data))

	_, err = marshalValue("x", FormatText)
	assert.Error(t, err)
}

func TestParseFlagsHelp(t *testing.T) {
	_, errOut := capture(t)
	fs, _ := SetupResolveFlags()

	help, err := parseFlags(fs, []string{"--help"})
	require.NoError(t, err)
	assert.True(t, help)
	assert.Contains(t, errOut.String(), "Usage: blueprints resolve")

	fs, _ = SetupResolveFlags()
	_, err = parseFlags(fs, []string{"--bogus"})
	assert.Error(t, err)
}
