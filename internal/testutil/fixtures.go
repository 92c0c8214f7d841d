// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/store"
	"github.com/erraggy/blueprints/tree"
)

// Fixture is an in-memory set of blueprint documents with a matching
// locator and store.
type Fixture struct {
	Locator *locator.Memory
	Store   *store.Memory
}

// NewFixture creates an empty Fixture.
func NewFixture() *Fixture {
	return &Fixture{
		Locator: locator.NewMemory(),
		Store:   store.NewMemory(),
	}
}

// Add registers YAML content for a logical path such as
// "blueprints://pages/default.yaml". Each content is one layer, most
// specific first. It returns the physical locations used.
func (f *Fixture) Add(logical string, layers ...string) []string {
	locations := make([]string, 0, len(layers))
	for i, content := range layers {
		location := fmt.Sprintf("layer%d/%s", i, logical)
		f.Store.AddString(location, content)
		locations = append(locations, location)
	}
	f.Locator.Add(logical, locations...)
	return locations
}

// MustParseYAML parses src into a tree, failing the test on error.
func MustParseYAML(t *testing.T, src string) *tree.Map {
	t.Helper()

	m, err := tree.ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse YAML fixture: %v", err)
	}
	return m
}

// WriteFiles writes files, keyed by slash-separated relative path, under
// dir and returns dir. Parent directories are created as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create fixture directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write fixture file: %v", err)
		}
	}
	return dir
}

// WriteTempYAML marshals a tree to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc *tree.Map) string {
	t.Helper()

	data, err := tree.MarshalYAML(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}
