package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/erraggy/blueprints/bperrors"
)

// Layered resolves scheme URIs against ordered root directories on disk.
//
// Example:
//
//	loc := locator.NewLayered()
//	loc.AddLayer("blueprints", "user/themes/custom/blueprints")
//	loc.AddLayer("blueprints", "system/blueprints")
//	paths, err := loc.FindLocations("blueprints://pages/default.yaml")
type Layered struct {
	layers map[string][]string
}

// NewLayered creates a Layered locator with no schemes registered.
func NewLayered() *Layered {
	return &Layered{layers: make(map[string][]string)}
}

// AddLayer appends a root directory to scheme. Layers added earlier take
// precedence over layers added later.
func (l *Layered) AddLayer(scheme, root string) {
	if l.layers == nil {
		l.layers = make(map[string][]string)
	}
	l.layers[scheme] = append(l.layers[scheme], filepath.Clean(root))
}

// PrependLayer inserts root ahead of the existing layers of scheme.
func (l *Layered) PrependLayer(scheme, root string) {
	if l.layers == nil {
		l.layers = make(map[string][]string)
	}
	l.layers[scheme] = append([]string{filepath.Clean(root)}, l.layers[scheme]...)
}

// Layers returns the root directories registered for scheme, most specific first.
func (l *Layered) Layers(scheme string) []string {
	return slices.Clone(l.layers[scheme])
}

// Schemes returns the registered scheme names in sorted order.
func (l *Layered) Schemes() []string {
	out := make([]string, 0, len(l.layers))
	for s := range l.layers {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// FindLocations implements Locator.
//
// For a scheme URI every layer holding the relative path contributes one
// location. A plain path yields itself when it names an existing file.
// Relative paths that climb out of their layer are rejected.
func (l *Layered) FindLocations(logicalPath string) ([]string, error) {
	scheme, rest, ok := SplitScheme(logicalPath)
	if !ok {
		if isFile(logicalPath) {
			return []string{logicalPath}, nil
		}
		return nil, nil
	}

	rel := filepath.FromSlash(strings.TrimPrefix(rest, "/"))
	var found []string
	for _, root := range l.layers[scheme] {
		candidate, err := within(root, rel)
		if err != nil {
			return nil, &bperrors.ReferenceError{
				Ref:             logicalPath,
				IsPathTraversal: true,
				Cause:           err,
			}
		}
		if isFile(candidate) {
			found = append(found, candidate)
		}
	}
	return found, nil
}

// List returns the logical paths under scheme matching a doublestar pattern
// (for example "pages/**/*.yaml"), sorted. A path present in several layers
// is listed once.
func (l *Layered) List(scheme, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, &bperrors.ConfigError{Option: "pattern", Value: pattern, Message: "invalid glob pattern"}
	}

	seen := make(map[string]bool)
	for _, root := range l.layers[scheme] {
		matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("locator: listing %s in %s: %w", pattern, root, err)
		}
		for _, m := range matches {
			seen[scheme+SchemeSeparator+m] = true
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

// within joins rel onto root and refuses results outside root.
func within(root, rel string) (string, error) {
	candidate := filepath.Join(root, rel)
	r, err := filepath.Rel(root, candidate)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s escapes layer %s", rel, root)
	}
	return candidate, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

var _ Locator = (*Layered)(nil)
