package blueprint

import (
	"path"
	"strings"

	"github.com/erraggy/blueprints/directive"
	"github.com/erraggy/blueprints/locator"
)

const (
	// DefaultContext is the namespace prefix for bare references.
	DefaultContext = "blueprints://"
	// DefaultExtension is appended to references without a recognized suffix.
	DefaultExtension = ".yaml"
	// MaxChainDepth bounds nested extends and import resolution.
	MaxChainDepth = 100
)

// recognizedExtensions are the document suffixes left untouched by
// reference resolution.
var recognizedExtensions = []string{".yaml", ".yml", ".json", ".jsonc", ".toml"}

// referencePath turns a directive reference into a logical path.
//
// A type that already names a scheme is used as-is. Without an explicit
// context the type is looked up in overrides, then prefixed with the
// document context. An explicit context is joined to the type with a single
// slash.
func referencePath(ref directive.Reference, context string, overrides map[string]string) string {
	var p string
	switch {
	case locator.HasScheme(ref.Type):
		p = ref.Type
	case ref.Context == "":
		if o, ok := overrides[ref.Type]; ok {
			p = o
		} else {
			p = context + ref.Type
		}
	case strings.HasSuffix(ref.Context, "/"):
		p = ref.Context + ref.Type
	default:
		p = ref.Context + "/" + ref.Type
	}
	return withExtension(p)
}

// withExtension appends DefaultExtension unless p has a recognized suffix.
func withExtension(p string) string {
	ext := strings.ToLower(path.Ext(p))
	for _, known := range recognizedExtensions {
		if ext == known {
			return p
		}
	}
	return p + DefaultExtension
}
