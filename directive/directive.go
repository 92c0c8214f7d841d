// Package directive recognises and decodes blueprint directive keys.
//
// A directive is any mapping key that starts or ends with "@". Its logical
// name is the key with the "@" markers trimmed, so "@import" and "import@"
// both name the import directive. Only two names carry meaning:
//
//   - extends: layered inheritance, read at the document root
//   - import: schema composition, read at any depth
//
// Every other directive name classifies as [KindUnknown] and is left alone,
// so documents written for newer tooling still load.
package directive

import (
	"strings"

	"github.com/erraggy/blueprints/bperrors"
)

// Kind enumerates the directive kinds this package interprets.
type Kind int

const (
	// KindNone marks an ordinary key.
	KindNone Kind = iota
	// KindExtends marks an extends directive.
	KindExtends
	// KindImport marks an import directive.
	KindImport
	// KindUnknown marks a directive whose name is not interpreted.
	KindUnknown
)

// String returns the logical directive name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindExtends:
		return "extends"
	case KindImport:
		return "import"
	default:
		return "unknown"
	}
}

// Directive names.
const (
	NameExtends = "extends"
	NameImport  = "import"
)

// Parent tokens select the implicit parent layers in an extends list.
const (
	ParentPrefix = "@parent"
	ParentSuffix = "parent@"
)

// IsDirective reports whether key is structurally a directive.
func IsDirective(key string) bool {
	return key != "" && (key[0] == '@' || key[len(key)-1] == '@')
}

// Classify returns the kind of key and, for directives, its logical name.
func Classify(key string) (Kind, string) {
	if !IsDirective(key) {
		return KindNone, ""
	}
	name := strings.Trim(key, "@")
	switch name {
	case NameExtends:
		return KindExtends, name
	case NameImport:
		return KindImport, name
	default:
		return KindUnknown, name
	}
}

// Reference is a single entry of an extends or import directive.
type Reference struct {
	// Type is the referenced document: a bare name, an alias from the
	// overrides table, a scheme URI, or a parent token.
	Type string
	// Context optionally replaces the blueprint's default context for this entry.
	Context string
}

// IsParent reports whether the reference selects the implicit parent layers.
func (r Reference) IsParent() bool {
	return r.Type == ParentPrefix || r.Type == ParentSuffix
}

// ParseReferences decodes a directive value into references.
//
// Accepted shapes are a string, a mapping with a string "type" and optional
// string "context", or a list of those. Entries that do not fit are reported
// as *bperrors.DirectiveError values and left out of the result; the caller
// decides whether they are fatal.
func ParseReferences(key string, value any) ([]Reference, []error) {
	switch v := value.(type) {
	case []any:
		var refs []Reference
		var errs []error
		for i, entry := range v {
			ref, err := parseEntry(key, i, entry)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			refs = append(refs, ref)
		}
		return refs, errs
	default:
		ref, err := parseEntry(key, -1, v)
		if err != nil {
			return nil, []error{err}
		}
		return []Reference{ref}, nil
	}
}

// mapping is the subset of *tree.Map used here; it keeps this package free of
// a dependency on the tree representation.
type mapping interface {
	Get(key string) (any, bool)
}

func parseEntry(key string, index int, entry any) (Reference, error) {
	switch v := entry.(type) {
	case string:
		if v == "" {
			return Reference{}, &bperrors.DirectiveError{Key: key, Index: index, Message: "empty reference"}
		}
		return Reference{Type: v}, nil

	case mapping:
		raw, ok := v.Get("type")
		typ, isString := raw.(string)
		if !ok || !isString || typ == "" {
			return Reference{}, &bperrors.DirectiveError{Key: key, Index: index, Value: raw, Message: "missing or non-string type"}
		}
		ref := Reference{Type: typ}
		if rawCtx, ok := v.Get("context"); ok && rawCtx != nil {
			ctx, ok := rawCtx.(string)
			if !ok {
				return Reference{}, &bperrors.DirectiveError{Key: key, Index: index, Value: rawCtx, Message: "context must be a string"}
			}
			ref.Context = ctx
		}
		return ref, nil

	default:
		return Reference{}, &bperrors.DirectiveError{Key: key, Index: index, Value: entry, Message: "expected string or object with type"}
	}
}
