// Package store parses blueprint documents from physical locations.
//
// A [Store] turns a location returned by a locator into a *tree.Map. The
// format is chosen from the file extension:
//
//	.yaml .yml   YAML (key order preserved)
//	.json .jsonc JSON, with comments and trailing commas allowed
//	.toml        TOML (keys sorted)
//
// Unknown extensions are decoded as YAML.
//
// Stores may cache parses. Callers own the returned tree and must call
// Release once they have copied what they need.
package store

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/tree"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
)

// Store parses documents by physical location.
type Store interface {
	// Parse returns the document at location. The result is owned by the caller.
	Parse(location string) (*tree.Map, error)
	// Release drops any cached state for location.
	Release(location string)
}

// Format identifies a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat returns the format implied by the extension of location.
func DetectFormat(location string) Format {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*tree.Map, error) {
	switch format {
	case FormatJSON:
		// JSON is a subset of YAML, so the YAML decoder keeps key order.
		return tree.ParseYAML(jsonc.ToJSON(data))
	case FormatTOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			pe := &bperrors.ParseError{Message: "invalid TOML", Cause: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, pe.Column = de.Position()
			}
			return nil, pe
		}
		return tree.FromAny(normalizeTOML(v).(map[string]any)), nil
	default:
		return tree.ParseYAML(data)
	}
}

// normalizeTOML maps go-toml value types onto the value set tree.Map documents.
func normalizeTOML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeTOML(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeTOML(item)
		}
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeTOML(item)
		}
		return out
	case int64, float64, string, bool, nil:
		return val
	case interface{ String() string }:
		// dates and times
		return val.String()
	default:
		return val
	}
}

// withPath attaches location to a *bperrors.ParseError that lacks one.
func withPath(err error, location string) error {
	var pe *bperrors.ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = location
	}
	return err
}
