// Package options checks mutually exclusive inputs shared by the library
// options, the command line and the MCP tools.
package options

import (
	"strings"

	"github.com/erraggy/blueprints/bperrors"
)

// Source is one way of supplying an input.
type Source struct {
	// Option is the user-facing name, e.g. "WithName" or "--file".
	Option string
	// Set reports whether the caller supplied it.
	Set bool
}

// ExactlyOne returns a *bperrors.ConfigError for input unless exactly one
// of sources is set.
func ExactlyOne(input string, sources ...Source) error {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &bperrors.ConfigError{
			Option:  input,
			Message: "must specify one of " + strings.Join(names, " or "),
		}
	default:
		return &bperrors.ConfigError{
			Option:  input,
			Value:   strings.Join(set, ", "),
			Message: "must specify only one of " + strings.Join(names, " or "),
		}
	}
}
