// Package locator maps logical blueprint paths to physical locations.
//
// A logical path is either a scheme URI such as "blueprints://pages/default.yaml"
// or a plain filesystem path. A scheme is backed by an ordered list of layers,
// most specific first, so one logical path can exist in several places: a theme
// overriding a plugin overriding the system defaults. [Locator.FindLocations]
// returns every match in that order; blueprint loading treats the first as the
// document itself and the rest as its implicit parents.
//
// An empty result means "not found" and is never an error.
package locator

import "strings"

// SchemeSeparator separates a scheme from the path in a logical URI.
const SchemeSeparator = "://"

// Locator resolves a logical path to physical locations, most specific first.
type Locator interface {
	FindLocations(logicalPath string) ([]string, error)
}

// SplitScheme splits "scheme://rest" into its parts. ok is false for plain paths.
func SplitScheme(logicalPath string) (scheme, rest string, ok bool) {
	scheme, rest, ok = strings.Cut(logicalPath, SchemeSeparator)
	if !ok || scheme == "" {
		return "", logicalPath, false
	}
	return scheme, rest, true
}

// HasScheme reports whether path names a scheme URI.
func HasScheme(path string) bool {
	_, _, ok := SplitScheme(path)
	return ok
}
