package blueprint

import "fmt"

// Stats counts the work done while loading a blueprint, including every
// document reached through extends and import.
type Stats struct {
	// DocumentsParsed is the number of documents read from the store.
	DocumentsParsed int `json:"documents_parsed" yaml:"documents_parsed"`
	// ExtendsResolved is the number of extends references that were loaded.
	ExtendsResolved int `json:"extends_resolved" yaml:"extends_resolved"`
	// ImportsExpanded is the number of import references embedded.
	ImportsExpanded int `json:"imports_expanded" yaml:"imports_expanded"`
	// ReferencesSkipped counts references dropped as missing or malformed.
	ReferencesSkipped int `json:"references_skipped" yaml:"references_skipped"`
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d documents parsed, %d extends resolved, %d imports expanded, %d references skipped",
		s.DocumentsParsed, s.ExtendsResolved, s.ImportsExpanded, s.ReferencesSkipped)
}

// session is the resolution state shared by a blueprint and every document
// it loads through imports.
type session struct {
	// trail lists the physical locations currently being resolved, outermost first.
	trail []string
	stats Stats
}
