package locator

import "slices"

// Memory is a Locator backed by an explicit table of logical paths.
// Lookups for unregistered paths return no locations.
type Memory struct {
	entries map[string][]string
}

// NewMemory creates an empty Memory locator.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]string)}
}

// Add registers locations for logicalPath, most specific first, appending to
// any already registered.
func (m *Memory) Add(logicalPath string, locations ...string) {
	if m.entries == nil {
		m.entries = make(map[string][]string)
	}
	m.entries[logicalPath] = append(m.entries[logicalPath], locations...)
}

// FindLocations implements Locator.
func (m *Memory) FindLocations(logicalPath string) ([]string, error) {
	return slices.Clone(m.entries[logicalPath]), nil
}

var _ Locator = (*Memory)(nil)
