// Package tree provides the ordered nested mapping used to hold blueprint content.
//
// A [Map] keeps its keys in insertion order, which matters for blueprints:
// form fields render in the order they are declared, and merged documents keep
// ancestor fields ahead of fields added by descendants.
//
// Values stored in a Map are one of:
//   - scalars: string, bool, int, int64, float64, or nil
//   - *Map for nested mappings
//   - []any for sequences (elements follow the same rules)
//
// # Decoding
//
// [ParseYAML] decodes YAML (and therefore JSON) through yaml.Node so the source
// key order survives:
//
//	m, err := tree.ParseYAML(data)
//	fields, _ := m.GetPath([]string{"form", "fields"}).(*tree.Map)
//
// # Paths
//
// [Map.GetPath] and [Map.SetPath] address nested values by key segments;
// [SplitPath] turns "form/fields/title" into segments for a given separator.
// SetPath replaces scalar intermediates with new maps, the same way blueprint
// embedding overwrites non-mapping values.
package tree
