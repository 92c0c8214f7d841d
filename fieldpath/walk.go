package fieldpath

import (
	"slices"

	"github.com/erraggy/blueprints/tree"
)

// WalkFunc is called for every schema node visited by Walk. path holds the
// field names from the root, including any "." alias prefix. Returning false
// stops the walk.
type WalkFunc func(path []string, node *tree.Map) bool

// Walk visits every field of fields depth-first in document order,
// descending into each node's "fields". Entries whose value is not a
// mapping are skipped.
func Walk(fields *tree.Map, fn WalkFunc) {
	walk(fields, nil, fn)
}

func walk(fields *tree.Map, prefix []string, fn WalkFunc) bool {
	if fields == nil {
		return true
	}
	for _, key := range fields.Keys() {
		node := fields.Map(key)
		if node == nil {
			continue
		}
		path := append(slices.Clone(prefix), key)
		if !fn(path, node) {
			return false
		}
		if !walk(childFields(node), path, fn) {
			return false
		}
	}
	return true
}
