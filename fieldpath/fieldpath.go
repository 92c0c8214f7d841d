// Package fieldpath finds the schema node that governs a runtime data path.
//
// Form schemas nest field definitions under "fields". A repeatable field is
// marked with "array: true"; data below it is addressed by an item index
// (or key) that has no counterpart in the schema. Resolve walks a data path
// such as "items/0/name" down the schema, skipping those indices.
package fieldpath

import (
	"slices"
	"strings"

	"github.com/erraggy/blueprints/tree"
)

const (
	// KeyFields holds the children of a schema node.
	KeyFields = "fields"
	// KeyArray marks a schema node as repeatable.
	KeyArray = "array"
)

// Result is the outcome of Resolve.
type Result struct {
	// Node is the matched schema node, nil when nothing matched.
	Node *tree.Map
	// Path is the consumed prefix of the data path.
	Path []string
	// Remainder is the unconsumed part of the data path joined by the
	// separator, starting at the item index for array snapshots.
	Remainder string
}

// Found reports whether a schema node was matched.
func (r Result) Found() bool {
	return r.Node != nil
}

// Resolve walks path through fields, the "form.fields" tree of a blueprint.
//
// Each segment must name a child field, either bare or with a leading "."
// alias. On reaching a field marked as array the resolver records the node
// as a best-effort result, then consumes one segment as the item index
// without matching it against the schema.
//
// If every segment is consumed the last matched node is returned with an
// empty remainder. If the walk stops early the last array snapshot is
// returned, or the zero Result when no array field was crossed.
func Resolve(fields *tree.Map, path []string, separator string) Result {
	if len(path) == 0 || fields == nil {
		return Result{}
	}
	if separator == "" {
		separator = "/"
	}

	var (
		snapshot Result
		consumed []string
		node     *tree.Map
		children = fields
	)
	for i := 0; i < len(path); {
		segment := path[i]

		if node != nil && truthy(node, KeyArray) && children == nil {
			snapshot = Result{
				Node:      node,
				Path:      slices.Clone(consumed),
				Remainder: strings.Join(path[i:], separator),
			}
			consumed = append(consumed, segment)
			children = childFields(node)
			if children == nil {
				// Nothing below the item index to match against.
				children = tree.New(0)
			}
			i++
			continue
		}

		child := lookup(children, segment)
		if child == nil {
			return snapshot
		}
		consumed = append(consumed, segment)
		node = child
		children = nil
		if !truthy(node, KeyArray) {
			children = childFields(node)
		}
		i++
	}

	return Result{Node: node, Path: consumed}
}

// lookup finds the child named segment, falling back to its "." alias.
func lookup(children *tree.Map, segment string) *tree.Map {
	if children == nil {
		return nil
	}
	if child := children.Map(segment); child != nil {
		return child
	}
	return children.Map("." + segment)
}

// IsArray reports whether node is marked as a repeatable field.
func IsArray(node *tree.Map) bool {
	return node != nil && truthy(node, KeyArray)
}

func childFields(node *tree.Map) *tree.Map {
	return node.Map(KeyFields)
}

// truthy reports whether node[key] holds a set flag.
func truthy(node *tree.Map, key string) bool {
	v, ok := node.Get(key)
	if !ok {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != "" && val != "0" && !strings.EqualFold(val, "false")
	default:
		return false
	}
}
