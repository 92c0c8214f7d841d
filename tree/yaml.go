package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erraggy/blueprints/bperrors"
	"go.yaml.in/yaml/v4"
)

// mergeTag is the resolved tag of a YAML "<<" merge key.
const mergeTag = "!!merge"

// ParseYAML decodes a YAML or JSON document into a Map, preserving key order.
// An empty document yields an empty map; a document whose root is not a
// mapping is a *bperrors.ParseError.
func ParseYAML(data []byte) (*Map, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &bperrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	return FromNode(&node)
}

// FromNode converts a decoded yaml.Node into a Map.
func FromNode(node *yaml.Node) (*Map, error) {
	if node == nil || node.Kind == 0 {
		return New(0), nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return New(0), nil
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)

	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return New(0), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &bperrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: "document root must be a mapping",
		}
	}

	v, err := nodeValue(node)
	if err != nil {
		return nil, err
	}
	return v.(*Map), nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// nodeValue converts a yaml.Node into a tree value.
func nodeValue(node *yaml.Node) (any, error) {
	node = resolveAlias(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		return mappingValue(node)

	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, &bperrors.ParseError{
				Line:    node.Line,
				Column:  node.Column,
				Message: fmt.Sprintf("invalid scalar %q", node.Value),
				Cause:   err,
			}
		}
		return normalizeScalar(v), nil

	default:
		return nil, &bperrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind),
		}
	}
}

func mappingValue(node *yaml.Node) (*Map, error) {
	out := New(len(node.Content) / 2)
	var merged []*Map

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		if keyNode.Tag == mergeTag {
			sources, err := mergeSources(valNode)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sources...)
			continue
		}

		v, err := nodeValue(valNode)
		if err != nil {
			return nil, err
		}
		out.Set(keyNode.Value, v)
	}

	// Merge keys never override explicit keys; earlier sources win.
	for _, src := range merged {
		for _, k := range src.keys {
			if !out.Has(k) {
				out.Set(k, CloneValue(src.values[k]))
			}
		}
	}
	return out, nil
}

func mergeSources(node *yaml.Node) ([]*Map, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		m, err := mappingValue(node)
		if err != nil {
			return nil, err
		}
		return []*Map{m}, nil
	case yaml.SequenceNode:
		var out []*Map
		for _, child := range node.Content {
			more, err := mergeSources(child)
			if err != nil {
				return nil, err
			}
			out = append(out, more...)
		}
		return out, nil
	default:
		return nil, &bperrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: "merge key value must be a mapping or a list of mappings",
		}
	}
}

// normalizeScalar maps decoded scalars onto the value set documented for Map.
func normalizeScalar(v any) any {
	switch val := v.(type) {
	case uint64:
		if val <= 1<<63-1 {
			return int64(val)
		}
		return float64(val)
	case uint:
		return int64(val)
	case int32:
		return int(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}

// ToNode converts m into a yaml.Node mapping in key order.
func ToNode(m *Map) (*yaml.Node, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, m.Len()*2),
	}
	if m == nil {
		return node, nil
	}
	for _, k := range m.keys {
		valNode, err := valueToNode(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("tree: key %q: %w", k, err)
		}
		node.Content = append(node.Content, scalarNode("!!str", k), valNode)
	}
	return node, nil
}

func valueToNode(v any) (*yaml.Node, error) {
	if v == nil {
		return scalarNode("!!null", "null"), nil
	}

	switch val := v.(type) {
	case *Map:
		return ToNode(val)
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case float64:
		return scalarNode("!!float", strconv.FormatFloat(val, 'f', -1, 64)), nil
	case string:
		return scalarNode("!!str", val), nil
	case []any:
		node := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(val)),
		}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		return ToNode(FromAny(val))
	default:
		// For unknown types, round-trip through JSON
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %T to yaml.Node: %w", v, err)
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return valueToNode(result)
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// MarshalYAML serializes m to YAML with keys in order.
func MarshalYAML(m *Map) ([]byte, error) {
	node, err := ToNode(m)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// MarshalJSON implements json.Marshaler, writing keys in order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("tree: key %q: %w", k, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler so a Map nested in another value
// keeps its key order.
func (m *Map) MarshalYAML() (any, error) {
	return ToNode(m)
}
