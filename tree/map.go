package tree

import (
	"slices"
	"strings"
)

// Map is an ordered string-keyed mapping.
// The zero value is an empty map ready to use; a nil *Map reads as empty.
type Map struct {
	keys   []string
	values map[string]any
}

// New creates an empty Map with room for size keys.
func New(size int) *Map {
	return &Map{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Map returns the nested map stored under key, or nil if the value is missing
// or not a mapping.
func (m *Map) Map(key string) *Map {
	v, _ := m.Get(key)
	child, _ := v.(*Map)
	return child
}

// Set stores value under key. An existing key keeps its position;
// a new key is appended.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map) Delete(key string) {
	if m == nil || m.values == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

// Range calls fn for each entry in order until fn returns false.
// The key set is snapshotted first, so fn may modify m.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range slices.Clone(m.keys) {
		v, ok := m.values[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// Clone returns a deep copy of m. Cloning nil returns an empty map.
func (m *Map) Clone() *Map {
	out := New(m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, CloneValue(m.values[k]))
	}
	return out
}

// CloneValue deep-copies maps and sequences; scalars are returned as-is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return val
	}
}

// GetPath walks nested maps along path and returns the value found there.
// An empty path returns m itself.
func (m *Map) GetPath(path []string) any {
	if len(path) == 0 {
		return m
	}
	current := m
	for i, key := range path {
		v, ok := current.Get(key)
		if !ok {
			return nil
		}
		if i == len(path)-1 {
			return v
		}
		next, ok := v.(*Map)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// SetPath stores value at path, creating intermediate maps as needed.
// Intermediate values that are not maps are replaced. An empty path is a no-op.
func (m *Map) SetPath(path []string, value any) {
	if len(path) == 0 {
		return
	}
	current := m
	for _, key := range path[:len(path)-1] {
		next := current.Map(key)
		if next == nil {
			next = New(0)
			current.Set(key, next)
		}
		current = next
	}
	current.Set(path[len(path)-1], value)
}

// SplitPath splits a separator-delimited name into path segments.
// An empty name yields an empty path; a separator of "" defaults to "/".
func SplitPath(name, separator string) []string {
	if name == "" {
		return nil
	}
	if separator == "" {
		separator = "/"
	}
	return strings.Split(name, separator)
}

// FromAny converts a plain map into a Map. Keys are sorted since Go maps carry
// no order; nested map[string]any and []any values are converted recursively.
func FromAny(src map[string]any) *Map {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := New(len(keys))
	for _, k := range keys {
		out.Set(k, fromAnyValue(src[k]))
	}
	return out
}

func fromAnyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return FromAny(val)
	case *Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromAnyValue(item)
		}
		return out
	default:
		return val
	}
}

// ToAny converts m into plain Go values (map[string]any and []any),
// dropping key order.
func (m *Map) ToAny() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out[k] = toAnyValue(m.values[k])
	}
	return out
}

func toAnyValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.ToAny()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toAnyValue(item)
		}
		return out
	default:
		return val
	}
}
