package store

import (
	"sync"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/tree"
)

// Memory serves documents registered in memory, either as raw bytes decoded
// on demand or as ready trees. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	raw  map[string][]byte
	docs map[string]*tree.Map
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		raw:  make(map[string][]byte),
		docs: make(map[string]*tree.Map),
	}
}

// AddBytes registers the encoded document at location. The format follows
// the location's extension.
func (m *Memory) AddBytes(location string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	delete(m.docs, location)
	m.raw[location] = data
}

// AddString is AddBytes for string content.
func (m *Memory) AddString(location, data string) {
	m.AddBytes(location, []byte(data))
}

// AddTree registers a decoded document at location. The tree is copied.
func (m *Memory) AddTree(location string, doc *tree.Map) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	delete(m.raw, location)
	m.docs[location] = doc.Clone()
}

// Parse implements Store. Unknown locations yield a *bperrors.ParseError.
func (m *Memory) Parse(location string) (*tree.Map, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if doc, ok := m.docs[location]; ok {
		return doc.Clone(), nil
	}
	data, ok := m.raw[location]
	if !ok {
		return nil, &bperrors.ParseError{Path: location, Message: "document not registered"}
	}
	doc, err := Decode(data, DetectFormat(location))
	if err != nil {
		return nil, withPath(err, location)
	}
	return doc, nil
}

// Release implements Store. Registered documents stay available.
func (m *Memory) Release(string) {}

func (m *Memory) init() {
	if m.raw == nil {
		m.raw = make(map[string][]byte)
	}
	if m.docs == nil {
		m.docs = make(map[string]*tree.Map)
	}
}

var _ Store = (*Memory)(nil)
