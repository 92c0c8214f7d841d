package store

import (
	"io"
	"os"
	"sync"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/tree"
)

// DefaultMaxFileSize is the largest document File will read (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// File parses documents from the local filesystem and caches the results
// until released. It is safe for concurrent use.
type File struct {
	// MaxFileSize bounds the bytes read per document. Zero means DefaultMaxFileSize.
	MaxFileSize int64

	mu    sync.Mutex
	cache map[string]*tree.Map
}

// NewFile creates a File store.
func NewFile() *File {
	return &File{cache: make(map[string]*tree.Map)}
}

// Parse implements Store.
func (f *File) Parse(location string) (*tree.Map, error) {
	f.mu.Lock()
	if cached, ok := f.cache[location]; ok {
		f.mu.Unlock()
		return cached.Clone(), nil
	}
	f.mu.Unlock()

	data, err := f.read(location)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, DetectFormat(location))
	if err != nil {
		return nil, withPath(err, location)
	}

	f.mu.Lock()
	if f.cache == nil {
		f.cache = make(map[string]*tree.Map)
	}
	f.cache[location] = doc
	f.mu.Unlock()
	return doc.Clone(), nil
}

// Release implements Store.
func (f *File) Release(location string) {
	f.mu.Lock()
	delete(f.cache, location)
	f.mu.Unlock()
}

// Cached reports how many documents are currently cached.
func (f *File) Cached() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}

func (f *File) read(location string) ([]byte, error) {
	limit := f.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	fh, err := os.Open(location)
	if err != nil {
		return nil, &bperrors.ParseError{Path: location, Message: "cannot open document", Cause: err}
	}
	defer func() { _ = fh.Close() }()

	data, err := io.ReadAll(io.LimitReader(fh, limit+1))
	if err != nil {
		return nil, &bperrors.ParseError{Path: location, Message: "cannot read document", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &bperrors.ResourceLimitError{
			Resource: bperrors.ResourceFileSize,
			Limit:    limit,
			Actual:   int64(len(data)),
			Location: location,
		}
	}
	return data, nil
}

var _ Store = (*File)(nil)
