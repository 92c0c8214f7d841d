package pathutil

import (
	"slices"
	"strings"
	"sync"
)

// Separator joins segments in String.
const Separator = "/"

// PathBuilder tracks a key path during recursive traversal.
// The zero value is an empty path ready to use.
type PathBuilder struct {
	segments []string
}

// Push appends a segment.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// Pop removes the last segment. Popping an empty path is a no-op.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// Segments returns a copy of the current segments.
func (p *PathBuilder) Segments() []string {
	return slices.Clone(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// String joins the segments with Separator.
func (p *PathBuilder) String() string {
	return strings.Join(p.segments, Separator)
}

// walkPaths recycles builders between traversals. Builders that grew past
// maxWalkDepth segments are dropped instead.
var walkPaths = sync.Pool{
	New: func() any { return &PathBuilder{segments: make([]string, 0, 8)} },
}

const maxWalkDepth = 64

// Borrow lends fn an empty PathBuilder for the length of one traversal and
// returns fn's error. fn must not keep the builder after it returns.
func Borrow(fn func(path *PathBuilder) error) error {
	p := walkPaths.Get().(*PathBuilder)
	p.Reset()
	defer func() {
		if cap(p.segments) <= maxWalkDepth {
			walkPaths.Put(p)
		}
	}()
	return fn(p)
}
