package blueprint

import (
	"fmt"
	"slices"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/directive"
	"github.com/erraggy/blueprints/tree"
)

// chainLoader reads a document and the ancestors named by its extends
// directives, returning their contents ancestor-first.
type chainLoader struct {
	bp *Blueprint
}

// load reads files[0] and follows its extends directives. The remaining
// files are the less specific layers of the same logical document; they are
// only read when an extends entry asks for "@parent".
func (l *chainLoader) load(logical string, files []string) ([]*tree.Map, error) {
	b := l.bp
	location, parents := files[0], files[1:]

	if err := b.enter(location, logical); err != nil {
		return nil, err
	}
	defer b.leave()

	content, err := b.documents().Parse(location)
	b.documents().Release(location)
	if err != nil {
		return nil, fmt.Errorf("blueprint: loading %s: %w", logical, err)
	}
	b.state().stats.DocumentsParsed++
	b.log().Debug("document parsed", "ref", logical, "location", location, "depth", len(b.state().trail))

	var data []*tree.Map
	for _, key := range content.Keys() {
		if kind, _ := directive.Classify(key); kind != directive.KindExtends {
			continue
		}
		value, _ := content.Get(key)
		content.Delete(key)

		ancestors, err := l.extend(location, parents, key, value)
		if err != nil {
			return nil, err
		}
		data = append(data, ancestors...)
	}

	return append(data, content), nil
}

// extend loads every entry of one extends directive in order.
func (l *chainLoader) extend(from string, parents []string, key string, value any) ([]*tree.Map, error) {
	b := l.bp
	refs, errs := directive.ParseReferences(key, value)
	if err := b.malformed(errs, from); err != nil {
		return nil, err
	}

	var data []*tree.Map
	for _, ref := range refs {
		logical := ref.Type
		var files []string
		if ref.IsParent() {
			files = parents
		} else {
			logical = referencePath(ref, b.context(), b.Overrides)
			var err error
			files, err = b.resolver().FindLocations(logical)
			if err != nil {
				return nil, err
			}
		}

		if len(files) == 0 {
			if err := b.miss(directive.NameExtends, ref.Type, logical, from); err != nil {
				return nil, err
			}
			continue
		}

		ancestors, err := l.load(logical, files)
		if err != nil {
			return nil, err
		}
		b.state().stats.ExtendsResolved++
		data = append(data, ancestors...)
	}
	return data, nil
}

// enter marks location as being resolved. Revisiting a location that is
// still active is a cycle.
func (b *Blueprint) enter(location, ref string) error {
	s := b.state()
	if slices.Contains(s.trail, location) {
		chain := append(slices.Clone(s.trail), location)
		b.log().Error("reference cycle", "ref", ref, "chain", chain)
		return &bperrors.ReferenceError{
			Ref:        ref,
			Location:   location,
			Chain:      chain,
			IsCircular: true,
		}
	}
	if limit := b.maxDepth(); len(s.trail) >= limit {
		b.log().Error("resolution too deep", "ref", ref, "limit", limit)
		return &bperrors.ResourceLimitError{
			Resource: bperrors.ResourceChainDepth,
			Limit:    int64(limit),
			Actual:   int64(len(s.trail) + 1),
			Location: ref,
		}
	}
	s.trail = append(s.trail, location)
	return nil
}

func (b *Blueprint) leave() {
	s := b.state()
	if len(s.trail) > 0 {
		s.trail = s.trail[:len(s.trail)-1]
	}
}

// miss handles a reference that resolved to no location.
func (b *Blueprint) miss(name, ref, logical, from string) error {
	if b.StrictReferences {
		return &bperrors.ReferenceError{
			Ref:        ref,
			Directive:  name,
			Location:   logical,
			IsNotFound: true,
			Message:    "referenced from " + from,
		}
	}
	b.state().stats.ReferencesSkipped++
	b.log().Warn("reference not found, skipping",
		"directive", name, "ref", ref, "location", logical, "from", from)
	return nil
}

// malformed handles directive entries that could not be parsed.
func (b *Blueprint) malformed(errs []error, from string) error {
	for _, err := range errs {
		if b.StrictReferences {
			return fmt.Errorf("blueprint: %s: %w", from, err)
		}
		b.state().stats.ReferencesSkipped++
		b.log().Warn("malformed directive entry, skipping", "error", err, "from", from)
	}
	return nil
}
