package blueprint

import (
	"github.com/erraggy/blueprints/directive"
	"github.com/erraggy/blueprints/internal/pathutil"
	"github.com/erraggy/blueprints/merge"
	"github.com/erraggy/blueprints/tree"
)

// importer expands import directives found anywhere in a document.
type importer struct {
	bp   *Blueprint
	path *pathutil.PathBuilder
}

func newImporter(b *Blueprint) *importer {
	return &importer{bp: b}
}

// run walks the whole document once. The path builder is only valid while
// the walk is in progress.
func (im *importer) run() error {
	return pathutil.Borrow(func(path *pathutil.PathBuilder) error {
		im.path = path
		defer func() { im.path = nil }()
		return im.walk()
	})
}

// current returns the map at the walk position. Embedding replaces maps
// along the path, so it is looked up again after every change.
func (im *importer) current() *tree.Map {
	m, _ := im.bp.content().GetPath(im.path.Segments()).(*tree.Map)
	return m
}

func (im *importer) walk() error {
	m := im.current()
	if m == nil {
		return nil
	}

	for _, key := range m.Keys() {
		m = im.current()
		if m == nil {
			return nil
		}
		value, ok := m.Get(key)
		if !ok {
			continue
		}

		switch kind, _ := directive.Classify(key); kind {
		case directive.KindImport:
			if err := im.expand(key, value); err != nil {
				return err
			}
			if m := im.current(); m != nil {
				m.Delete(key)
			}

		case directive.KindNone:
			if _, isMap := value.(*tree.Map); !isMap {
				continue
			}
			im.path.Push(key)
			err := im.walk()
			im.path.Pop()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// expand loads every document named by one import directive and merges
// their forms under the map holding the directive. Later entries win over
// earlier ones; values already present locally win over all of them.
func (im *importer) expand(key string, value any) error {
	b := im.bp
	from := b.location
	if from == "" {
		from = b.name
	}

	refs, errs := directive.ParseReferences(key, value)
	if err := b.malformed(errs, from); err != nil {
		return err
	}

	var forms []*tree.Map
	for _, ref := range refs {
		logical := referencePath(ref, b.context(), b.Overrides)
		files, err := b.resolver().FindLocations(logical)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			if err := b.miss(directive.NameImport, ref.Type, logical, from); err != nil {
				return err
			}
			continue
		}

		imported := b.child(logical, files)
		if err := imported.Load(); err != nil {
			return err
		}
		forms = append(forms, imported.Form())
		b.state().stats.ImportsExpanded++
		b.log().Debug("import expanded", "ref", ref.Type, "location", files[0], "path", im.path.String())
	}

	if len(forms) > 0 {
		b.embed(im.path.Segments(), merge.All(forms...), false)
	}
	return nil
}
