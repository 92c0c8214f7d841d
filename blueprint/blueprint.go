package blueprint

import (
	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/directive"
	"github.com/erraggy/blueprints/fieldpath"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/merge"
	"github.com/erraggy/blueprints/store"
	"github.com/erraggy/blueprints/tree"
)

// Blueprint is a form blueprint document and the configuration used to
// resolve it.
//
// A Blueprint is not safe for concurrent use. Subtrees returned by Items,
// Form, Fields and Resolve belong to the document; Clone them before
// modifying.
type Blueprint struct {
	// Context prefixes bare references. Default: "blueprints://"
	Context string
	// Overrides maps reference aliases to logical paths. They are consulted
	// before Context for references without an explicit context.
	Overrides map[string]string
	// Locator maps logical paths to physical locations.
	// If nil, a locator without layers is used, which only finds plain file paths.
	Locator locator.Locator
	// Store parses documents. If nil, a store.File is used.
	Store store.Store
	// Logger is the structured logger for resolution output.
	// If nil, logging is disabled (default)
	Logger Logger
	// StrictReferences turns missing and malformed references into errors
	// instead of skipping them.
	StrictReferences bool
	// MaxDepth bounds nested extends and import resolution.
	// Default: 100
	MaxDepth int

	name      string
	items     *tree.Map
	locations []string
	location  string
	loaded    bool
	session   *session
}

// New creates a blueprint identified by name. The name is resolved like an
// extends reference: an override alias, a path under Context, or a full
// scheme URI.
func New(name string) *Blueprint {
	return &Blueprint{
		Context: DefaultContext,
		name:    name,
		items:   tree.New(0),
	}
}

// NewWithItems creates a blueprint whose content is already known. Load
// skips the extends chain for it and only expands imports. items is copied.
func NewWithItems(name string, items *tree.Map) *Blueprint {
	b := New(name)
	b.items = items.Clone()
	return b
}

// Name returns the name the blueprint was created with.
func (b *Blueprint) Name() string {
	return b.name
}

// Location returns the physical location of the most specific document in
// the extends chain, or "" when the content was not loaded from a store.
func (b *Blueprint) Location() string {
	return b.location
}

// Load resolves the extends chain and expands imports.
//
// The chain is only loaded while the document has no content, so Load may be
// called again safely. A document that cannot be found at all is a
// *bperrors.ReferenceError even when StrictReferences is off.
func (b *Blueprint) Load() error {
	if !b.loaded && b.content().Len() == 0 {
		if err := b.loadChain(); err != nil {
			return err
		}
	}
	b.loaded = true
	return b.Init()
}

func (b *Blueprint) loadChain() error {
	logical := b.name
	files := b.locations
	if files == nil {
		logical = referencePath(directive.Reference{Type: b.name}, b.context(), b.Overrides)
		var err error
		files, err = b.resolver().FindLocations(logical)
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		err := &bperrors.ReferenceError{Ref: b.name, Location: logical, IsNotFound: true}
		b.log().Error("blueprint not found", "name", b.name, "location", logical)
		return err
	}

	b.log().Debug("loading blueprint", "name", b.name, "locations", len(files))
	l := &chainLoader{bp: b}
	data, err := l.load(logical, files)
	if err != nil {
		return err
	}

	b.items = merge.All(data...)
	b.location = files[0]
	return nil
}

// Init expands import directives in place. It does not touch the extends
// chain and can be used on its own for content supplied with NewWithItems.
// Init is idempotent: expanded directives are removed.
func (b *Blueprint) Init() error {
	if b.location != "" {
		if err := b.enter(b.location, b.name); err != nil {
			return err
		}
		defer b.leave()
	}
	return newImporter(b).run()
}

// Items returns the whole document.
func (b *Blueprint) Items() *tree.Map {
	return b.content()
}

// Form returns the "form" subtree, or an empty map when there is none.
func (b *Blueprint) Form() *tree.Map {
	if form := b.content().Map("form"); form != nil {
		return form
	}
	return tree.New(0)
}

// Fields returns the "form.fields" subtree, or an empty map when there is none.
func (b *Blueprint) Fields() *tree.Map {
	if fields := b.content().Map("form").Map("fields"); fields != nil {
		return fields
	}
	return tree.New(0)
}

// Get returns the value at name, a path split by separator.
func (b *Blueprint) Get(name, separator string) any {
	return b.content().GetPath(tree.SplitPath(name, separator))
}

// Set stores value at name, a path split by separator, creating
// intermediate maps as needed.
func (b *Blueprint) Set(name string, value any, separator string) {
	b.content().SetPath(tree.SplitPath(name, separator), tree.CloneValue(value))
}

// Extend deep-merges other into the document. With appendMode the values of
// other win on conflict; otherwise the document's own values win.
func (b *Blueprint) Extend(other *tree.Map, appendMode bool) {
	if appendMode {
		b.items = merge.Deep(b.content(), other)
	} else {
		b.items = merge.Deep(other, b.content())
	}
}

// ExtendWith is Extend with the content of another blueprint.
func (b *Blueprint) ExtendWith(other *Blueprint, appendMode bool) {
	var items *tree.Map
	if other != nil {
		items = other.content()
	}
	b.Extend(items, appendMode)
}

// Embed merges value into the subtree at name, a path split by separator.
// When both the existing value and value are maps they are deep-merged, with
// value winning only if appendMode is set. Otherwise value replaces what was
// there. An empty name addresses the document root, which only accepts a
// *tree.Map; any other value is ignored there.
func (b *Blueprint) Embed(name string, value any, separator string, appendMode bool) {
	b.embed(tree.SplitPath(name, separator), value, appendMode)
}

func (b *Blueprint) embed(path []string, value any, appendMode bool) {
	incoming, isMap := value.(*tree.Map)
	if len(path) == 0 && !isMap {
		return
	}
	old, _ := b.content().GetPath(path).(*tree.Map)

	switch {
	case old != nil && isMap && appendMode:
		value = merge.Deep(old, incoming)
	case old != nil && isMap:
		value = merge.Deep(incoming, old)
	default:
		value = tree.CloneValue(value)
	}

	if len(path) == 0 {
		b.items = value.(*tree.Map)
		return
	}
	b.items.SetPath(path, value)
}

// Resolve finds the field schema governing a runtime data path.
// See fieldpath.Resolve.
func (b *Blueprint) Resolve(path []string, separator string) fieldpath.Result {
	return fieldpath.Resolve(b.Fields(), path, separator)
}

// Stats returns the counters collected while loading, including nested
// imports.
func (b *Blueprint) Stats() Stats {
	return b.state().stats
}

func (b *Blueprint) content() *tree.Map {
	if b.items == nil {
		b.items = tree.New(0)
	}
	return b.items
}

func (b *Blueprint) context() string {
	if b.Context == "" {
		return DefaultContext
	}
	return b.Context
}

func (b *Blueprint) resolver() locator.Locator {
	if b.Locator == nil {
		b.Locator = locator.NewLayered()
	}
	return b.Locator
}

func (b *Blueprint) documents() store.Store {
	if b.Store == nil {
		b.Store = store.NewFile()
	}
	return b.Store
}

func (b *Blueprint) log() Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return NopLogger{}
}

func (b *Blueprint) maxDepth() int {
	if b.MaxDepth > 0 {
		return b.MaxDepth
	}
	return MaxChainDepth
}

func (b *Blueprint) state() *session {
	if b.session == nil {
		b.session = &session{}
	}
	return b.session
}

// child creates the blueprint for an imported document. It shares the
// configuration and resolution state of b.
func (b *Blueprint) child(logical string, locations []string) *Blueprint {
	return &Blueprint{
		Context:          b.context(),
		Overrides:        b.Overrides,
		Locator:          b.resolver(),
		Store:            b.documents(),
		Logger:           b.Logger,
		StrictReferences: b.StrictReferences,
		MaxDepth:         b.MaxDepth,
		name:             logical,
		items:            tree.New(0),
		locations:        locations,
		session:          b.state(),
	}
}
