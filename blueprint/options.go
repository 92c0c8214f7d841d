package blueprint

import (
	"fmt"
	"maps"

	"github.com/erraggy/blueprints/internal/options"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/store"
	"github.com/erraggy/blueprints/tree"
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Identity (exactly one must be set)
	name  *string
	items *tree.Map

	context          string
	overrides        map[string]string
	locator          locator.Locator
	store            store.Store
	logger           Logger
	strictReferences bool
	maxDepth         int
}

// LoadWithOptions creates a blueprint from functional options and resolves it.
//
// Example:
//
//	loc := locator.NewLayered()
//	loc.AddLayer("blueprints", "user/blueprints")
//	loc.AddLayer("blueprints", "system/blueprints")
//
//	bp, err := blueprint.LoadWithOptions(
//	    blueprint.WithName("pages/default"),
//	    blueprint.WithLocator(loc),
//	)
//
// A blueprint created with WithItems skips the extends chain; only its
// imports are expanded.
func LoadWithOptions(opts ...Option) (*Blueprint, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("blueprint: invalid options: %w", err)
	}

	var b *Blueprint
	if cfg.name != nil {
		b = New(*cfg.name)
	} else {
		b = NewWithItems("", cfg.items)
	}
	b.Context = cfg.context
	b.Overrides = cfg.overrides
	b.Locator = cfg.locator
	b.Store = cfg.store
	b.Logger = cfg.logger
	b.StrictReferences = cfg.strictReferences
	b.MaxDepth = cfg.maxDepth

	if cfg.name != nil {
		err = b.Load()
	} else {
		b.loaded = true
		err = b.Init()
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		context: DefaultContext,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("blueprint",
		options.Source{Option: "WithName", Set: cfg.name != nil},
		options.Source{Option: "WithItems", Set: cfg.items != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithName identifies the blueprint to load by name.
func WithName(name string) Option {
	return func(cfg *loadConfig) error {
		if name == "" {
			return fmt.Errorf("blueprint: name cannot be empty")
		}
		cfg.name = &name
		return nil
	}
}

// WithItems supplies the blueprint content directly.
func WithItems(items *tree.Map) Option {
	return func(cfg *loadConfig) error {
		if items == nil {
			return fmt.Errorf("blueprint: items cannot be nil")
		}
		cfg.items = items
		return nil
	}
}

// WithContext sets the prefix for bare references.
// Default: "blueprints://"
func WithContext(context string) Option {
	return func(cfg *loadConfig) error {
		cfg.context = context
		return nil
	}
}

// WithOverrides sets reference aliases. The map is copied.
func WithOverrides(overrides map[string]string) Option {
	return func(cfg *loadConfig) error {
		cfg.overrides = maps.Clone(overrides)
		return nil
	}
}

// WithLocator sets the locator used to find documents.
func WithLocator(l locator.Locator) Option {
	return func(cfg *loadConfig) error {
		cfg.locator = l
		return nil
	}
}

// WithStore sets the store used to parse documents.
func WithStore(s store.Store) Option {
	return func(cfg *loadConfig) error {
		cfg.store = s
		return nil
	}
}

// WithLogger sets a structured logger.
// By default, no logging is performed.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithStrictReferences makes missing and malformed references errors.
// Default: false
func WithStrictReferences(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.strictReferences = enabled
		return nil
	}
}

// WithMaxDepth bounds nested extends and import resolution.
// A value of 0 means use the default (100).
// Returns an error if depth is negative.
func WithMaxDepth(depth int) Option {
	return func(cfg *loadConfig) error {
		if depth < 0 {
			return fmt.Errorf("blueprint: maxDepth cannot be negative")
		}
		cfg.maxDepth = depth
		return nil
	}
}
