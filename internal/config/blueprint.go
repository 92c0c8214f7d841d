package config

import (
	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Store builds a file store bounded by MaxFileSize. When reg is non-nil the
// store is instrumented and its counters are registered on reg.
func (c *Config) Store(reg prometheus.Registerer) store.Store {
	f := store.NewFile()
	f.MaxFileSize = c.MaxFileSize
	if reg == nil {
		return f
	}
	return store.NewInstrumented(f, reg)
}

// Options returns the blueprint load options for these settings. The
// identity option (WithName or WithItems) is left to the caller.
func (c *Config) Options(loc locator.Locator, st store.Store, logger blueprint.Logger) []blueprint.Option {
	opts := []blueprint.Option{
		blueprint.WithContext(c.Context),
		blueprint.WithOverrides(c.Overrides),
		blueprint.WithStrictReferences(c.Strict),
		blueprint.WithMaxDepth(c.MaxDepth),
	}
	if loc != nil {
		opts = append(opts, blueprint.WithLocator(loc))
	}
	if st != nil {
		opts = append(opts, blueprint.WithStore(st))
	}
	if logger != nil {
		opts = append(opts, blueprint.WithLogger(logger))
	}
	return opts
}
