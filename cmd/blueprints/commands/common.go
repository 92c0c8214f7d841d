// Package commands provides CLI command handlers for blueprints.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/internal/cliutil"
	"github.com/erraggy/blueprints/internal/config"
	"github.com/erraggy/blueprints/internal/options"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/store"
	"github.com/erraggy/blueprints/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Output streams. Tests swap them for buffers.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// newFlagSet creates a flag set carrying the shared configuration flags.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.BindFlags(fs)
	return fs
}

// parseFlags parses args and reports whether help was requested.
func parseFlags(fs *pflag.FlagSet, args []string) (help bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// session is the state of one command invocation.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	locator  *locator.Layered
	store    store.Store
}

func newSession(fs *pflag.FlagSet) (*session, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	return &session{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		locator:  cfg.Locator(),
		store:    cfg.Store(reg),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// load resolves a blueprint by name or, with file set, from that file. A
// file is registered as an override of itself so its extends and imports
// still resolve through the configured roots.
func (s *session) load(name, file string) (*blueprint.Blueprint, error) {
	if err := options.ExactlyOne("blueprint",
		options.Source{Option: "<name>", Set: name != ""},
		options.Source{Option: "--file", Set: file != ""},
	); err != nil {
		return nil, err
	}

	overrides := maps.Clone(s.cfg.Overrides)
	if file != "" {
		if overrides == nil {
			overrides = make(map[string]string, 1)
		}
		overrides[file] = file
		name = file
	}

	opts := s.cfg.Options(s.locator, s.store, blueprint.NewZapAdapter(s.logger))
	opts = append(opts, blueprint.WithOverrides(overrides), blueprint.WithName(name))
	bp, err := blueprint.LoadWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("blueprint resolved",
		zap.String("name", name),
		zap.String("location", bp.Location()),
		zap.Stringer("stats", bp.Stats()),
	)
	return bp, nil
}

// printStats writes resolution counters and store metrics to stderr when
// --stats is set.
func (s *session) printStats(bp *blueprint.Blueprint) {
	if !s.cfg.Stats {
		return
	}
	Writef(stderr, "Stats: %s\n", bp.Stats())

	families, err := s.registry.Gather()
	if err != nil {
		Writef(stderr, "Metrics unavailable: %v\n", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			Writef(stderr, "  %s %g\n", name, m.GetCounter().GetValue())
		}
	}
}

// marshalTree serializes a document in key order. Text output is YAML.
func marshalTree(doc *tree.Map, format string) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return tree.MarshalYAML(doc)
}

// marshalValue serializes a structured result in json or yaml.
func marshalValue(v any, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return data, nil
}
