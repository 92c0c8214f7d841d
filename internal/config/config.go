// Package config loads settings for the blueprints command and MCP server.
//
// Settings come from, in increasing precedence: defaults, an optional
// .blueprints.yaml in the working directory (or the file named by
// --config), BLUEPRINTS_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/bperrors"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/store"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables, e.g. BLUEPRINTS_CONTEXT.
const EnvPrefix = "BLUEPRINTS"

// Config holds the resolved settings.
type Config struct {
	// Context prefixes bare blueprint references.
	Context string `json:"context"`
	// Roots maps schemes to layer directories, most specific first.
	Roots []Root `json:"roots,omitempty"`
	// Overrides maps reference aliases to logical paths.
	Overrides map[string]string `json:"overrides,omitempty"`
	// Strict makes missing and malformed references errors.
	Strict bool `json:"strict"`
	// Format is the output format: text, json or yaml.
	Format string `json:"format"`
	// Separator splits field paths given on the command line.
	Separator string `json:"separator"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `json:"log_level"`
	// MaxDepth bounds nested extends and import resolution.
	MaxDepth int `json:"max_depth"`
	// MaxFileSize bounds the bytes read per document.
	MaxFileSize int64 `json:"max_file_size"`
	// Stats prints resolution counters after the command.
	Stats bool `json:"stats"`
}

// fileConfig is the decoded form of the config file, environment and flags.
type fileConfig struct {
	Context     string            `mapstructure:"context"`
	Roots       []string          `mapstructure:"roots"`
	Overrides   map[string]string `mapstructure:"overrides"`
	Strict      bool              `mapstructure:"strict"`
	Format      string            `mapstructure:"format"`
	Separator   string            `mapstructure:"separator"`
	LogLevel    string            `mapstructure:"log_level"`
	MaxDepth    int               `mapstructure:"max_depth"`
	MaxFileSize int64             `mapstructure:"max_file_size"`
	Stats       bool              `mapstructure:"stats"`
}

// Root is one scheme layer.
type Root struct {
	Scheme string
	Dir    string
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default .blueprints.yaml if present)")
	fs.String("context", blueprint.DefaultContext, "prefix for bare blueprint references")
	fs.StringArray("root", nil, "scheme layer as scheme=dir, most specific first (repeatable)")
	fs.StringArray("override", nil, "reference alias as alias=path (repeatable)")
	fs.Bool("strict", false, "fail on missing or malformed references")
	fs.StringP("format", "f", "text", "output format: text, json, or yaml")
	fs.String("separator", "/", "field path separator")
	fs.String("log-level", "warn", "log level: debug, info, warn, or error")
	fs.Int("max-depth", blueprint.MaxChainDepth, "maximum extends/import nesting")
	fs.Int64("max-file-size", store.DefaultMaxFileSize, "maximum document size in bytes")
	fs.Bool("stats", false, "print resolution statistics to stderr")
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"context":       "context",
	"strict":        "strict",
	"format":        "format",
	"separator":     "separator",
	"log-level":     "log_level",
	"max-depth":     "max_depth",
	"max-file-size": "max_file_size",
	"stats":         "stats",
}

// Load resolves the configuration for an already parsed flag set. fs may
// be nil, in which case only defaults, the config file and the environment
// apply.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// Override aliases may contain dots, so keys are not split on them.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	v.SetDefault("context", blueprint.DefaultContext)
	v.SetDefault("format", "text")
	v.SetDefault("separator", "/")
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_depth", blueprint.MaxChainDepth)
	v.SetDefault("max_file_size", store.DefaultMaxFileSize)
	v.SetDefault("strict", false)
	v.SetDefault("stats", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: binding --%s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".blueprints")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, &bperrors.ConfigError{Option: "config", Value: configFile, Message: "cannot read config file", Cause: err}
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, &bperrors.ConfigError{Option: "config", Message: "cannot decode configuration", Cause: err}
	}
	cfg := Config{
		Context:     fc.Context,
		Overrides:   make(map[string]string, len(fc.Overrides)),
		Strict:      fc.Strict,
		Format:      fc.Format,
		Separator:   fc.Separator,
		LogLevel:    fc.LogLevel,
		MaxDepth:    fc.MaxDepth,
		MaxFileSize: fc.MaxFileSize,
		Stats:       fc.Stats,
	}
	maps.Copy(cfg.Overrides, fc.Overrides)

	rootPairs := fc.Roots
	if fs != nil {
		flagRoots, _ := fs.GetStringArray("root")
		flagOverrides, _ := fs.GetStringArray("override")
		// Roots given on the command line are more specific than configured ones.
		rootPairs = append(slices.Clone(flagRoots), rootPairs...)
		parsed, err := parsePairs("override", flagOverrides)
		if err != nil {
			return nil, err
		}
		maps.Copy(cfg.Overrides, parsed)
	}
	for _, pair := range rootPairs {
		scheme, dir, ok := strings.Cut(pair, "=")
		if !ok || scheme == "" || dir == "" {
			return nil, &bperrors.ConfigError{Option: "root", Value: pair, Message: "expected scheme=dir"}
		}
		cfg.Roots = append(cfg.Roots, Root{Scheme: strings.TrimSuffix(scheme, locator.SchemeSeparator), Dir: dir})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option values.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return &bperrors.ConfigError{Option: "format", Value: c.Format, Message: "must be text, json, or yaml"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &bperrors.ConfigError{Option: "log-level", Value: c.LogLevel, Message: "must be debug, info, warn, or error"}
	}
	if c.Separator == "" {
		return &bperrors.ConfigError{Option: "separator", Message: "cannot be empty"}
	}
	if c.MaxDepth < 0 {
		return &bperrors.ConfigError{Option: "max-depth", Value: fmt.Sprint(c.MaxDepth), Message: "cannot be negative"}
	}
	if c.MaxFileSize < 0 {
		return &bperrors.ConfigError{Option: "max-file-size", Value: fmt.Sprint(c.MaxFileSize), Message: "cannot be negative"}
	}
	return nil
}

// Locator builds a layered locator from the configured roots.
func (c *Config) Locator() *locator.Layered {
	loc := locator.NewLayered()
	for _, r := range c.Roots {
		loc.AddLayer(r.Scheme, r.Dir)
	}
	return loc
}

func parsePairs(option string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, &bperrors.ConfigError{Option: option, Value: pair, Message: "expected key=value"}
		}
		out[k] = v
	}
	return out, nil
}
