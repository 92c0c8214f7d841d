package mcpserver

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// serverConfig holds the MCP-specific limits. Blueprint resolution settings
// come from internal/config; these tune caching and result sizes.
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheNameTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Field listing defaults.
	FieldLimit int
	MaxLimit   int

	// MaxInlineSize bounds inline blueprint content in bytes.
	MaxInlineSize int64
}

// loadServerConfig reads BLUEPRINTS_MCP_* environment variables. Invalid
// values log a warning and fall back to the default.
func loadServerConfig(logger *zap.Logger) *serverConfig {
	env := envReader{logger: logger}
	return &serverConfig{
		CacheEnabled:       env.bool("BLUEPRINTS_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       env.int("BLUEPRINTS_MCP_CACHE_MAX_SIZE", 32),
		CacheNameTTL:       env.duration("BLUEPRINTS_MCP_CACHE_NAME_TTL", 30*time.Second),
		CacheContentTTL:    env.duration("BLUEPRINTS_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: env.duration("BLUEPRINTS_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		FieldLimit:         env.int("BLUEPRINTS_MCP_FIELD_LIMIT", 100),
		MaxLimit:           env.int("BLUEPRINTS_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(env.int("BLUEPRINTS_MCP_MAX_INLINE_SIZE", 1024*1024)),
	}
}

type envReader struct {
	logger *zap.Logger
}

func (e envReader) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.logger.Warn("invalid bool env var, using default",
			zap.String("key", key), zap.String("value", v), zap.Bool("default", fallback))
		return fallback
	}
	return b
}

func (e envReader) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.logger.Warn("invalid int env var, using default",
			zap.String("key", key), zap.String("value", v), zap.Int("default", fallback))
		return fallback
	}
	return n
}

func (e envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.logger.Warn("invalid duration env var, using default",
			zap.String("key", key), zap.String("value", v), zap.Duration("default", fallback))
		return fallback
	}
	return d
}
