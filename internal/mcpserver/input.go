package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/internal/options"
	"github.com/erraggy/blueprints/store"
)

// blueprintInput represents the two ways a blueprint can be given to a tool.
// Exactly one of Name or Content must be set.
type blueprintInput struct {
	Name    string `json:"name,omitempty"    jsonschema:"Blueprint name resolved through the configured roots, e.g. pages/default"`
	Content string `json:"content,omitempty" jsonschema:"Inline blueprint document; its imports are expanded but extends are not followed"`
	Format  string `json:"format,omitempty"  jsonschema:"Format of inline content: yaml (default), json or toml"`
}

// cacheKey identifies the input in the blueprint cache.
func (in blueprintInput) cacheKey() string {
	if in.Name != "" {
		return "name:" + in.Name
	}
	h := sha256.Sum256([]byte(in.Format + "\x00" + in.Content))
	return "content:" + hex.EncodeToString(h[:])
}

// resolve loads the blueprint, using the session cache when enabled.
func (s *Server) resolve(in blueprintInput) (*blueprint.Blueprint, error) {
	if err := options.ExactlyOne("blueprint",
		options.Source{Option: "name", Set: in.Name != ""},
		options.Source{Option: "content", Set: in.Content != ""},
	); err != nil {
		return nil, err
	}
	if int64(len(in.Content)) > s.limits.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use a name instead, or set BLUEPRINTS_MCP_MAX_INLINE_SIZE to increase",
			len(in.Content), s.limits.MaxInlineSize)
	}

	key := in.cacheKey()
	if s.limits.CacheEnabled {
		if bp := s.cache.get(key); bp != nil {
			return bp, nil
		}
	}

	opts := s.cfg.Options(s.locator, s.store, blueprint.NewZapAdapter(s.logger))
	ttl := s.limits.CacheNameTTL
	if in.Name != "" {
		opts = append(opts, blueprint.WithName(in.Name))
	} else {
		format, err := inlineFormat(in.Format)
		if err != nil {
			return nil, err
		}
		items, err := store.Decode([]byte(in.Content), format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, blueprint.WithItems(items))
		ttl = s.limits.CacheContentTTL
	}

	bp, err := blueprint.LoadWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if s.limits.CacheEnabled {
		s.cache.put(key, bp, ttl)
	}
	return bp, nil
}

func inlineFormat(name string) (store.Format, error) {
	switch strings.ToLower(name) {
	case "", "yaml", "yml":
		return store.FormatYAML, nil
	case "json", "jsonc":
		return store.FormatJSON, nil
	case "toml":
		return store.FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported content format %q; use yaml, json or toml", name)
	}
}
