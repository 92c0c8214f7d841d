// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes blueprint resolution as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/blueprints"
	"github.com/erraggy/blueprints/internal/config"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const serverInstructions = `blueprints MCP server: resolves extends and import directives in form blueprints and answers questions about their fields.

Blueprints are found through the roots configured in .blueprints.yaml, BLUEPRINTS_* environment variables or the flags given to 'blueprints mcp'. Tools accept either a blueprint name (resolved through those roots) or inline content.

Key settings:
- BLUEPRINTS_MCP_CACHE_ENABLED (default: true): cache resolved blueprints per session
- BLUEPRINTS_MCP_CACHE_NAME_TTL (default: 30s): cache TTL for named blueprints
- BLUEPRINTS_MCP_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline content
- BLUEPRINTS_MCP_FIELD_LIMIT (default: 100): default page size for blueprint_fields
- BLUEPRINTS_MCP_MAX_INLINE_SIZE (default: 1MiB): largest inline document accepted`

// Server serves blueprint tools over MCP.
type Server struct {
	cfg     *config.Config
	limits  *serverConfig
	logger  *zap.Logger
	locator *locator.Layered
	store   store.Store
	cache   *blueprintCache
}

// New creates a server for cfg. Store counters are registered on reg when
// it is non-nil.
func New(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	limits := loadServerConfig(logger)
	return &Server{
		cfg:     cfg,
		limits:  limits,
		logger:  logger.Named("mcp"),
		locator: cfg.Locator(),
		store:   cfg.Store(reg),
		cache:   newBlueprintCache(limits.CacheMaxSize),
	}
}

// Run serves over stdio and blocks until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.serve(ctx, &mcp.StdioTransport{})
}

func (s *Server) serve(ctx context.Context, transport mcp.Transport) error {
	if s.limits.CacheEnabled {
		s.cache.startSweeper(ctx, s.limits.CacheSweepInterval)
	}
	s.logger.Info("serving", zap.Strings("schemes", s.locator.Schemes()))
	return s.mcpServer().Run(ctx, transport)
}

func (s *Server) mcpServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "blueprints", Version: blueprints.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.registerTools(server)
	return server
}

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blueprint_resolve",
		Description: "Resolve a blueprint: follow its extends chain (including @parent layers) and expand import directives, then return the merged document as YAML or JSON. Use form_only=true to return only the form section. Resolution statistics are included.",
	}, s.handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blueprint_fields",
		Description: "List the form fields of a resolved blueprint in document order with their type, display label and whether they repeat (array). Use offset/limit to paginate large forms.",
	}, s.handleFields)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blueprint_lookup",
		Description: "Find the form field that governs a data path such as header/title or items/0/name. Item indexes below array fields are skipped. When the path runs past the schema, the nearest array field is returned with the unmatched remainder.",
	}, s.handleLookup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blueprint_list",
		Description: "List the blueprints available under a scheme across all configured layers. Patterns use doublestar syntax (** matches any number of directories).",
	}, s.handleList)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to the field limit.
func (s *Server) paginate(n, offset, limit int) (start, end int) {
	if limit <= 0 {
		limit = s.limits.FieldLimit
	}
	if limit > s.limits.MaxLimit {
		limit = s.limits.MaxLimit
	}
	if offset < 0 || offset >= n {
		return 0, 0
	}
	end = offset + limit
	if end < offset || end > n {
		end = n
	}
	return offset, end
}

// pathPattern matches absolute filesystem paths in error messages so they
// are not leaked to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
