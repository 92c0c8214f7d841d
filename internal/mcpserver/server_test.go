package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/erraggy/blueprints/internal/config"
	"github.com/erraggy/blueprints/internal/testutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testFiles = map[string]string{
	"pages/default.yaml": `
title: Default
form:
  fields:
    title:
      type: text
    header:
      type: section
      "@import": partials/header
    items:
      type: list
      array: true
      fields:
        name:
          type: text
`,
	"pages/blog.yaml": `
extends@: pages/default
title: Blog
`,
	"partials/header.yaml": `
form:
  fields:
    header.author:
      type: text
      label: Written by
`,
}

// newTestServer serves testFiles from a single blueprints:// layer.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	clearMCPEnv(t)
	dir := testutil.WriteFiles(t, t.TempDir(), testFiles)
	cfg := &config.Config{
		Context:   "blueprints://",
		Roots:     []config.Root{{Scheme: "blueprints", Dir: dir}},
		Separator: "/",
		MaxDepth:  10,
	}
	return New(cfg, zaptest.NewLogger(t), prometheus.NewRegistry())
}

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- s.serve(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})
	return session
}

func TestIntegrationListTools(t *testing.T) {
	session := startTestSession(t, newTestServer(t))

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"blueprint_fields", "blueprint_list", "blueprint_lookup", "blueprint_resolve"}, names)
}

func TestIntegrationCallResolve(t *testing.T) {
	session := startTestSession(t, newTestServer(t))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "blueprint_resolve",
		Arguments: map[string]any{"blueprint": map[string]any{"name": "pages/blog"}},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out resolveOutput
	decodeResult(t, result, &out)
	assert.Contains(t, out.Document, "title: Blog")
	assert.Equal(t, "yaml", out.Format)
	assert.Equal(t, 3, out.Stats.DocumentsParsed)
	assert.Equal(t, 1, out.Stats.ExtendsResolved)
	assert.Equal(t, 1, out.Stats.ImportsExpanded)
}

// decodeResult unmarshals a tool result, preferring StructuredContent and
// falling back to the first TextContent.
func decodeResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, v))
		return
	}
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}

func TestIntegrationCallError(t *testing.T) {
	session := startTestSession(t, newTestServer(t))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "blueprint_fields",
		Arguments: map[string]any{"blueprint": map[string]any{"name": "pages/missing"}},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "pages/missing")
}

func TestPaginate(t *testing.T) {
	s := &Server{limits: &serverConfig{FieldLimit: 3, MaxLimit: 4}}

	tests := []struct {
		name          string
		n             int
		offset, limit int
		start, end    int
	}{
		{"default limit", 10, 0, 0, 0, 3},
		{"explicit limit", 10, 2, 2, 2, 4},
		{"limit capped", 10, 0, 50, 0, 4},
		{"short tail", 5, 4, 3, 4, 5},
		{"offset beyond end", 5, 5, 2, 0, 0},
		{"negative offset", 5, -1, 2, 0, 0},
		{"empty", 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := s.paginate(tt.n, tt.offset, tt.limit)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	got := sanitizeError(errors.New("cannot open /home/user/blueprints/pages/default.yaml: denied"))
	assert.Equal(t, "cannot open <path>: denied", got)
}

func TestErrResult(t *testing.T) {
	res := errResult(errors.New("boom"))
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "boom", res.Content[0].(*mcp.TextContent).Text)
}
