package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/locator"
	"github.com/erraggy/blueprints/tree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type resolveInput struct {
	Blueprint blueprintInput `json:"blueprint"            jsonschema:"The blueprint to resolve"`
	FormOnly  bool           `json:"form_only,omitempty"  jsonschema:"Return only the form section"`
	Output    string         `json:"output,omitempty"     jsonschema:"Document encoding: yaml (default) or json"`
}

type resolveOutput struct {
	Name     string          `json:"name,omitempty"`
	Location string          `json:"location,omitempty"`
	Format   string          `json:"format"`
	Document string          `json:"document"`
	Stats    blueprint.Stats `json:"stats"`
}

func (s *Server) handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	bp, err := s.resolve(input.Blueprint)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	doc := bp.Items()
	if input.FormOnly {
		doc = bp.Form()
	}

	output := resolveOutput{
		Name:     bp.Name(),
		Location: sanitizePath(bp.Location()),
		Stats:    bp.Stats(),
	}
	var data []byte
	switch strings.ToLower(input.Output) {
	case "", "yaml":
		output.Format = "yaml"
		data, err = tree.MarshalYAML(doc)
	case "json":
		output.Format = "json"
		data, err = json.MarshalIndent(doc, "", "  ")
	default:
		return errResult(fmt.Errorf("invalid output %q; use yaml or json", input.Output)), resolveOutput{}, nil
	}
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}

type fieldsInput struct {
	Blueprint blueprintInput `json:"blueprint"           jsonschema:"The blueprint whose form fields to list"`
	Separator string         `json:"separator,omitempty" jsonschema:"Separator for field paths (default /)"`
	Offset    int            `json:"offset,omitempty"    jsonschema:"Number of fields to skip"`
	Limit     int            `json:"limit,omitempty"     jsonschema:"Maximum number of fields to return"`
}

type fieldSummary struct {
	Path  string `json:"path"`
	Type  string `json:"type,omitempty"`
	Label string `json:"label"`
	Array bool   `json:"array,omitempty"`
}

type fieldsOutput struct {
	Total    int            `json:"total"`
	Returned int            `json:"returned"`
	Fields   []fieldSummary `json:"fields,omitempty"`
}

func (s *Server) handleFields(_ context.Context, _ *mcp.CallToolRequest, input fieldsInput) (*mcp.CallToolResult, fieldsOutput, error) {
	bp, err := s.resolve(input.Blueprint)
	if err != nil {
		return errResult(err), fieldsOutput{}, nil
	}
	sep := input.Separator
	if sep == "" {
		sep = "/"
	}

	fields := bp.FieldList()
	start, end := s.paginate(len(fields), input.Offset, input.Limit)
	output := fieldsOutput{Total: len(fields)}
	for _, f := range fields[start:end] {
		output.Fields = append(output.Fields, fieldSummary{
			Path:  strings.Join(f.Path, sep),
			Type:  f.Type,
			Label: f.Label,
			Array: f.Array,
		})
	}
	output.Returned = len(output.Fields)
	return nil, output, nil
}

type lookupInput struct {
	Blueprint blueprintInput `json:"blueprint"           jsonschema:"The blueprint whose form to search"`
	Path      string         `json:"path"                jsonschema:"Data path, e.g. header/title or items/0/name"`
	Separator string         `json:"separator,omitempty" jsonschema:"Separator used in path (default /)"`
}

type lookupOutput struct {
	Found     bool     `json:"found"`
	Path      []string `json:"path,omitempty"`
	Remainder string   `json:"remainder,omitempty"`
	Field     string   `json:"field,omitempty"`
}

func (s *Server) handleLookup(_ context.Context, _ *mcp.CallToolRequest, input lookupInput) (*mcp.CallToolResult, lookupOutput, error) {
	if input.Path == "" {
		return errResult(fmt.Errorf("path is required")), lookupOutput{}, nil
	}
	bp, err := s.resolve(input.Blueprint)
	if err != nil {
		return errResult(err), lookupOutput{}, nil
	}
	sep := input.Separator
	if sep == "" {
		sep = "/"
	}

	res := bp.Resolve(tree.SplitPath(input.Path, sep), sep)
	if !res.Found() {
		return nil, lookupOutput{}, nil
	}
	data, err := tree.MarshalYAML(res.Node)
	if err != nil {
		return errResult(err), lookupOutput{}, nil
	}
	return nil, lookupOutput{
		Found:     true,
		Path:      res.Path,
		Remainder: res.Remainder,
		Field:     string(data),
	}, nil
}

type listInput struct {
	Scheme  string `json:"scheme,omitempty"  jsonschema:"Scheme to list (default: the scheme of the configured context)"`
	Pattern string `json:"pattern,omitempty" jsonschema:"Doublestar pattern, e.g. pages/**/*.yaml (default: all documents)"`
}

type listOutput struct {
	Count      int      `json:"count"`
	Blueprints []string `json:"blueprints,omitempty"`
}

// defaultListPattern matches every recognized blueprint document.
const defaultListPattern = "**/*.{yaml,yml,json,jsonc,toml}"

func (s *Server) handleList(_ context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	scheme := strings.TrimSuffix(input.Scheme, locator.SchemeSeparator)
	if scheme == "" {
		var ok bool
		if scheme, _, ok = locator.SplitScheme(s.cfg.Context); !ok {
			return errResult(fmt.Errorf("context %q has no scheme; pass scheme", s.cfg.Context)), listOutput{}, nil
		}
	}
	pattern := input.Pattern
	if pattern == "" {
		pattern = defaultListPattern
	}

	found, err := s.locator.List(scheme, pattern)
	if err != nil {
		return errResult(err), listOutput{}, nil
	}
	return nil, listOutput{Count: len(found), Blueprints: found}, nil
}

// sanitizePath hides absolute directories the same way errors do.
func sanitizePath(p string) string {
	return pathPattern.ReplaceAllString(p, "<path>")
}
