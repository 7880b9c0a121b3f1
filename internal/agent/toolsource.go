package agent

import (
	"context"

	"github.com/pitwall/pitwall/internal/mcp"
	"github.com/pitwall/pitwall/internal/tools"
)

// ToolSource abstracts where the loop's tools live: in-process registry or
// a remote MCP server. Definitions are OpenAI function-call format either way.
type ToolSource interface {
	Definitions() []map[string]any
	Call(ctx context.Context, name string, args map[string]any) (string, error)
}

// registrySource serves tools from the in-process registry.
type registrySource struct {
	registry *tools.Registry
}

// NewRegistrySource wraps an in-process tool registry as a ToolSource.
func NewRegistrySource(reg *tools.Registry) ToolSource {
	return &registrySource{registry: reg}
}

func (s *registrySource) Definitions() []map[string]any {
	return s.registry.Definitions()
}

func (s *registrySource) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	return s.registry.Dispatch(ctx, name, args)
}

// mcpSource serves tools discovered from a connected MCP server.
// Discovery happens once at construction; MCP inputSchema maps directly
// onto the function-call "parameters" field.
type mcpSource struct {
	client *mcp.Client
	defs   []map[string]any
}

// NewMCPSource lists the server's tools and wraps the client as a ToolSource.
func NewMCPSource(ctx context.Context, client *mcp.Client) (ToolSource, error) {
	descs, err := client.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	defs := make([]map[string]any, 0, len(descs))
	for _, d := range descs {
		name, _ := d["name"].(string)
		if name == "" {
			continue
		}
		desc, _ := d["description"].(string)
		inputSchema, _ := d["inputSchema"].(map[string]any)
		if inputSchema == nil {
			inputSchema = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		defs = append(defs, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        name,
				"description": desc,
				"parameters":  inputSchema,
			},
		})
	}
	return &mcpSource{client: client, defs: defs}, nil
}

func (s *mcpSource) Definitions() []map[string]any {
	// Callers may mutate; hand out a shallow copy.
	out := make([]map[string]any, len(s.defs))
	copy(out, s.defs)
	return out
}

func (s *mcpSource) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	return s.client.CallTool(ctx, name, args)
}

// sourceToolNames extracts the tool names from a source's definitions,
// used for logging at startup.
func sourceToolNames(src ToolSource) []string {
	var names []string
	for _, def := range src.Definitions() {
		if fn, ok := def["function"].(map[string]any); ok {
			if name, ok := fn["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
