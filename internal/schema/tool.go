// Package schema contains the core contracts shared across pitwall packages.
// Concrete implementations live in their respective packages; this package is
// the single canonical source of truth for every shared type.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all LLM-callable operations must satisfy.
// Built-in data tools and MCP-discovered tools both implement it.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// ToolDefinition converts a Tool into the OpenAI function-calling wire format.
func ToolDefinition(t Tool) map[string]any {
	var params any
	if err := json.Unmarshal(t.Parameters(), &params); err != nil {
		params = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
			"parameters":  params,
		},
	}
}
