package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pitwall/pitwall/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolGetDriver      ToolName = "get_driver"
	ToolGetTeam        ToolName = "get_team"
	ToolGetCircuit     ToolName = "get_circuit"
	ToolCompareDrivers ToolName = "compare_drivers"
	ToolListAll        ToolName = "list_all"
	ToolReloadData     ToolName = "reload_data"
)

// ErrToolNotFound is returned by Dispatch for an unknown tool name.
var ErrToolNotFound = errors.New("tool not found")

// Registry holds the fixed set of named tools and exposes them for execution.
type Registry struct {
	tools map[string]schema.Tool
}

// Get returns the tool with the given name, or nil.
func (r *Registry) Get(name ToolName) schema.Tool {
	return r.tools[string(name)]
}

// All returns every registered tool, sorted by name.
func (r *Registry) All() []schema.Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]schema.Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}

// Definitions returns the function-call definitions for every registered
// tool, in name order.
func (r *Registry) Definitions() []map[string]any {
	all := r.All()
	defs := make([]map[string]any, 0, len(all))
	for _, t := range all {
		defs = append(defs, schema.ToolDefinition(t))
	}
	return defs
}

// Dispatch executes the named tool. A panicking tool is converted into an
// error so one bad call cannot take down the process.
func (r *Registry) Dispatch(ctx context.Context, name string, params map[string]any) (result string, err error) {
	tool := r.tools[name]
	if tool == nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("tool %s panicked: %v", name, rec)
		}
	}()
	return tool.Execute(ctx, params)
}
