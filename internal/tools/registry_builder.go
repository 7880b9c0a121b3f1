package tools

import (
	"github.com/pitwall/pitwall/internal/schema"
	"github.com/pitwall/pitwall/internal/store"
)

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	tools map[string]schema.Tool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	b.tools[tool.Name()] = tool

	return b
}

// Build produces an immutable Registry from the accumulated tools.
func (b *RegistryBuilder) Build() *Registry {
	tools := make(map[string]schema.Tool, len(b.tools))
	for k, v := range b.tools {
		tools[k] = v
	}
	return &Registry{tools: tools}
}

// NewRegistry wires the full built-in tool set against a store.
func NewRegistry(st *store.Store, p Presenter, requireReloadConfirm bool) *Registry {
	return NewRegistryBuilder().
		WithTool(NewGetDriverTool(st, p)).
		WithTool(NewGetTeamTool(st, p)).
		WithTool(NewGetCircuitTool(st, p)).
		WithTool(NewCompareDriversTool(st, p)).
		WithTool(NewListAllTool(st, p)).
		WithTool(NewReloadDataTool(st, p, requireReloadConfirm)).
		Build()
}
