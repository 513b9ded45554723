// Package tools provides the registry of callable tools, the tool-call
// parser (explicit tag syntax plus keyword fallback detection) and the
// executor that runs parsed calls and formats results for display.
//
// The registry is populated once at startup and never mutated afterwards.
// Tool parameter schemas use the MCP input-schema shape so they can be
// converted to any engine's wire format (see convert.go).
package tools

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Tool is a single callable capability. Execute receives already-decoded
// arguments and returns a result payload; an error return is converted by
// the Executor into an error-shaped payload, never propagated upward.
type Tool struct {
	Name        string
	Description string
	Parameters  mcptypes.ToolInputSchema
	Execute     func(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Registry is an immutable name-keyed collection of tools.
type Registry struct {
	tools  []Tool
	byName map[string]int
}

// NewRegistry creates a registry pre-populated with the built-in tools.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]int)}
	for _, t := range builtinTools() {
		r.register(t)
	}
	return r
}

// register indexes by position rather than element address: appends may
// reallocate the backing array, which would leave stored pointers stale.
func (r *Registry) register(t Tool) {
	r.tools = append(r.tools, t)
	r.byName[t.Name] = len(r.tools) - 1
}

// Find returns the tool with the given name, or nil if unregistered.
func (r *Registry) Find(name string) *Tool {
	i, ok := r.byName[name]
	if !ok {
		return nil
	}
	return &r.tools[i]
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// Schema advertises one tool to an engine or the UI.
type Schema struct {
	Type     string         `json:"type"`
	Function FunctionSchema `json:"function"`
}

// FunctionSchema is the function half of a tool schema.
type FunctionSchema struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Parameters  mcptypes.ToolInputSchema `json:"parameters"`
}

// Schemas exports all registered tools in {type, function} form.
func (r *Registry) Schemas() []Schema {
	schemas := make([]Schema, len(r.tools))
	for i, t := range r.tools {
		schemas[i] = Schema{
			Type: "function",
			Function: FunctionSchema{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return schemas
}
