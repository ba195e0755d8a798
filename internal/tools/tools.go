// Package tools defines the capabilities exposed to the agent: document
// retrieval, web search and financial-data lookup. Each tool wraps one
// external service call behind a uniform signature: a single string in, a
// result string out.
package tools

import (
	"context"
	"fmt"

	"tradebot/internal/models"
)

// Tool describes one capability: its schema as declared to the model and
// the callable that performs the external action.
type Tool struct {
	Name             string
	Description      string
	ParamName        string
	ParamDescription string

	Fn func(ctx context.Context, input string) (string, error)
}

// Schema returns the declaration handed to the model.
func (t *Tool) Schema() models.ToolSchema {
	return models.ToolSchema{
		Name:             t.Name,
		Description:      t.Description,
		ParamName:        t.ParamName,
		ParamDescription: t.ParamDescription,
	}
}

// Registry holds the tools registered at startup. It is immutable for the
// lifetime of the process and safe to share across concurrent requests.
type Registry struct {
	order  []*Tool
	byName map[string]*Tool
}

// NewRegistry creates a Registry from the given tools.
func NewRegistry(tools ...*Tool) *Registry {
	r := &Registry{byName: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		r.order = append(r.order, t)
		r.byName[t.Name] = t
	}
	return r
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Schemas returns the declarations of all registered tools in registration
// order.
func (r *Registry) Schemas() []models.ToolSchema {
	schemas := make([]models.ToolSchema, 0, len(r.order))
	for _, t := range r.order {
		schemas = append(schemas, t.Schema())
	}
	return schemas
}

// Call invokes the named tool with the argument supplied by the model.
func (r *Registry) Call(ctx context.Context, call *models.FunctionCall) (string, error) {
	tool, ok := r.byName[call.Name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", call.Name)
	}

	input, ok := call.Args[tool.ParamName].(string)
	if !ok || input == "" {
		return "", fmt.Errorf("tool %s requires a %q string argument", tool.Name, tool.ParamName)
	}

	return tool.Fn(ctx, input)
}
