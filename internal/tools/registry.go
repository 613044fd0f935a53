package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Tool represents a function the assistant can call
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{} // JSON schema for parameters
	RequiredParameters() []string       // List of required parameter names
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// ToolCall represents a tool call request
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"arguments"`
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	CallID string      `json:"call_id"`
	Name   string      `json:"name"`
	Result interface{} `json:"result"`
	Error  string      `json:"error,omitempty"`
}

// Registry manages available tools
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns all registered tools sorted by name
func (r *Registry) ListTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// Schema returns the JSON schema object describing a tool's arguments
func Schema(tool Tool) map[string]interface{} {
	required := tool.RequiredParameters()
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": tool.Parameters(),
		"required":   required,
	}
}

// Execute runs a tool call synchronously. Failures are reported in the result.
func (r *Registry) Execute(ctx context.Context, call ToolCall) ToolResult {
	tool, exists := r.GetTool(call.Name)
	if !exists {
		return ToolResult{
			CallID: call.ID,
			Name:   call.Name,
			Error:  fmt.Sprintf("tool '%s' not found", call.Name),
		}
	}

	result, err := tool.Execute(ctx, call.Args)
	toolResult := ToolResult{
		CallID: call.ID,
		Name:   call.Name,
		Result: result,
	}
	if err != nil {
		toolResult.Error = err.Error()
	}
	return toolResult
}

// ParseArguments decodes the JSON argument string of a function call
func ParseArguments(raw string) (map[string]interface{}, error) {
	args := map[string]interface{}{}
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("error parsing arguments: %w", err)
	}
	return args, nil
}
