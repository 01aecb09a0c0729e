// Package tools defines the registry of file and shell tools reserved for
// the executor agent.
//
// Each tool is standalone and stateless apart from the shared Workdir. Tools
// are registered at startup and looked up by name:
//
//	Registry.Get(name) → Tool.Execute(ctx, args) → result string
//
// Tool bodies report precondition failures (missing file, text not found,
// permission denied) inside the returned string so callers never need error
// handling around a tool invocation. The error return is reserved for
// registry-level faults such as a missing required argument.
package tools

import (
	"context"
)

// ToolCategory classifies tools for selection by a future executor agent.
type ToolCategory string

const (
	// CategoryFile covers filesystem operations.
	CategoryFile ToolCategory = "/file"

	// CategoryShell covers command execution and process environment.
	CategoryShell ToolCategory = "/shell"

	// CategoryGeneral is for tools usable in any context.
	CategoryGeneral ToolCategory = "/general"
)

// Property describes a single parameter property for JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
}

// ToolSchema defines the JSON schema for tool arguments.
type ToolSchema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc is the signature for tool execution.
// Returns the result string and any error.
type ExecuteFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool defines one callable operation.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string

	// Description explains what the tool does.
	Description string

	// Category classifies the tool for filtering.
	Category ToolCategory

	// Execute runs the tool with the given arguments.
	Execute ExecuteFunc

	// Schema defines the expected arguments.
	Schema ToolSchema

	// Priority is used when multiple tools match.
	// Higher priority tools are preferred (default 50).
	Priority int
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// ToolResult wraps the result of tool execution with metadata.
type ToolResult struct {
	// ToolName identifies which tool was executed.
	ToolName string

	// Result is the string output from the tool.
	Result string

	// Error is set if the invocation itself failed.
	Error error

	// DurationMs is how long execution took.
	DurationMs int64
}

// IsSuccess returns true if the tool executed without error.
func (r *ToolResult) IsSuccess() bool {
	return r.Error == nil
}
