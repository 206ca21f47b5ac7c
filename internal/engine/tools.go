package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ToolFunc is the function a registered tool runs with validated parameters.
type ToolFunc func(ctx context.Context, params map[string]any) (any, error)

// Tool couples a name and parameter schema with its implementation.
type Tool struct {
	Name        string
	Description string
	SchemaJSON  string // JSON schema for parameters; empty skips validation
	Fn          ToolFunc
}

// ToolValidationError indicates that tool parameters failed JSON schema
// validation.
type ToolValidationError struct {
	ToolName string
	Errors   []string
}

func (e *ToolValidationError) Error() string {
	return fmt.Sprintf("tool %s validation failed: %s", e.ToolName, strings.Join(e.Errors, "; "))
}

// ValidateParams validates parameters against the tool's JSON schema.
func (t Tool) ValidateParams(params map[string]any) error {
	if t.SchemaJSON == "" {
		return nil
	}
	schemaLoader := gojsonschema.NewStringLoader(t.SchemaJSON)
	documentLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var errorMsgs []string
		for _, verr := range result.Errors() {
			errorMsgs = append(errorMsgs, verr.String())
		}
		return &ToolValidationError{ToolName: t.Name, Errors: errorMsgs}
	}
	return nil
}

// Registry is the shipped ToolExecutor: it dispatches calls to registered
// tools after validating parameters. Errors it returns surface as
// non-throwing failure results on the step, never as raised errors.
type Registry map[string]Tool

// Register adds a tool under its name, replacing any previous registration.
func (r Registry) Register(t Tool) { r[t.Name] = t }

// Names returns registered tool names, sorted for stable error messages.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute implements ToolExecutor.
func (r Registry) Execute(ctx context.Context, call ToolCall) (any, error) {
	t, ok := r[call.ToolName]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s (available tools: %v)", call.ToolName, r.Names())
	}
	if err := t.ValidateParams(call.Parameters); err != nil {
		return nil, fmt.Errorf("validation failed for tool %s: %w", call.ToolName, err)
	}
	result, err := t.Fn(ctx, call.Parameters)
	if err != nil {
		return nil, fmt.Errorf("execution failed for tool %s: %w", call.ToolName, err)
	}
	return result, nil
}
