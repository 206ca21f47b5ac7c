package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func echoRegistry() Registry {
	reg := Registry{}
	reg.Register(Tool{
		Name:        "echo",
		Description: "returns its input",
		SchemaJSON: `{
			"type": "object",
			"properties": {"message": {"type": "string"}},
			"required": ["message"]
		}`,
		Fn: func(ctx context.Context, params map[string]any) (any, error) {
			return params["message"], nil
		},
	})
	return reg
}

func TestRegistryExecute(t *testing.T) {
	ctx := context.Background()
	reg := echoRegistry()

	tests := []struct {
		name        string
		call        ToolCall
		want        any
		wantErrPart string
	}{
		{
			name: "success",
			call: ToolCall{ToolName: "echo", Parameters: map[string]any{"message": "hi"}},
			want: "hi",
		},
		{
			name:        "tool not found",
			call:        ToolCall{ToolName: "missing", Parameters: map[string]any{}},
			wantErrPart: "tool not found: missing",
		},
		{
			name:        "schema violation",
			call:        ToolCall{ToolName: "echo", Parameters: map[string]any{"message": 42}},
			wantErrPart: "validation failed for tool echo",
		},
		{
			name:        "missing required parameter",
			call:        ToolCall{ToolName: "echo", Parameters: map[string]any{}},
			wantErrPart: "validation failed for tool echo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Execute(ctx, tt.call)
			if tt.wantErrPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrPart) {
					t.Fatalf("Execute() error = %v, want containing %q", err, tt.wantErrPart)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Execute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistrySchemaValidationErrorType(t *testing.T) {
	reg := echoRegistry()
	_, err := reg.Execute(context.Background(), ToolCall{ToolName: "echo", Parameters: map[string]any{"message": 42}})

	var verr *ToolValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Execute() error = %T, want wrapped *ToolValidationError", err)
	}
	if verr.ToolName != "echo" || len(verr.Errors) == 0 {
		t.Errorf("ToolValidationError = %+v, want tool name and detail", verr)
	}
}

func TestRegistryExecuteToolError(t *testing.T) {
	reg := Registry{}
	reg.Register(Tool{
		Name: "fail",
		Fn: func(ctx context.Context, params map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	})

	_, err := reg.Execute(context.Background(), ToolCall{ToolName: "fail", Parameters: map[string]any{}})
	if err == nil || !strings.Contains(err.Error(), "execution failed for tool fail") {
		t.Errorf("Execute() error = %v, want execution failure wrapping", err)
	}
}

func TestRegistryNoSchemaSkipsValidation(t *testing.T) {
	reg := Registry{}
	reg.Register(Tool{
		Name: "loose",
		Fn: func(ctx context.Context, params map[string]any) (any, error) {
			return len(params), nil
		},
	})

	got, err := reg.Execute(context.Background(), ToolCall{ToolName: "loose", Parameters: map[string]any{"a": 1, "b": 2}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != 2 {
		t.Errorf("Execute() = %v, want 2", got)
	}
}
