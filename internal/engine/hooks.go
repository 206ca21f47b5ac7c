// engine/hooks.go
package engine

import "context"

// Hook observes the step pipeline. Hooks are write-only collaborators: they
// never affect returned data or session state.
type Hook interface {
	OnStep(ctx context.Context, st *State, step *Step)
	OnToolCall(ctx context.Context, st *State, stepNumber int, call ToolCall)
	OnToolResult(ctx context.Context, st *State, call ToolCall, res *ToolResult)
	OnError(ctx context.Context, st *State, err error)
	OnReset(ctx context.Context, st *State)
}

// NopHook lets you implement only the hooks you need.
type NopHook struct{}

func (NopHook) OnStep(context.Context, *State, *Step)                  {}
func (NopHook) OnToolCall(context.Context, *State, int, ToolCall)      {}
func (NopHook) OnToolResult(context.Context, *State, ToolCall, *ToolResult) {}
func (NopHook) OnError(context.Context, *State, error)                 {}
func (NopHook) OnReset(context.Context, *State)                        {}
