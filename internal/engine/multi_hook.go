package engine

import "context"

type Hooks []Hook

func (hs Hooks) OnStep(ctx context.Context, st *State, step *Step) {
	for _, h := range hs {
		h.OnStep(ctx, st, step)
	}
}
func (hs Hooks) OnToolCall(ctx context.Context, st *State, stepNumber int, call ToolCall) {
	for _, h := range hs {
		h.OnToolCall(ctx, st, stepNumber, call)
	}
}
func (hs Hooks) OnToolResult(ctx context.Context, st *State, call ToolCall, res *ToolResult) {
	for _, h := range hs {
		h.OnToolResult(ctx, st, call, res)
	}
}
func (hs Hooks) OnError(ctx context.Context, st *State, err error) {
	for _, h := range hs {
		h.OnError(ctx, st, err)
	}
}
func (hs Hooks) OnReset(ctx context.Context, st *State) {
	for _, h := range hs {
		h.OnReset(ctx, st)
	}
}
