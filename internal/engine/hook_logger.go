// engine/hook_logger.go
package engine

import (
	"context"
	"fmt"
	"log"
)

// LoggerHook writes one formatted line per pipeline event, tagged by phase.
// It logs to a side channel (normally stderr) distinct from the response
// payload, so it never interferes with the transport.
type LoggerHook struct{ L *log.Logger }

func (h LoggerHook) OnStep(_ context.Context, st *State, step *Step) {
	tag := ""
	if step.IsRevision {
		tag = fmt.Sprintf(" revises=%d", step.RevisesStep)
	}
	if step.BranchID != "" {
		tag += fmt.Sprintf(" branch=%s from=%d", step.BranchID, step.BranchFromStep)
	}

	thought := step.Thought
	if len(thought) > 120 {
		thought = thought[:120] + "..."
	}
	h.L.Printf("step=%d/%d phase=%s%s history=%d thought=%q",
		step.StepNumber, step.TotalSteps, step.Phase, tag, st.StepCount(), thought)
}

func (h LoggerHook) OnToolCall(_ context.Context, _ *State, stepNumber int, c ToolCall) {
	h.L.Printf("step=%d tool → %s params=%v", stepNumber, c.ToolName, c.Parameters)
}

func (h LoggerHook) OnToolResult(_ context.Context, _ *State, c ToolCall, res *ToolResult) {
	if res == nil {
		return
	}
	if !res.Success && res.Error != nil {
		h.L.Printf("tool %s failed (%s in %dms): %s", c.ToolName, res.Error.Type, res.ExecutionTime, res.Error.Message)
		return
	}
	h.L.Printf("tool %s ok in %dms", c.ToolName, res.ExecutionTime)
}

func (h LoggerHook) OnError(_ context.Context, _ *State, err error) {
	h.L.Printf("step rejected: %v", err)
}

func (h LoggerHook) OnReset(_ context.Context, _ *State) {
	h.L.Printf("session reset")
}
