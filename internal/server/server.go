// Package server wires the step engine to an MCP server instance.
//
// This is the composition root: it creates the session and injects it into
// the tool handlers. No engine logic lives here, only wiring and the
// translation between MCP tool calls and the engine's single operation.
package server

import (
	"context"
	"encoding/json"

	"github.com/ChamsBouzaiene/stepchain/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with the step-processing tools registered and
// returns it together with the session it drives. One server instance owns
// exactly one session; reset_session is the only way to start over without
// restarting the process.
func New(cfg engine.Config, exec engine.ToolExecutor, hooks ...engine.Hook) (*server.MCPServer, *engine.Processor) {
	session := engine.New(cfg, exec, hooks...)

	s := server.NewMCPServer(
		"stepchain",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	s.AddTool(processStepTool(), handleProcessStep(session))
	s.AddTool(resetSessionTool(), handleResetSession(session))
	s.AddTool(stepHistoryTool(), handleStepHistory(session))

	return s, session
}

func handleProcessStep(session *engine.Processor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, isError := session.ProcessStep(ctx, req.GetArguments())
		res := mcp.NewToolResultText(text)
		res.IsError = isError
		return res, nil
	}
}

func handleResetSession(session *engine.Processor) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session.Reset(ctx)
		return mcp.NewToolResultText(`{"status": "reset"}`), nil
	}
}

func handleStepHistory(session *engine.Processor) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.MarshalIndent(session.History(), "", "  ")
		if err != nil {
			return mcp.NewToolResultError("history encoding failed: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

// serverInstructions tells the calling model how to drive the step loop.
func serverInstructions() string {
	return `You have access to stepchain, a step-by-step reasoning orchestrator.

## How it works
Submit one reasoning step at a time with process_step. Each step has a phase:
- thinking: plain reasoning, no side effects
- tool_call: invoke a named tool (requires the toolCall field)
- analysis: reflect on the most recent tool result

You may omit the phase: a step carrying a toolCall is treated as tool_call,
a step right after a tool_call step is treated as analysis, anything else is
thinking. Set the phase explicitly to override.

## Rules
- stepNumber starts at 1 and is yours to assign; totalSteps is your current
  estimate and is raised automatically if stepNumber exceeds it.
- Set nextStepNeeded=false on your final step.
- Revise earlier reasoning with isRevision/revisesStep; explore alternatives
  with branchFromStep/branchId.
- Tool failures come back as normal results with success=false; analyze
  them in the next step rather than retrying blindly.
- Tool calls are budgeted per session. When the budget is exhausted you get
  a ToolCallLimitError: summarize your progress and finish, or call
  reset_session to start over.
- step_history returns the full audit trail, including complete tool
  results and derived statistics.`
}
