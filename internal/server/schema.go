package server

import "github.com/mark3labs/mcp-go/mcp"

// Tool declarations. Required-field and range enforcement lives in the
// engine's validation so the error taxonomy stays uniform; the schema here
// is documentation for the calling model.

func processStepTool() mcp.Tool {
	return mcp.NewTool("process_step",
		mcp.WithDescription("Process one step of a step-by-step reasoning loop. "+
			"Returns the resolved phase, running history length, branch list, and, "+
			"for tool_call steps, a reduced view of the tool outcome."),
		mcp.WithString("thought",
			mcp.Required(),
			mcp.Description("The reasoning text for this step"),
		),
		mcp.WithNumber("stepNumber",
			mcp.Required(),
			mcp.Description("Current step number, starting at 1"),
		),
		mcp.WithNumber("totalSteps",
			mcp.Required(),
			mcp.Description("Current estimate of total steps needed; raised automatically when exceeded"),
		),
		mcp.WithBoolean("nextStepNeeded",
			mcp.Required(),
			mcp.Description("Whether another step is needed after this one"),
		),
		mcp.WithString("phase",
			mcp.Description("Explicit phase for this step; inferred when omitted"),
			mcp.Enum("thinking", "tool_call", "analysis"),
		),
		mcp.WithBoolean("isRevision",
			mcp.Description("Whether this step revises earlier reasoning"),
		),
		mcp.WithNumber("revisesStep",
			mcp.Description("Step number being revised"),
		),
		mcp.WithNumber("branchFromStep",
			mcp.Description("Step number this branch diverges from"),
		),
		mcp.WithString("branchId",
			mcp.Description("Branch identifier; with branchFromStep, registers the step into that branch"),
		),
		mcp.WithBoolean("needsMoreSteps",
			mcp.Description("Advisory flag that more steps may be needed beyond totalSteps"),
		),
		mcp.WithObject("toolCall",
			mcp.Description("Tool invocation for the tool_call phase: toolName (string), "+
				"parameters (object), optional metadata (timeout ms, retryCount, priority)"),
		),
	)
}

func resetSessionTool() mcp.Tool {
	return mcp.NewTool("reset_session",
		mcp.WithDescription("Discard all steps, branches, tool-call records, the tool budget, "+
			"and the result cache, returning the session to its initial empty state. "+
			"Configuration (limits, timeout, caching) persists."),
	)
}

func stepHistoryTool() mcp.Tool {
	return mcp.NewTool("step_history",
		mcp.WithDescription("Return the full session history: every step, branch buckets, "+
			"the tool-call audit log with complete results, and statistics derived from it."),
	)
}
