package engine

// Step is one unit of reasoning submitted by the caller.
//
// StepNumber is caller-assigned and not required to be contiguous with
// history. Phase may arrive unset; the orchestrator resolves it before the
// step is stored, so every stored step has a concrete phase.
type Step struct {
	Thought        string      `json:"thought"`
	StepNumber     int         `json:"stepNumber"`
	TotalSteps     int         `json:"totalSteps"`
	NextStepNeeded bool        `json:"nextStepNeeded"`
	Phase          Phase       `json:"phase,omitempty"`
	IsRevision     bool        `json:"isRevision,omitempty"`
	RevisesStep    int         `json:"revisesStep,omitempty"`
	BranchFromStep int         `json:"branchFromStep,omitempty"`
	BranchID       string      `json:"branchId,omitempty"`
	NeedsMoreSteps bool        `json:"needsMoreSteps,omitempty"`
	ToolCall       *ToolCall   `json:"toolCall,omitempty"`
	ToolResult     *ToolResult `json:"toolResult,omitempty"`
}

// ParseStep validates raw tool-call arguments and builds a Step. Checks run
// in a fixed order and fail fast on the first violation: stepNumber,
// totalSteps, nextStepNeeded, then phase. Optional fields are parsed
// leniently; a wrongly-typed optional field is ignored rather than rejected.
func ParseStep(args map[string]any) (*Step, error) {
	n, ok := intValue(args["stepNumber"])
	if !ok || n < 1 {
		return nil, &ValidationError{Message: "stepNumber must be a positive integer"}
	}
	total, ok := intValue(args["totalSteps"])
	if !ok || total < 1 {
		return nil, &ValidationError{Message: "totalSteps must be a positive integer"}
	}
	next, ok := args["nextStepNeeded"].(bool)
	if !ok {
		return nil, &ValidationError{Message: "nextStepNeeded is required"}
	}

	step := &Step{StepNumber: n, TotalSteps: total, NextStepNeeded: next}

	if v, present := args["phase"]; present {
		s, ok := v.(string)
		if !ok || !Phase(s).Valid() {
			return nil, &ValidationError{Message: "phase must be one of: thinking, tool_call, analysis"}
		}
		step.Phase = Phase(s)
	}

	step.Thought, _ = args["thought"].(string)
	step.IsRevision, _ = args["isRevision"].(bool)
	if v, ok := intValue(args["revisesStep"]); ok {
		step.RevisesStep = v
	}
	if v, ok := intValue(args["branchFromStep"]); ok {
		step.BranchFromStep = v
	}
	step.BranchID, _ = args["branchId"].(string)
	step.NeedsMoreSteps, _ = args["needsMoreSteps"].(bool)
	if v, present := args["toolCall"]; present {
		step.ToolCall = parseToolCall(v)
	}

	return step, nil
}

func parseToolCall(v any) *ToolCall {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	call := &ToolCall{Parameters: map[string]any{}}
	if name, ok := m["toolName"].(string); ok {
		call.ToolName = name
	}
	if params, ok := m["parameters"].(map[string]any); ok {
		call.Parameters = params
	}
	if meta, ok := m["metadata"].(map[string]any); ok {
		md := &ToolCallMetadata{}
		if t, ok := intValue(meta["timeout"]); ok {
			md.Timeout = t
		}
		if rc, ok := intValue(meta["retryCount"]); ok {
			md.RetryCount = rc
		}
		if pr, ok := meta["priority"].(string); ok {
			md.Priority = pr
		}
		call.Metadata = md
	}
	return call
}

// intValue extracts an integral number from a decoded JSON value. JSON
// transports hand numbers over as float64; non-integral values are rejected.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
