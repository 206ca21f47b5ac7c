package engine

import "testing"

func TestStateBranchBucketing(t *testing.T) {
	st := NewState()
	st.AddStep(&Step{StepNumber: 1, TotalSteps: 3, Phase: PhaseThinking})

	branched := &Step{StepNumber: 2, TotalSteps: 3, Phase: PhaseThinking, BranchFromStep: 1, BranchID: "b1"}
	st.AddStep(branched)

	if st.StepCount() != 2 {
		t.Errorf("StepCount() = %d, want 2 (branched step stays in the main sequence)", st.StepCount())
	}

	h := st.History()
	bucket, ok := h.Branches["b1"]
	if !ok || len(bucket) != 1 {
		t.Fatalf("Branches[b1] = %v, want one step", bucket)
	}
	if bucket[0].StepNumber != 2 {
		t.Errorf("Branches[b1][0].StepNumber = %d, want 2", bucket[0].StepNumber)
	}

	// Second step into the same branch must not duplicate the ID.
	st.AddStep(&Step{StepNumber: 3, TotalSteps: 3, Phase: PhaseThinking, BranchFromStep: 1, BranchID: "b1"})
	ids := st.BranchIDs()
	if len(ids) != 1 || ids[0] != "b1" {
		t.Errorf("BranchIDs() = %v, want [b1]", ids)
	}
}

func TestStateBranchRequiresBothFields(t *testing.T) {
	st := NewState()
	st.AddStep(&Step{StepNumber: 1, TotalSteps: 1, Phase: PhaseThinking, BranchID: "orphan"})
	st.AddStep(&Step{StepNumber: 2, TotalSteps: 2, Phase: PhaseThinking, BranchFromStep: 1})

	if ids := st.BranchIDs(); len(ids) != 0 {
		t.Errorf("BranchIDs() = %v, want none without both branchFromStep and branchId", ids)
	}
}

func TestStepByNumberFirstMatch(t *testing.T) {
	st := NewState()
	first := &Step{StepNumber: 2, TotalSteps: 3, Phase: PhaseToolCall}
	st.AddStep(first)
	st.AddStep(&Step{StepNumber: 2, TotalSteps: 3, Phase: PhaseThinking, IsRevision: true, RevisesStep: 2})

	got := st.StepByNumber(2)
	if got != first {
		t.Errorf("StepByNumber(2) returned the later step, want the earliest match")
	}
	if st.StepByNumber(9) != nil {
		t.Error("StepByNumber(9) != nil for absent step")
	}
}

func TestStateStatisticsFromFullLog(t *testing.T) {
	st := NewState()
	st.AddStep(&Step{StepNumber: 1, TotalSteps: 2, Phase: PhaseToolCall})
	st.AddToolCall(ToolCallRecord{ID: "a", StepNumber: 1,
		Call:   ToolCall{ToolName: "fetch"},
		Result: &ToolResult{ToolName: "fetch", Success: true, ExecutionTime: 10}})
	st.AddToolCall(ToolCallRecord{ID: "b", StepNumber: 1,
		Call:   ToolCall{ToolName: "fetch"},
		Result: &ToolResult{ToolName: "fetch", Success: false, ExecutionTime: 5}})

	stats := st.History().Statistics
	if stats.TotalSteps != 1 {
		t.Errorf("TotalSteps = %d, want 1", stats.TotalSteps)
	}
	if stats.TotalToolCalls != 2 {
		t.Errorf("TotalToolCalls = %d, want 2", stats.TotalToolCalls)
	}
	if stats.SuccessfulCalls != 1 || stats.FailedCalls != 1 {
		t.Errorf("success/failure split = %d/%d, want 1/1", stats.SuccessfulCalls, stats.FailedCalls)
	}
	if stats.TotalExecutionTime != 15 {
		t.Errorf("TotalExecutionTime = %d, want 15", stats.TotalExecutionTime)
	}
}

func TestLastToolResult(t *testing.T) {
	st := NewState()
	if st.LastToolResult() != nil {
		t.Error("LastToolResult() != nil on empty log")
	}

	st.AddToolCall(ToolCallRecord{ID: "a", Result: &ToolResult{ToolName: "one"}})
	st.AddToolCall(ToolCallRecord{ID: "b", Result: &ToolResult{ToolName: "two"}})

	if got := st.LastToolResult(); got == nil || got.ToolName != "two" {
		t.Errorf("LastToolResult() = %v, want the most recent record", got)
	}
}

func TestTotalStepsWatermark(t *testing.T) {
	st := NewState()
	st.AddStep(&Step{StepNumber: 1, TotalSteps: 10, Phase: PhaseThinking})
	st.AddStep(&Step{StepNumber: 2, TotalSteps: 3, Phase: PhaseThinking})

	if st.TotalSteps() != 10 {
		t.Errorf("TotalSteps() = %d, want 10 (watermark never lowered)", st.TotalSteps())
	}
}

func TestStateReset(t *testing.T) {
	st := NewState()
	st.AddStep(&Step{StepNumber: 1, TotalSteps: 5, Phase: PhaseThinking, BranchFromStep: 1, BranchID: "b1"})
	st.AddToolCall(ToolCallRecord{ID: "a", Result: &ToolResult{Success: true}})

	st.Reset()

	if st.StepCount() != 0 || len(st.BranchIDs()) != 0 || st.LastToolResult() != nil || st.TotalSteps() != 0 {
		t.Errorf("Reset() left state behind: steps=%d branches=%v totalSteps=%d",
			st.StepCount(), st.BranchIDs(), st.TotalSteps())
	}
}
