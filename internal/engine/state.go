package engine

// ToolCallRecord is one entry in the tool-call audit log: the step that
// issued the call, the call itself, and its outcome. Every invocation is
// recorded here, including ones served from cache.
type ToolCallRecord struct {
	ID         string      `json:"id"`
	StepNumber int         `json:"stepNumber"`
	Call       ToolCall    `json:"toolCall"`
	Result     *ToolResult `json:"toolResult"`
}

// Statistics are derived from the full tool-call log on each History read,
// never persisted separately, so they cannot drift from the log.
type Statistics struct {
	TotalSteps         int   `json:"totalSteps"`
	TotalToolCalls     int   `json:"totalToolCalls"`
	SuccessfulCalls    int   `json:"successfulCalls"`
	FailedCalls        int   `json:"failedCalls"`
	TotalExecutionTime int64 `json:"totalExecutionTime"` // milliseconds
}

// History is a read-only snapshot of a session's state.
type History struct {
	Steps      []Step            `json:"steps"`
	Branches   map[string][]Step `json:"branches"`
	ToolCalls  []ToolCallRecord  `json:"toolCalls"`
	Statistics Statistics        `json:"statistics"`
}

// State is the session ledger: an append-only step log, branch buckets, and
// the tool-call audit log. It is pure in-memory bookkeeping with no I/O and
// no failure modes; callers are responsible for synchronization.
type State struct {
	steps      []*Step
	branches   map[string][]*Step
	branchIDs  []string // branch registration order
	toolCalls  []ToolCallRecord
	totalSteps int // session high watermark, only ever raised
}

// NewState returns an empty session ledger.
func NewState() *State {
	return &State{branches: make(map[string][]*Step)}
}

// AddStep appends a step to the main sequence. A step carrying both
// branchFromStep and branchId is additionally registered into that branch's
// bucket; the same step appears in both sequences.
func (st *State) AddStep(step *Step) {
	st.steps = append(st.steps, step)
	if step.TotalSteps > st.totalSteps {
		st.totalSteps = step.TotalSteps
	}
	if step.BranchFromStep > 0 && step.BranchID != "" {
		if _, ok := st.branches[step.BranchID]; !ok {
			st.branchIDs = append(st.branchIDs, step.BranchID)
		}
		st.branches[step.BranchID] = append(st.branches[step.BranchID], step)
	}
}

// AddToolCall appends a record to the tool-call audit log. Independent of
// AddStep: the orchestrator calls both when a tool_call step executes.
func (st *State) AddToolCall(rec ToolCallRecord) {
	st.toolCalls = append(st.toolCalls, rec)
}

// StepByNumber returns the first step in the main sequence with the given
// step number, or nil. First match is deliberate: when a step number is
// resubmitted as a revision, lookups keep seeing the original.
func (st *State) StepByNumber(n int) *Step {
	for _, s := range st.steps {
		if s.StepNumber == n {
			return s
		}
	}
	return nil
}

// LastToolResult returns the outcome of the most recent tool call, or nil
// if none have been made.
func (st *State) LastToolResult() *ToolResult {
	if len(st.toolCalls) == 0 {
		return nil
	}
	return st.toolCalls[len(st.toolCalls)-1].Result
}

// StepCount returns the main-sequence length.
func (st *State) StepCount() int { return len(st.steps) }

// TotalSteps returns the session's totalSteps high watermark.
func (st *State) TotalSteps() int { return st.totalSteps }

// BranchIDs returns branch identifiers in registration order.
func (st *State) BranchIDs() []string {
	ids := make([]string, len(st.branchIDs))
	copy(ids, st.branchIDs)
	return ids
}

// History returns a snapshot of the ledger with statistics recomputed from
// the full tool-call log.
func (st *State) History() History {
	h := History{
		Steps:     make([]Step, len(st.steps)),
		Branches:  make(map[string][]Step, len(st.branches)),
		ToolCalls: make([]ToolCallRecord, len(st.toolCalls)),
	}
	for i, s := range st.steps {
		h.Steps[i] = *s
	}
	for id, bucket := range st.branches {
		steps := make([]Step, len(bucket))
		for i, s := range bucket {
			steps[i] = *s
		}
		h.Branches[id] = steps
	}
	copy(h.ToolCalls, st.toolCalls)

	h.Statistics.TotalSteps = len(st.steps)
	h.Statistics.TotalToolCalls = len(st.toolCalls)
	for _, rec := range st.toolCalls {
		if rec.Result == nil {
			continue
		}
		if rec.Result.Success {
			h.Statistics.SuccessfulCalls++
		} else {
			h.Statistics.FailedCalls++
		}
		h.Statistics.TotalExecutionTime += rec.Result.ExecutionTime
	}
	return h
}

// Reset discards all steps, branches, and tool-call records, returning the
// ledger to its initial empty state.
func (st *State) Reset() {
	st.steps = nil
	st.branches = make(map[string][]*Step)
	st.branchIDs = nil
	st.toolCalls = nil
	st.totalSteps = 0
}
