// Package engine provides step orchestration for an agent's
// think / act / reflect loop: phase inference, bounded tool invocation,
// and branchable step history, scoped to one session.
package engine

// Phase is the semantic role of a step in the reason/act/reflect cycle.
type Phase string

const (
	PhaseThinking Phase = "thinking"
	PhaseToolCall Phase = "tool_call"
	PhaseAnalysis Phase = "analysis"
)

// Valid reports whether p is one of the three known phase literals.
func (p Phase) Valid() bool {
	switch p {
	case PhaseThinking, PhaseToolCall, PhaseAnalysis:
		return true
	}
	return false
}

// InferPhase resolves the effective phase of a step that arrived without
// one. Priority: a step carrying a tool call is tool_call; a step directly
// following a stored tool_call step (by stepNumber-1) is analysis;
// everything else is thinking. This gives a zero-configuration
// think -> call -> analyze happy path while still allowing an explicit
// phase override at any step.
//
// Inference only runs on incoming steps. Stored steps keep whatever phase
// was recorded for them; it is never re-derived from history.
func InferPhase(step *Step, st *State) Phase {
	if step.ToolCall != nil {
		return PhaseToolCall
	}
	if prev := st.StepByNumber(step.StepNumber - 1); prev != nil && prev.Phase == PhaseToolCall {
		return PhaseAnalysis
	}
	return PhaseThinking
}
