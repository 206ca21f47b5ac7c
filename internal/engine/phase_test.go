package engine

import "testing"

func TestInferPhase(t *testing.T) {
	withToolCallStored := func() *State {
		st := NewState()
		st.AddStep(&Step{StepNumber: 1, TotalSteps: 3, Phase: PhaseToolCall})
		return st
	}

	tests := []struct {
		name  string
		step  *Step
		state *State
		want  Phase
	}{
		{
			name:  "tool call present wins",
			step:  &Step{StepNumber: 2, ToolCall: &ToolCall{ToolName: "fetch"}},
			state: NewState(),
			want:  PhaseToolCall,
		},
		{
			name:  "after stored tool_call step",
			step:  &Step{StepNumber: 2},
			state: withToolCallStored(),
			want:  PhaseAnalysis,
		},
		{
			name:  "tool call outranks preceding tool_call step",
			step:  &Step{StepNumber: 2, ToolCall: &ToolCall{ToolName: "fetch"}},
			state: withToolCallStored(),
			want:  PhaseToolCall,
		},
		{
			name:  "empty history defaults to thinking",
			step:  &Step{StepNumber: 1},
			state: NewState(),
			want:  PhaseThinking,
		},
		{
			name: "previous step not tool_call defaults to thinking",
			step: &Step{StepNumber: 2},
			state: func() *State {
				st := NewState()
				st.AddStep(&Step{StepNumber: 1, Phase: PhaseThinking})
				return st
			}(),
			want: PhaseThinking,
		},
		{
			name:  "gap in step numbers defaults to thinking",
			step:  &Step{StepNumber: 5},
			state: withToolCallStored(),
			want:  PhaseThinking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferPhase(tt.step, tt.state)
			if got != tt.want {
				t.Errorf("InferPhase() = %q, want %q", got, tt.want)
			}
			// Inference is a pure function of the step and stored history.
			if again := InferPhase(tt.step, tt.state); again != got {
				t.Errorf("InferPhase() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestInferPhaseUsesStepNumberNotArrivalOrder(t *testing.T) {
	st := NewState()
	// Arrival order: a thinking step numbered 5, then a tool_call numbered 1.
	st.AddStep(&Step{StepNumber: 5, Phase: PhaseThinking})
	st.AddStep(&Step{StepNumber: 1, Phase: PhaseToolCall})

	if got := InferPhase(&Step{StepNumber: 2}, st); got != PhaseAnalysis {
		t.Errorf("InferPhase() = %q, want %q (lookup is by stepNumber-1, not last arrival)", got, PhaseAnalysis)
	}
}

func TestInferPhaseFirstMatchOnRevisedStep(t *testing.T) {
	st := NewState()
	st.AddStep(&Step{StepNumber: 1, Phase: PhaseToolCall})
	// A revision resubmits step 1 as thinking; first match still wins.
	st.AddStep(&Step{StepNumber: 1, Phase: PhaseThinking, IsRevision: true, RevisesStep: 1})

	if got := InferPhase(&Step{StepNumber: 2}, st); got != PhaseAnalysis {
		t.Errorf("InferPhase() = %q, want %q (StepByNumber returns the earliest match)", got, PhaseAnalysis)
	}
}
