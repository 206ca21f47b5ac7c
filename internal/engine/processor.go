package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
)

// ToolResultSummary is the reduced per-step view of a tool outcome. The
// full result and error detail are available only through History.
type ToolResultSummary struct {
	Success       bool  `json:"success"`
	ExecutionTime int64 `json:"executionTime"`
}

// StepResponse is the success payload echoed back for a processed step.
type StepResponse struct {
	StepNumber        int                `json:"stepNumber"`
	TotalSteps        int                `json:"totalSteps"`
	NextStepNeeded    bool               `json:"nextStepNeeded"`
	Branches          []string           `json:"branches"`
	StepHistoryLength int                `json:"stepHistoryLength"`
	Phase             Phase              `json:"phase"`
	ToolResult        *ToolResultSummary `json:"toolResult,omitempty"`
}

// ErrorDetail mirrors the shape of a ToolError for step-level failures.
type ErrorDetail struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	RecoveryStrategy string `json:"recoveryStrategy"`
}

// ErrorResponse is the uniform failure payload.
type ErrorResponse struct {
	Error  ErrorDetail `json:"error"`
	Status string      `json:"status"`
}

// Processor is one session of the step engine: it validates incoming steps,
// resolves their phase, runs the phase-specific action, and commits to the
// ledger. One Processor owns its State and Invoker exclusively.
//
// A mutex serializes ProcessStep and Reset. The protocol assumes one
// in-flight step at a time, but transports can deliver interleaved requests
// and the budget, cache, and ledger appends are not otherwise safe to race.
type Processor struct {
	mu        sync.Mutex
	cfg       Config
	sessionID string
	state     *State
	invoker   *Invoker
	hooks     Hooks
}

// New creates a session. The diagnostic logger is attached here unless
// disabled; extra hooks observe the same pipeline events.
func New(cfg Config, exec ToolExecutor, extra ...Hook) *Processor {
	hooks := Hooks{}
	if !cfg.DisableLogging {
		hooks = append(hooks, LoggerHook{L: log.New(os.Stderr, "", log.LstdFlags)})
	}
	hooks = append(hooks, extra...)

	return &Processor{
		cfg:       cfg,
		sessionID: uuid.NewString(),
		state:     NewState(),
		invoker:   NewInvoker(cfg, exec),
		hooks:     hooks,
	}
}

// SessionID identifies this session in diagnostics.
func (p *Processor) SessionID() string { return p.sessionID }

// ProcessStep runs one raw step through validation, phase resolution, the
// phase-specific action, and the ledger commit, returning the JSON-encoded
// payload. Nothing escapes: every failure, including an unexpected panic,
// is converted into the uniform error payload with isError set.
func (p *Processor) ProcessStep(ctx context.Context, args map[string]any) (text string, isError bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			text, isError = p.errorPayload(ctx, fmt.Errorf("internal failure: %v", r))
		}
	}()

	resp, err := p.process(ctx, args)
	if err != nil {
		return p.errorPayload(ctx, err)
	}
	return marshalPayload(resp), false
}

func (p *Processor) errorPayload(ctx context.Context, err error) (string, bool) {
	p.hooks.OnError(ctx, p.state, err)
	errType, recovery := Classify(err)
	return marshalPayload(ErrorResponse{
		Error: ErrorDetail{
			Type:             errType,
			Message:          err.Error(),
			RecoveryStrategy: recovery,
		},
		Status: "failed",
	}), true
}

// process is the state machine over one step. Validation and phase
// resolution happen before any mutation, so a rejected step is never
// recorded.
func (p *Processor) process(ctx context.Context, args map[string]any) (*StepResponse, error) {
	step, err := ParseStep(args)
	if err != nil {
		return nil, err
	}

	if step.Phase == "" {
		step.Phase = InferPhase(step, p.state)
	}

	// totalSteps only ever moves upward: raise it to the step number when
	// exceeded, and never below the session watermark.
	if step.StepNumber > step.TotalSteps {
		step.TotalSteps = step.StepNumber
	}
	if hw := p.state.TotalSteps(); hw > step.TotalSteps {
		step.TotalSteps = hw
	}

	var summary *ToolResultSummary

	switch step.Phase {
	case PhaseToolCall:
		if step.ToolCall == nil {
			return nil, errors.New("toolCall is required for tool_call phase")
		}
		p.hooks.OnToolCall(ctx, p.state, step.StepNumber, *step.ToolCall)

		res, err := p.invoker.Invoke(ctx, *step.ToolCall)
		if err != nil {
			return nil, err // budget exhaustion, nothing recorded
		}
		step.ToolResult = res
		p.state.AddToolCall(ToolCallRecord{
			ID:         uuid.NewString(),
			StepNumber: step.StepNumber,
			Call:       *step.ToolCall,
			Result:     res,
		})
		p.hooks.OnToolResult(ctx, p.state, *step.ToolCall, res)
		summary = &ToolResultSummary{Success: res.Success, ExecutionTime: res.ExecutionTime}

	case PhaseAnalysis:
		if last := p.state.LastToolResult(); last != nil {
			summary = &ToolResultSummary{Success: last.Success, ExecutionTime: last.ExecutionTime}
		}
	}

	p.state.AddStep(step)
	p.hooks.OnStep(ctx, p.state, step)

	return &StepResponse{
		StepNumber:        step.StepNumber,
		TotalSteps:        step.TotalSteps,
		NextStepNeeded:    step.NextStepNeeded,
		Branches:          p.state.BranchIDs(),
		StepHistoryLength: p.state.StepCount(),
		Phase:             step.Phase,
		ToolResult:        summary,
	}, nil
}

// History returns a snapshot of the session ledger.
func (p *Processor) History() History {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.History()
}

// InvokerStatistics exposes the invoker's cache-derived diagnostic view.
func (p *Processor) InvokerStatistics() InvokerStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.invoker.Statistics()
}

// InjectMockResults registers test fixtures on the invoker; see
// Invoker.InjectMockResults.
func (p *Processor) InjectMockResults(mocks map[string]*ToolResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invoker.InjectMockResults(mocks)
}

// Reset discards steps, branches, tool-call records, budget consumption,
// and the result cache. Configuration persists. Must not race an in-flight
// ProcessStep, which the session mutex guarantees.
func (p *Processor) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Reset()
	p.invoker.Reset()
	p.hooks.OnReset(ctx, p.state)
}

func marshalPayload(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":{"type":%q,"message":%q,"recoveryStrategy":%q},"status":"failed"}`,
			ErrTypeGeneric, "response encoding failed: "+err.Error(), recoverGeneric)
	}
	return string(b)
}
