package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ToolExecutor runs a tool call and returns its raw payload. Real execution
// is an injected dependency; the engine itself is tool-agnostic.
type ToolExecutor func(ctx context.Context, call ToolCall) (any, error)

// InvokerStats is the invoker's own diagnostic view, derived from the
// result cache. Duplicate calls served from cache and failed calls are not
// represented here; the State ledger's statistics are authoritative.
type InvokerStats struct {
	CallsIssued        int   `json:"callsIssued"`
	SuccessfulCalls    int   `json:"successfulCalls"`
	FailedCalls        int   `json:"failedCalls"`
	TotalExecutionTime int64 `json:"totalExecutionTime"`
}

// Invoker enforces the per-session tool budget, races execution against a
// timeout, and caches successful results by content-derived key.
type Invoker struct {
	exec           ToolExecutor
	maxCalls       int
	defaultTimeout time.Duration
	cacheEnabled   bool
	testMode       bool

	callsIssued int
	cache       map[string]*ToolResult
	mocks       map[string]*ToolResult
}

// NewInvoker builds an invoker from session configuration.
func NewInvoker(cfg Config, exec ToolExecutor) *Invoker {
	return &Invoker{
		exec:           exec,
		maxCalls:       cfg.MaxToolCalls,
		defaultTimeout: cfg.DefaultTimeout,
		cacheEnabled:   cfg.EnableResultCache,
		testMode:       cfg.TestMode,
		cache:          make(map[string]*ToolResult),
		mocks:          make(map[string]*ToolResult),
	}
}

// Invoke executes a tool call within the session budget.
//
// The budget check runs before any execution attempt and is the only
// raising failure path. Execution failures, including timeouts, come back
// as a normal ToolResult with Success=false so the caller can reason about
// them in the analysis phase. The budget slot is consumed even when the
// execution subsequently fails.
func (inv *Invoker) Invoke(ctx context.Context, call ToolCall) (*ToolResult, error) {
	if inv.callsIssued >= inv.maxCalls {
		return nil, &ToolCallLimitError{Limit: inv.maxCalls}
	}
	inv.callsIssued++

	key := call.CacheKey()
	if inv.testMode {
		if mock, ok := inv.mocks[key]; ok {
			return mock, nil
		}
	}
	if inv.cacheEnabled {
		if cached, ok := inv.cache[key]; ok {
			// Served verbatim: original executionTime and timestamp stand.
			return cached, nil
		}
	}

	timeout := inv.defaultTimeout
	if call.Metadata != nil && call.Metadata.Timeout > 0 {
		timeout = time.Duration(call.Metadata.Timeout) * time.Millisecond
	}

	started := time.Now()
	payload, err := inv.race(ctx, call, timeout)
	elapsed := time.Since(started).Milliseconds()
	stamp := time.Now().UTC().Format(time.RFC3339Nano)

	if err != nil {
		return &ToolResult{
			ToolName:      call.ToolName,
			Success:       false,
			Error:         classifyExecution(err),
			ExecutionTime: elapsed,
			Timestamp:     stamp,
		}, nil
	}

	res := &ToolResult{
		ToolName:      call.ToolName,
		Success:       true,
		Result:        payload,
		ExecutionTime: elapsed,
		Timestamp:     stamp,
	}
	if inv.cacheEnabled {
		// Failures are never cached; a retry gets a fresh execution.
		inv.cache[key] = res
	}
	return res, nil
}

// race runs the executor against the timeout; whichever settles first wins.
// When the timeout wins, the losing execution's eventual completion is
// discarded rather than actively aborted; the executor observes the context
// cancellation and is responsible for its own cleanup.
func (inv *Invoker) race(ctx context.Context, call ToolCall, timeout time.Duration) (any, error) {
	if inv.exec == nil {
		return nil, errors.New("no tool executor configured")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		payload any
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		payload, err := inv.exec(ctx, call)
		done <- outcome{payload: payload, err: err}
	}()

	select {
	case out := <-done:
		return out.payload, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("tool %s timed out after %s", call.ToolName, timeout)
	}
}

// InjectMockResults registers fixtures keyed by "toolName:serialized
// parameters" (see ToolCall.CacheKey). In test mode a matching call returns
// the fixture verbatim, bypassing both cache and real execution.
func (inv *Invoker) InjectMockResults(mocks map[string]*ToolResult) {
	for key, res := range mocks {
		inv.mocks[key] = res
	}
}

// CallsIssued returns how many budget slots have been consumed.
func (inv *Invoker) CallsIssued() int { return inv.callsIssued }

// Statistics derives the invoker's secondary diagnostic counts from the
// cache. See InvokerStats for why this view undercounts.
func (inv *Invoker) Statistics() InvokerStats {
	stats := InvokerStats{CallsIssued: inv.callsIssued}
	for _, res := range inv.cache {
		if res.Success {
			stats.SuccessfulCalls++
		} else {
			stats.FailedCalls++
		}
		stats.TotalExecutionTime += res.ExecutionTime
	}
	return stats
}

// Reset restores the full budget and drops the cache. Configuration and
// injected mocks persist.
func (inv *Invoker) Reset() {
	inv.callsIssued = 0
	inv.cache = make(map[string]*ToolResult)
}
