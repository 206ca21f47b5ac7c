package engine

import (
	"encoding/json"
	"fmt"
)

// ToolCall is the contract for invoking a named tool. Metadata is advisory:
// timeout feeds the invocation race, retryCount and priority are carried for
// downstream consumers and not enforced here.
type ToolCall struct {
	ToolName   string            `json:"toolName"`
	Parameters map[string]any    `json:"parameters"`
	Metadata   *ToolCallMetadata `json:"metadata,omitempty"`
}

// ToolCallMetadata carries per-call execution hints.
type ToolCallMetadata struct {
	Timeout    int    `json:"timeout,omitempty"` // milliseconds
	RetryCount int    `json:"retryCount,omitempty"`
	Priority   string `json:"priority,omitempty"`
}

// ToolError describes a failed tool execution in a shape the caller can
// reason about during the analysis phase.
type ToolError struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	RecoveryStrategy string `json:"recoveryStrategy"`
}

// ToolResult is the uniform outcome of one tool invocation. ExecutionTime
// and Timestamp are stamped by the invocation manager, not the executor.
type ToolResult struct {
	ToolName      string     `json:"toolName"`
	Success       bool       `json:"success"`
	Result        any        `json:"result,omitempty"`
	Error         *ToolError `json:"error,omitempty"`
	ExecutionTime int64      `json:"executionTime"` // milliseconds
	Timestamp     string     `json:"timestamp"`     // RFC 3339
}

// CacheKey derives the deterministic cache key for this call: the tool name
// plus the canonically serialized parameters. encoding/json sorts map keys,
// so logically-equal parameter maps produce the same key regardless of
// insertion order. Metadata is excluded: two calls differing only in
// timeout or priority are the same cached operation.
func (c ToolCall) CacheKey() string {
	params, err := json.Marshal(c.Parameters)
	if err != nil {
		// Parameters arriving over JSON transport always serialize; this
		// path only triggers for hand-built calls with exotic values.
		params = []byte(fmt.Sprintf("%v", c.Parameters))
	}
	return c.ToolName + ":" + string(params)
}
