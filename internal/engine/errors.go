// This file contains the error taxonomy surfaced to callers and the
// classification applied at the orchestrator boundary.

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Surfaced error.type values.
const (
	ErrTypeValidation    = "ValidationError"
	ErrTypeToolCallLimit = "ToolCallLimitError"
	ErrTypeTimeout       = "TimeoutError"
	ErrTypeToolExecution = "ToolExecutionError"
	ErrTypeGeneric       = "Error"
)

// Fixed recovery hints per error type.
const (
	recoverValidation    = "provide all required fields"
	recoverToolCallLimit = "summarize progress and terminate or reset the session"
	recoverTimeout       = "use a simpler tool or increase timeout"
	recoverToolExecution = "retry with adjusted parameters or use an alternative tool"
	recoverGeneric       = "check input parameters and try again"
)

// ValidationError indicates a malformed or missing required field. It is
// raised before any state mutation, so a rejected step is never recorded.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ToolCallLimitError indicates the session's tool budget is exhausted. This
// is the only tool-path failure that is raised rather than returned as a
// ToolResult: budget exhaustion is a hard stop, tool failure is an expected
// outcome the caller should analyze.
type ToolCallLimitError struct {
	Limit int
}

func (e *ToolCallLimitError) Error() string {
	return fmt.Sprintf("tool call limit reached: maximum of %d calls per session", e.Limit)
}

// Classify maps an error caught at the orchestrator boundary to its
// surfaced type and recovery strategy.
func Classify(err error) (errType, recovery string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrTypeValidation, recoverValidation
	}
	var le *ToolCallLimitError
	if errors.As(err, &le) {
		return ErrTypeToolCallLimit, recoverToolCallLimit
	}
	return ErrTypeGeneric, recoverGeneric
}

// classifyExecution shapes a tool execution failure into the non-throwing
// ToolError carried on the result.
func classifyExecution(err error) *ToolError {
	msg := err.Error()
	if isTimeoutMessage(msg) {
		return &ToolError{
			Type:             ErrTypeTimeout,
			Message:          msg,
			RecoveryStrategy: recoverTimeout,
		}
	}
	return &ToolError{
		Type:             ErrTypeToolExecution,
		Message:          msg,
		RecoveryStrategy: recoverToolExecution,
	}
}

func isTimeoutMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "timeout") ||
		strings.Contains(m, "timed out") ||
		strings.Contains(m, "deadline exceeded")
}
