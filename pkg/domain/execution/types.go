// Package execution defines the Execution aggregate: the metadata of one
// trace-engine run. The trace itself is never part of it.
package execution

import (
	"fmt"
	"time"

	"github.com/dshills/sortviz/pkg/domain/types"
)

// Status represents the current state of a run.
type Status string

const (
	// StatusPending indicates the run is created but not yet started.
	StatusPending Status = "pending"
	// StatusRunning indicates the algorithm is executing.
	StatusRunning Status = "running"
	// StatusCompleted indicates a trace was produced.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the run stopped without a trace.
	StatusFailed Status = "failed"
)

// IsTerminal returns true if the status represents a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ErrorType categorizes run failures.
type ErrorType string

const (
	// ErrorTypeUnknownAlgorithm indicates the selector matched no algorithm.
	ErrorTypeUnknownAlgorithm ErrorType = "unknown_algorithm"
	// ErrorTypeInvalidInput indicates the input could not be used as an integer array.
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeCancelled indicates the caller's context ended before the run started.
	ErrorTypeCancelled ErrorType = "cancelled"
	// ErrorTypeInternal indicates a failure that is not the caller's fault.
	ErrorTypeInternal ErrorType = "internal"
)

// ExecutionError represents detailed error information for failed runs.
type ExecutionError struct {
	// Type categorizes the error for appropriate handling.
	Type ErrorType
	// Message is a human-readable error description.
	Message string
	// Algorithm is the selector the run was started with.
	Algorithm types.AlgorithmTag
	// Context provides additional error context (e.g. input size, limit).
	Context map[string]interface{}
	// Timestamp records when the error occurred.
	Timestamp time.Time
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("[%s] algorithm %s: %s", e.Type, e.Algorithm, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
