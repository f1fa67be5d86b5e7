package errors

import (
	"fmt"
	"time"

	"github.com/dshills/sortviz/pkg/domain/types"
)

// OperationalError represents enhanced error information for debugging.
//
// It wraps errors with operational context including the algorithm selector,
// the run ID and a timestamp. The HTTP and CLI layers use it to report
// failures of the trace engine without losing the underlying cause.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	Algorithm  types.AlgorithmTag     // Which algorithm was selected
	RunID      types.RunID            // Which run (if one was created)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("running algorithm", tag, runID, err)
//	}
func NewOperationalError(operation string, algorithm types.AlgorithmTag, runID types.RunID, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		Algorithm: algorithm,
		RunID:     runID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation string, algorithm types.AlgorithmTag, runID types.RunID, cause error, attrs map[string]interface{}) *OperationalError {
	oe := NewOperationalError(operation, algorithm, runID, cause)
	if oe != nil {
		oe.Attributes = attrs
	}
	return oe
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: algorithm={tag} run={id}: {cause}"
// If the run ID is empty, it's omitted from the message.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	if e.RunID != "" {
		return fmt.Sprintf("[%s] %s: algorithm=%s run=%s: %v",
			timestamp,
			e.Operation,
			e.Algorithm,
			e.RunID,
			e.Cause)
	}

	return fmt.Sprintf("[%s] %s: algorithm=%s: %v",
		timestamp,
		e.Operation,
		e.Algorithm,
		e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
