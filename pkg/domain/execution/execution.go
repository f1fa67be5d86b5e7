package execution

import (
	"fmt"
	"time"

	"github.com/dshills/sortviz/pkg/domain/types"
)

// Execution represents a single invocation of the trace engine.
// It is the root entity of the Execution aggregate.
type Execution struct {
	// ID is the unique identifier for this run.
	ID types.RunID
	// Algorithm is the selector the run was started with.
	Algorithm types.AlgorithmTag
	// InputSize is the number of values sorted.
	InputSize int
	// StepCount is the number of steps in the produced trace (0 on failure).
	StepCount int
	// Status is the current run state.
	Status Status
	// StartedAt is when the run was created/started.
	StartedAt time.Time
	// CompletedAt is when the run finished (zero if still running).
	CompletedAt time.Time
	// Error contains error details if the run failed.
	Error *ExecutionError
}

// NewExecution creates a pending run for algorithm over inputSize values.
func NewExecution(algorithm types.AlgorithmTag, inputSize int) (*Execution, error) {
	if algorithm == "" {
		return nil, fmt.Errorf("algorithm cannot be empty")
	}
	if inputSize < 0 {
		return nil, fmt.Errorf("input size cannot be negative: %d", inputSize)
	}

	return &Execution{
		ID:        types.NewRunID(),
		Algorithm: algorithm,
		InputSize: inputSize,
		Status:    StatusPending,
		StartedAt: time.Now(),
	}, nil
}

// Start transitions the run from Pending to Running.
func (e *Execution) Start() error {
	if e.Status != StatusPending {
		return fmt.Errorf("cannot start execution: expected status Pending, got %s", e.Status)
	}

	e.Status = StatusRunning
	e.StartedAt = time.Now()
	return nil
}

// Complete marks the run as successful with the number of recorded steps.
func (e *Execution) Complete(stepCount int) error {
	if e.Status != StatusRunning {
		return fmt.Errorf("cannot complete execution: expected status Running, got %s", e.Status)
	}

	e.Status = StatusCompleted
	e.CompletedAt = time.Now()
	e.StepCount = stepCount
	return nil
}

// Fail marks the run as failed with error details.
// Pending runs may fail too, since validation happens before Start.
func (e *Execution) Fail(err *ExecutionError) error {
	if e.Status != StatusRunning && e.Status != StatusPending {
		return fmt.Errorf("cannot fail execution: expected status Pending or Running, got %s", e.Status)
	}

	if err != nil && err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}

	e.Status = StatusFailed
	e.CompletedAt = time.Now()
	e.Error = err
	return nil
}

// Duration returns the total run time, or 0 if the run hasn't finished.
func (e *Execution) Duration() time.Duration {
	if e.CompletedAt.IsZero() {
		return 0
	}
	return e.CompletedAt.Sub(e.StartedAt)
}
