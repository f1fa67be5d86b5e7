package execution

import (
	"fmt"
	"log"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/types"
)

// Logger records run metadata to persistent storage. Persistence is
// best-effort: failures are logged and never fail the run.
type Logger struct {
	repository execution.ExecutionRepository
}

// NewLogger creates a new run logger. A nil repository disables persistence.
func NewLogger(repo execution.ExecutionRepository) *Logger {
	return &Logger{
		repository: repo,
	}
}

// LogExecutionStart logs the start of a run.
func (l *Logger) LogExecutionStart(exec *execution.Execution) {
	if l.repository == nil {
		return
	}

	if err := l.repository.Save(exec); err != nil {
		log.Printf("Warning: failed to log run start: %v", err)
	}
}

// LogExecutionComplete logs the final state of a run, successful or not.
func (l *Logger) LogExecutionComplete(exec *execution.Execution) {
	if l.repository == nil {
		return
	}

	if err := l.repository.Save(exec); err != nil {
		log.Printf("Warning: failed to log run completion: %v", err)
		return
	}

	log.Printf("Run %s: %s over %d values -> %s (%d steps, %v)",
		exec.ID,
		exec.Algorithm,
		exec.InputSize,
		exec.Status,
		exec.StepCount,
		exec.Duration(),
	)
}

// GetExecution retrieves one run record from storage.
func (l *Logger) GetExecution(id types.RunID) (*execution.Execution, error) {
	if l.repository == nil {
		return nil, fmt.Errorf("no repository configured")
	}

	return l.repository.Load(id)
}

// ListExecutions retrieves run records matching filter, most recent first.
func (l *Logger) ListExecutions(filter execution.ListFilter) ([]*execution.Execution, error) {
	if l.repository == nil {
		return nil, fmt.Errorf("no repository configured")
	}

	return l.repository.List(filter)
}

// DeleteExecution removes a run record from storage.
func (l *Logger) DeleteExecution(id types.RunID) error {
	if l.repository == nil {
		return fmt.Errorf("no repository configured")
	}

	return l.repository.Delete(id)
}
