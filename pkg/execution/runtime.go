// Package execution runs the trace engine on behalf of the CLI and HTTP
// layers: it enforces input limits, tracks each invocation as an Execution,
// and records run metadata through a Logger.
package execution

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
)

// DefaultMaxArraySize bounds the input length when no limit is configured.
const DefaultMaxArraySize = 200

// Request selects an algorithm and supplies the values to sort.
type Request struct {
	Algorithm string
	Values    []int
}

// Result is the outcome of a successful run.
type Result struct {
	// Execution holds the run metadata.
	Execution *execution.Execution
	// Trace holds the recorded steps. It is owned by the caller.
	Trace *trace.Trace
}

// Engine executes trace-engine runs. It holds no per-run state, so one
// Engine may serve concurrent callers.
type Engine struct {
	maxArraySize int
	logger       *Logger
	monitor      *Monitor
}

// Option configures an Engine.
type Option func(*Engine)

// WithRepository persists run metadata to repo.
func WithRepository(repo execution.ExecutionRepository) Option {
	return func(e *Engine) {
		e.logger = NewLogger(repo)
	}
}

// WithMonitor publishes run lifecycle events to m.
func WithMonitor(m *Monitor) Option {
	return func(e *Engine) {
		e.monitor = m
	}
}

// WithMaxArraySize sets the input length limit. Non-positive values keep the default.
func WithMaxArraySize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxArraySize = n
		}
	}
}

// NewEngine creates a new run engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxArraySize: DefaultMaxArraySize,
		logger:       NewLogger(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxArraySize returns the configured input length limit.
func (e *Engine) MaxArraySize() int {
	return e.maxArraySize
}

// Logger returns the engine's run logger.
func (e *Engine) Logger() *Logger {
	return e.logger
}

// Execute runs the requested algorithm and returns its trace.
//
// Failures are returned as *execution.ExecutionError wrapping the cause, so
// errors.Is(err, sorting.ErrUnknownAlgorithm) and errors.Is(err,
// ErrArrayTooLarge) hold. No trace is produced on failure.
func (e *Engine) Execute(ctx context.Context, req Request) (*Result, error) {
	algorithm := types.AlgorithmTag(req.Algorithm)

	exec, err := execution.NewExecution(algorithm, len(req.Values))
	if err != nil {
		return nil, WrapRunError(algorithm, fmt.Errorf("%w: %v", sorting.ErrUnknownAlgorithm, err), nil)
	}

	if err := ctx.Err(); err != nil {
		deadline, hasDeadline := ctx.Deadline()
		return nil, e.fail(exec, WrapRunError(algorithm, err, NewErrorContext().
			AddIf(hasDeadline, "deadline", deadline).
			Build()))
	}

	descriptor, err := sorting.Lookup(req.Algorithm)
	if err != nil {
		return nil, e.fail(exec, WrapRunError(algorithm, err, NewErrorContext().
			Add("known_algorithms", sorting.Tags()).
			Build()))
	}

	if len(req.Values) > e.maxArraySize {
		return nil, e.fail(exec, WrapSizeError(algorithm, len(req.Values), e.maxArraySize))
	}

	e.logger.LogExecutionStart(exec)

	if err := exec.Start(); err != nil {
		return nil, e.fail(exec, WrapRunError(algorithm, err, nil))
	}
	e.emit(EventRunStarted, exec)

	tr := descriptor.Run(req.Values)

	if err := exec.Complete(tr.Len()); err != nil {
		return nil, e.fail(exec, WrapRunError(algorithm, err, nil))
	}

	e.logger.LogExecutionComplete(exec)
	e.emit(EventRunCompleted, exec)

	return &Result{Execution: exec, Trace: tr}, nil
}

func (e *Engine) fail(exec *execution.Execution, execErr *execution.ExecutionError) error {
	if err := exec.Fail(execErr); err != nil {
		return errors.Join(execErr, err)
	}
	e.logger.LogExecutionComplete(exec)
	e.emit(EventRunFailed, exec)
	return execErr
}

func (e *Engine) emit(typ RunEventType, exec *execution.Execution) {
	if e.monitor != nil {
		e.monitor.Emit(eventFor(typ, exec))
	}
}
