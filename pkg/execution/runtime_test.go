package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository is an in-memory execution.ExecutionRepository.
type memoryRepository struct {
	mu    sync.Mutex
	saves int
	runs  map[types.RunID]execution.Execution
	err   error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{runs: make(map[types.RunID]execution.Execution)}
}

func (r *memoryRepository) Save(exec *execution.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.err != nil {
		return r.err
	}
	r.runs[exec.ID] = *exec
	return nil
}

func (r *memoryRepository) Load(id types.RunID) (*execution.Execution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exec, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("execution not found: %s", id)
	}
	return &exec, nil
}

func (r *memoryRepository) List(filter execution.ListFilter) ([]*execution.Execution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*execution.Execution, 0, len(r.runs))
	for _, exec := range r.runs {
		if filter.Algorithm != "" && exec.Algorithm != filter.Algorithm {
			continue
		}
		exec := exec
		out = append(out, &exec)
	}
	return out, nil
}

func (r *memoryRepository) Delete(id types.RunID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[id]; !ok {
		return fmt.Errorf("execution not found: %s", id)
	}
	delete(r.runs, id)
	return nil
}

func TestEngine_Execute(t *testing.T) {
	engine := NewEngine()

	for _, tag := range sorting.Tags() {
		t.Run(string(tag), func(t *testing.T) {
			res, err := engine.Execute(context.Background(), Request{
				Algorithm: string(tag),
				Values:    []int{5, 2, 9, 1, 5, 6},
			})
			require.NoError(t, err)
			require.NotNil(t, res.Trace)

			assert.Equal(t, []int{1, 2, 5, 5, 6, 9}, res.Trace.Result())
			assert.NoError(t, res.Trace.Validate())
			assert.Equal(t, execution.StatusCompleted, res.Execution.Status)
			assert.Equal(t, res.Trace.Len(), res.Execution.StepCount)
			assert.Equal(t, 6, res.Execution.InputSize)
			assert.False(t, res.Execution.ID.IsZero())
		})
	}
}

func TestEngine_Execute_DoesNotMutateInput(t *testing.T) {
	values := []int{3, 1, 2}
	_, err := NewEngine().Execute(context.Background(), Request{
		Algorithm: string(types.BubbleSort),
		Values:    values,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, values)
}

func TestEngine_Execute_Failures(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		req      Request
		wantIs   error
		wantType execution.ErrorType
	}{
		{
			name:     "unknown algorithm",
			ctx:      context.Background(),
			req:      Request{Algorithm: "bogo_sort", Values: []int{1}},
			wantIs:   sorting.ErrUnknownAlgorithm,
			wantType: execution.ErrorTypeUnknownAlgorithm,
		},
		{
			name:     "empty algorithm",
			ctx:      context.Background(),
			req:      Request{Algorithm: "", Values: []int{1}},
			wantIs:   sorting.ErrUnknownAlgorithm,
			wantType: execution.ErrorTypeUnknownAlgorithm,
		},
		{
			name:     "too large",
			ctx:      context.Background(),
			req:      Request{Algorithm: string(types.MergeSort), Values: make([]int, 4)},
			wantIs:   ErrArrayTooLarge,
			wantType: execution.ErrorTypeInvalidInput,
		},
		{
			name:     "cancelled",
			ctx:      cancelled,
			req:      Request{Algorithm: string(types.MergeSort), Values: []int{2, 1}},
			wantIs:   context.Canceled,
			wantType: execution.ErrorTypeCancelled,
		},
	}

	engine := NewEngine(WithMaxArraySize(3))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Execute(tt.ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.wantIs), "got %v", err)

			var execErr *execution.ExecutionError
			require.True(t, errors.As(err, &execErr))
			assert.Equal(t, tt.wantType, execErr.Type)
		})
	}
}

func TestEngine_Execute_ContextErrorDetails(t *testing.T) {
	deadline := time.Now().Add(-time.Second)
	expired, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	_, err := NewEngine().Execute(expired, Request{Algorithm: string(types.QuickSort), Values: []int{2, 1}})
	var execErr *execution.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, deadline, execErr.Context["deadline"])

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = NewEngine().Execute(cancelled, Request{Algorithm: string(types.QuickSort), Values: []int{2, 1}})
	require.True(t, errors.As(err, &execErr))
	assert.NotContains(t, execErr.Context, "deadline")
}

func TestEngine_WithMaxArraySize(t *testing.T) {
	assert.Equal(t, DefaultMaxArraySize, NewEngine().MaxArraySize())
	assert.Equal(t, 50, NewEngine(WithMaxArraySize(50)).MaxArraySize())
	assert.Equal(t, DefaultMaxArraySize, NewEngine(WithMaxArraySize(0)).MaxArraySize())
}

func TestEngine_PersistsRuns(t *testing.T) {
	repo := newMemoryRepository()
	engine := NewEngine(WithRepository(repo), WithMaxArraySize(5))

	res, err := engine.Execute(context.Background(), Request{
		Algorithm: string(types.InsertionSort),
		Values:    []int{4, 3, 2, 1},
	})
	require.NoError(t, err)

	stored, err := engine.Logger().GetExecution(res.Execution.ID)
	require.NoError(t, err)
	assert.Equal(t, execution.StatusCompleted, stored.Status)
	assert.Equal(t, res.Trace.Len(), stored.StepCount)

	_, err = engine.Execute(context.Background(), Request{
		Algorithm: string(types.InsertionSort),
		Values:    make([]int, 6),
	})
	require.Error(t, err)

	runs, err := engine.Logger().ListExecutions(execution.ListFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	var failed *execution.Execution
	for _, r := range runs {
		if r.Status == execution.StatusFailed {
			failed = r
		}
	}
	require.NotNil(t, failed)
	require.NotNil(t, failed.Error)
	assert.Equal(t, execution.ErrorTypeInvalidInput, failed.Error.Type)

	require.NoError(t, engine.Logger().DeleteExecution(res.Execution.ID))
	_, err = engine.Logger().GetExecution(res.Execution.ID)
	assert.Error(t, err)
}

func TestEngine_RepositoryFailureDoesNotFailRun(t *testing.T) {
	repo := newMemoryRepository()
	repo.err = errors.New("disk full")

	res, err := NewEngine(WithRepository(repo)).Execute(context.Background(), Request{
		Algorithm: string(types.SelectionSort),
		Values:    []int{2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, res.Trace.Result())
	assert.Equal(t, 2, repo.saves)
}

func TestLogger_NoRepository(t *testing.T) {
	logger := NewLogger(nil)

	logger.LogExecutionStart(&execution.Execution{})
	logger.LogExecutionComplete(&execution.Execution{})

	_, err := logger.GetExecution(types.NewRunID())
	assert.Error(t, err)
	_, err = logger.ListExecutions(execution.ListFilter{})
	assert.Error(t, err)
	assert.Error(t, logger.DeleteExecution(types.NewRunID()))
}

func TestEngine_ConcurrentExecute(t *testing.T) {
	engine := NewEngine()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag := sorting.Tags()[i%len(sorting.Tags())]
			res, err := engine.Execute(context.Background(), Request{
				Algorithm: string(tag),
				Values:    []int{i, 3, 1, 2},
			})
			if err != nil {
				errs <- err
				return
			}
			if err := res.Trace.Validate(); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
