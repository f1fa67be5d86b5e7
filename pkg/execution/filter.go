package execution

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dshills/sortviz/pkg/domain/trace"
)

// StepFilter selects steps of a trace with a boolean expr-lang expression.
//
// The expression sees one step at a time through these variables:
//
//	index        int       position of the step in the trace
//	explanation  string    short explanation
//	logic        string    logic explanation
//	snapshot     []int     array state
//	comparing    []int     highlight roles
//	swapping     []int
//	sorted       []int
//	pivot        []int
//
// Examples: `len(swapping) > 0`, `3 in pivot`, `explanation contains "Pass"`.
type StepFilter struct {
	expression string
	program    *vm.Program
}

// NewStepFilter compiles expression into a filter.
func NewStepFilter(expression string) (*StepFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("%w: expression is empty", ErrInvalidFilter)
	}
	if err := validateExpression(expression); err != nil {
		return nil, err
	}

	program, err := expr.Compile(expression, expr.Env(stepEnv(0, trace.Step{Highlight: trace.NewHighlight()})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return &StepFilter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *StepFilter) String() string {
	return f.expression
}

// Match reports whether step i satisfies the filter.
func (f *StepFilter) Match(i int, step trace.Step) (bool, error) {
	out, err := expr.Run(f.program, stepEnv(i, step))
	if err != nil {
		return false, fmt.Errorf("evaluating filter at step %d: %w", i, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression returned %T, want bool", ErrInvalidFilter, out)
	}
	return matched, nil
}

// Apply returns the indices of the steps in t that satisfy the filter, in order.
func (f *StepFilter) Apply(t *trace.Trace) ([]int, error) {
	matches := make([]int, 0)
	for i, step := range t.Steps {
		ok, err := f.Match(i, step)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

func stepEnv(i int, step trace.Step) map[string]interface{} {
	return map[string]interface{}{
		"index":       i,
		"explanation": step.Explanation,
		"logic":       step.LogicExplanation,
		"snapshot":    step.Snapshot,
		"comparing":   step.Highlight.Comparing,
		"swapping":    step.Highlight.Swapping,
		"sorted":      step.Highlight.Sorted,
		"pivot":       step.Highlight.Pivot,
	}
}

// validateExpression checks for unsafe operations
func validateExpression(expression string) error {
	unsafePatterns := []string{
		"os.",
		"exec.",
		"http.",
		"net.",
		"syscall.",
		"unsafe.",
		"__proto__",
	}

	lowerExpr := strings.ToLower(expression)
	for _, pattern := range unsafePatterns {
		if strings.Contains(lowerExpr, pattern) {
			return fmt.Errorf("%w: %w: %q", ErrInvalidFilter, ErrUnsafeOperation, pattern)
		}
	}

	return nil
}
