package trace

import (
	"fmt"

	"github.com/dshills/sortviz/pkg/domain/types"
)

// Trace is the ordered sequence of all Steps produced by one algorithm run.
// It is built by a Recorder and never shared between runs.
type Trace struct {
	// Algorithm is the tag of the algorithm that produced the trace.
	Algorithm types.AlgorithmTag
	// Steps holds the recorded events in emission order.
	Steps []Step
}

// Len returns the number of steps in the trace.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}

// First returns the starting step. It panics on an empty trace.
func (t *Trace) First() Step {
	return t.Steps[0]
}

// Last returns the completion step. It panics on an empty trace.
func (t *Trace) Last() Step {
	return t.Steps[len(t.Steps)-1]
}

// Result returns the final, sorted snapshot.
func (t *Trace) Result() []int {
	if t.Len() == 0 {
		return nil
	}
	return t.Last().Snapshot
}

// Snapshots returns the snapshot of every step, index-aligned with Steps.
func (t *Trace) Snapshots() [][]int {
	out := make([][]int, len(t.Steps))
	for i, s := range t.Steps {
		out[i] = s.Snapshot
	}
	return out
}

// Explanations returns the short explanation of every step.
func (t *Trace) Explanations() []string {
	out := make([]string, len(t.Steps))
	for i, s := range t.Steps {
		out[i] = s.Explanation
	}
	return out
}

// LogicExplanations returns the logic explanation of every step.
func (t *Trace) LogicExplanations() []string {
	out := make([]string, len(t.Steps))
	for i, s := range t.Steps {
		out[i] = s.LogicExplanation
	}
	return out
}

// Highlights returns the highlight record of every step.
func (t *Trace) Highlights() []Highlight {
	out := make([]Highlight, len(t.Steps))
	for i, s := range t.Steps {
		out[i] = s.Highlight
	}
	return out
}

// Validate checks the structural invariants every trace must satisfy:
// at least a start and a completion step, equal-length snapshots, and a
// completion step marking every index sorted.
func (t *Trace) Validate() error {
	if t.Len() < 2 {
		return fmt.Errorf("trace must contain at least 2 steps, got %d", t.Len())
	}

	n := len(t.First().Snapshot)
	for i, s := range t.Steps {
		if len(s.Snapshot) != n {
			return fmt.Errorf("step %d: snapshot length %d, want %d", i, len(s.Snapshot), n)
		}
		h := s.Highlight
		if h.Comparing == nil || h.Swapping == nil || h.Sorted == nil || h.Pivot == nil {
			return fmt.Errorf("step %d: highlight has a nil role list", i)
		}
	}

	sorted := t.Last().Highlight.Sorted
	if len(sorted) != n {
		return fmt.Errorf("completion step marks %d indices sorted, want %d", len(sorted), n)
	}
	for i, idx := range sorted {
		if idx != i {
			return fmt.Errorf("completion step sorted[%d] = %d, want %d", i, idx, i)
		}
	}

	return nil
}
