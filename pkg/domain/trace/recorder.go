package trace

import "github.com/dshills/sortviz/pkg/domain/types"

// Recorder owns the working copy of one run and appends a Step per event.
// The sorting routines mutate Array() in place; each Record call snapshots it.
type Recorder struct {
	algorithm types.AlgorithmTag
	working   []int
	steps     []Step
}

// NewRecorder copies values into a fresh working array. The caller's slice is
// never touched again.
func NewRecorder(algorithm types.AlgorithmTag, values []int) *Recorder {
	working := make([]int, len(values))
	copy(working, values)
	return &Recorder{
		algorithm: algorithm,
		working:   working,
		steps:     make([]Step, 0, 2+4*len(values)),
	}
}

// Array returns the working array. Routines must not append to it.
func (r *Recorder) Array() []int {
	return r.working
}

// Record appends a step reflecting the current state of the working array.
func (r *Recorder) Record(explanation, logic string, h Highlight) {
	snapshot := make([]int, len(r.working))
	copy(snapshot, r.working)
	r.steps = append(r.steps, Step{
		Snapshot:         snapshot,
		Explanation:      explanation,
		LogicExplanation: logic,
		Highlight:        h,
	})
}

// Trace hands the recorded steps over as a Trace. The recorder must not be
// used afterwards.
func (r *Recorder) Trace() *Trace {
	t := &Trace{Algorithm: r.algorithm, Steps: r.steps}
	r.steps = nil
	return t
}
