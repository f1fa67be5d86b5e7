// Package trace defines the Trace aggregate: the ordered, replayable record of
// one instrumented sorting run.
package trace

// Role names the part an index plays at a single step.
type Role string

const (
	// RoleComparing marks indices being compared.
	RoleComparing Role = "comparing"
	// RoleSwapping marks indices whose values were just exchanged.
	RoleSwapping Role = "swapping"
	// RoleSorted marks indices in their final (or provisionally final) position.
	RoleSorted Role = "sorted"
	// RolePivot marks indices acting as a partition pivot.
	RolePivot Role = "pivot"
	// RoleNone marks an index with no active role.
	RoleNone Role = ""
)

// Highlight describes which array indices are involved in a step and in what role.
// All four lists are always non-nil so they serialize as [] rather than null.
type Highlight struct {
	Comparing []int `json:"comparing" yaml:"comparing" msgpack:"comparing"`
	Swapping  []int `json:"swapping" yaml:"swapping" msgpack:"swapping"`
	Sorted    []int `json:"sorted" yaml:"sorted" msgpack:"sorted"`
	Pivot     []int `json:"pivot" yaml:"pivot" msgpack:"pivot"`
}

// NewHighlight returns a Highlight with every role empty.
func NewHighlight() Highlight {
	return Highlight{
		Comparing: []int{},
		Swapping:  []int{},
		Sorted:    []int{},
		Pivot:     []int{},
	}
}

// WithComparing returns a copy of h with the comparing role set.
func (h Highlight) WithComparing(idx ...int) Highlight {
	h.Comparing = indices(idx)
	return h
}

// WithSwapping returns a copy of h with the swapping role set.
func (h Highlight) WithSwapping(idx ...int) Highlight {
	h.Swapping = indices(idx)
	return h
}

// WithSorted returns a copy of h with the sorted role set.
func (h Highlight) WithSorted(idx ...int) Highlight {
	h.Sorted = indices(idx)
	return h
}

// WithPivot returns a copy of h with the pivot role set.
func (h Highlight) WithPivot(idx ...int) Highlight {
	h.Pivot = indices(idx)
	return h
}

// RoleOf reports the role index i plays, using the display precedence
// pivot > sorted > swapping > comparing.
func (h Highlight) RoleOf(i int) Role {
	switch {
	case contains(h.Pivot, i):
		return RolePivot
	case contains(h.Sorted, i):
		return RoleSorted
	case contains(h.Swapping, i):
		return RoleSwapping
	case contains(h.Comparing, i):
		return RoleComparing
	default:
		return RoleNone
	}
}

// Range returns the half-open index range [from, to) as a slice.
// An empty or inverted range yields an empty, non-nil slice.
func Range(from, to int) []int {
	if to <= from {
		return []int{}
	}
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// Step is one immutable recorded event in a sort's execution.
type Step struct {
	// Snapshot is a value copy of the working array when the step was recorded.
	Snapshot []int
	// Explanation is the short, human-facing description of the event.
	Explanation string
	// LogicExplanation describes why the event occurred.
	LogicExplanation string
	// Highlight names the indices involved and their roles.
	Highlight Highlight
}

func indices(idx []int) []int {
	out := make([]int, len(idx))
	copy(out, idx)
	return out
}

func contains(set []int, i int) bool {
	for _, v := range set {
		if v == i {
			return true
		}
	}
	return false
}
