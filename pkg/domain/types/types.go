// Package types defines core domain type aliases and identifiers for SortViz.
package types

import "github.com/google/uuid"

// AlgorithmTag is the wire selector for a sorting algorithm (e.g. "quick_sort").
type AlgorithmTag string

const (
	// BubbleSort selects the instrumented bubble sort.
	BubbleSort AlgorithmTag = "bubble_sort"
	// SelectionSort selects the instrumented selection sort.
	SelectionSort AlgorithmTag = "selection_sort"
	// InsertionSort selects the instrumented insertion sort.
	InsertionSort AlgorithmTag = "insertion_sort"
	// MergeSort selects the instrumented merge sort.
	MergeSort AlgorithmTag = "merge_sort"
	// QuickSort selects the instrumented quick sort.
	QuickSort AlgorithmTag = "quick_sort"
)

// String returns the string representation of an AlgorithmTag.
func (t AlgorithmTag) String() string {
	return string(t)
}

// RunID is a unique identifier for one trace-engine invocation.
type RunID string

// NewRunID generates a new unique run ID.
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

// String returns the string representation of a RunID.
func (id RunID) String() string {
	return string(id)
}

// IsZero returns true if the RunID is the zero value.
func (id RunID) IsZero() bool {
	return id == ""
}
