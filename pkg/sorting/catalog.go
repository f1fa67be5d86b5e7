// Package sorting implements the trace engine: five instrumented sorting
// algorithms that share one step-recording contract.
//
// Every run owns a fresh working copy of its input and a fresh trace.Recorder,
// so concurrent runs never share state.
package sorting

import (
	"errors"
	"fmt"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
)

// ErrUnknownAlgorithm is returned when a selector matches no registered algorithm.
var ErrUnknownAlgorithm = errors.New("algorithm not found")

// Algorithm runs one instrumented sort over values and returns its trace.
// Implementations must not mutate values.
type Algorithm func(values []int) *trace.Trace

// Descriptor is the static, read-only metadata of an algorithm.
type Descriptor struct {
	Tag         types.AlgorithmTag `json:"tag" yaml:"tag"`
	Name        string             `json:"name" yaml:"name"`
	BestCase    string             `json:"best_case" yaml:"best_case"`
	WorstCase   string             `json:"worst_case" yaml:"worst_case"`
	Description string             `json:"description" yaml:"description"`

	run Algorithm
}

var catalog = []Descriptor{
	{
		Tag:         types.BubbleSort,
		Name:        "Bubble Sort",
		BestCase:    "O(n) - When array is already sorted",
		WorstCase:   "O(n²) - When array is reverse sorted",
		Description: "Repeatedly compares adjacent elements and swaps them if they are in wrong order.",
		run:         Bubble,
	},
	{
		Tag:         types.SelectionSort,
		Name:        "Selection Sort",
		BestCase:    "O(n²)",
		WorstCase:   "O(n²)",
		Description: "Finds minimum element and places it at the beginning repeatedly.",
		run:         Selection,
	},
	{
		Tag:         types.InsertionSort,
		Name:        "Insertion Sort",
		BestCase:    "O(n) - When array is already sorted",
		WorstCase:   "O(n²) - When array is reverse sorted",
		Description: "Builds sorted array one item at a time by inserting elements in correct position.",
		run:         Insertion,
	},
	{
		Tag:         types.MergeSort,
		Name:        "Merge Sort",
		BestCase:    "O(n log n)",
		WorstCase:   "O(n log n)",
		Description: "Divides array into halves, sorts them, and merges the sorted halves.",
		run:         Merge,
	},
	{
		Tag:         types.QuickSort,
		Name:        "Quick Sort",
		BestCase:    "O(n log n)",
		WorstCase:   "O(n²) - When pivot is always smallest/largest",
		Description: "Picks pivot element and partitions array around the pivot.",
		run:         Quick,
	},
}

// Catalog returns the descriptors of all algorithms in display order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Tags returns the recognized algorithm selectors in display order.
func Tags() []types.AlgorithmTag {
	tags := make([]types.AlgorithmTag, len(catalog))
	for i, d := range catalog {
		tags[i] = d.Tag
	}
	return tags
}

// Lookup returns the descriptor registered for tag.
func Lookup(tag string) (Descriptor, error) {
	for _, d := range catalog {
		if string(d.Tag) == tag {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, tag)
}

// Run executes the algorithm selected by tag over values.
// An unknown tag yields ErrUnknownAlgorithm and no trace.
func Run(tag string, values []int) (*trace.Trace, error) {
	d, err := Lookup(tag)
	if err != nil {
		return nil, err
	}
	return d.run(values), nil
}

// Run executes the described algorithm over values.
func (d Descriptor) Run(values []int) *trace.Trace {
	return d.run(values)
}

// complete records the completion step shared by every algorithm.
func complete(rec *trace.Recorder, logic string) *trace.Trace {
	n := len(rec.Array())
	rec.Record("🎉 Sorting Completed!", logic, trace.NewHighlight().WithSorted(trace.Range(0, n)...))
	return rec.Trace()
}
