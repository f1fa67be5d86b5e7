package sorting

import (
	"fmt"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
)

const ascendingLogic = "Array is now sorted in ascending order."

// Bubble runs an instrumented bubble sort with the early-exit optimization:
// a pass without any exchange ends the sort.
func Bubble(values []int) *trace.Trace {
	rec := trace.NewRecorder(types.BubbleSort, values)
	arr := rec.Array()
	n := len(arr)

	rec.Record("Starting Bubble Sort Algorithm",
		"Bubble sort works by repeatedly comparing adjacent elements and swapping them if they are in the wrong order. Each pass through the list places the next largest value in its proper place.",
		trace.NewHighlight())

	if n <= 1 {
		return complete(rec, ascendingLogic)
	}

	for i := 0; i < n; i++ {
		swapped := false
		// The tail is marked sorted provisionally, even if early exit fires later.
		tail := trace.Range(n-i, n)

		rec.Record(fmt.Sprintf("🔄 Starting Pass %d", i+1),
			fmt.Sprintf("Pass %d: Compare adjacent elements. Largest element will bubble to position %d.", i+1, n-i-1),
			trace.NewHighlight().WithSorted(tail...))

		for j := 0; j < n-i-1; j++ {
			rec.Record(fmt.Sprintf("🔍 Comparing: %d and %d", arr[j], arr[j+1]),
				fmt.Sprintf("Check if %d > %d. If yes, swap to maintain order.", arr[j], arr[j+1]),
				trace.NewHighlight().WithComparing(j, j+1).WithSorted(tail...))

			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
				rec.Record(fmt.Sprintf("🔄 Swapped %d and %d", arr[j], arr[j+1]),
					fmt.Sprintf("Swapped because %d was greater than %d.", arr[j+1], arr[j]),
					trace.NewHighlight().WithSwapping(j, j+1).WithSorted(tail...))
			}
		}

		if !swapped {
			break
		}
	}

	return complete(rec, ascendingLogic)
}

// Selection runs an instrumented selection sort.
func Selection(values []int) *trace.Trace {
	rec := trace.NewRecorder(types.SelectionSort, values)
	arr := rec.Array()
	n := len(arr)

	rec.Record("Starting Selection Sort Algorithm",
		"Selection sort divides the array into sorted and unsorted parts. It repeatedly finds the minimum element from unsorted part and puts it at the beginning.",
		trace.NewHighlight())

	if n <= 1 {
		return complete(rec, ascendingLogic)
	}

	for i := 0; i < n; i++ {
		minIdx := i
		prefix := trace.Range(0, i)

		rec.Record(fmt.Sprintf("🔍 Finding min in positions %d to %d", i, n-1),
			fmt.Sprintf("Find smallest element in unsorted portion starting from index %d.", i),
			trace.NewHighlight().WithComparing(i).WithSorted(prefix...))

		for j := i + 1; j < n; j++ {
			rec.Record(fmt.Sprintf("📊 Comparing: %d vs current min %d", arr[j], arr[minIdx]),
				fmt.Sprintf("Check if %d < %d to find new minimum.", arr[j], arr[minIdx]),
				trace.NewHighlight().WithComparing(minIdx, j).WithSorted(prefix...))

			if arr[j] < arr[minIdx] {
				minIdx = j
			}
		}

		if minIdx != i {
			arr[i], arr[minIdx] = arr[minIdx], arr[i]
			rec.Record(fmt.Sprintf("🔄 Moved min %d to position %d", arr[i], i),
				"Placed minimum element at its correct sorted position.",
				trace.NewHighlight().WithSwapping(i, minIdx).WithSorted(trace.Range(0, i+1)...))
		}
	}

	return complete(rec, ascendingLogic)
}

// Insertion runs an instrumented insertion sort. Shifts are reported as
// comparisons on the vacated slot, not as swaps.
func Insertion(values []int) *trace.Trace {
	rec := trace.NewRecorder(types.InsertionSort, values)
	arr := rec.Array()
	n := len(arr)

	// A single element is trivially sorted.
	rec.Record("Starting Insertion Sort Algorithm",
		"Insertion sort builds the final sorted array one item at a time by inserting each element into its proper position.",
		trace.NewHighlight().WithSorted(trace.Range(0, min(n, 1))...))

	for i := 1; i < n; i++ {
		key := arr[i]
		j := i - 1
		prefix := trace.Range(0, i)

		rec.Record(fmt.Sprintf("🔍 Inserting %d into sorted portion", key),
			fmt.Sprintf("Insert element %d into already sorted part (0 to %d).", key, i-1),
			trace.NewHighlight().WithComparing(i).WithSorted(prefix...))

		for j >= 0 && key < arr[j] {
			arr[j+1] = arr[j]
			j--
			rec.Record(fmt.Sprintf("➡️ Shifting elements for %d", key),
				fmt.Sprintf("Shift elements right to make space for %d.", key),
				trace.NewHighlight().WithComparing(j+1).WithSorted(prefix...))
		}

		arr[j+1] = key
		rec.Record(fmt.Sprintf("✅ %d inserted at position %d", key, j+1),
			"Element placed in correct sorted position.",
			trace.NewHighlight().WithSorted(trace.Range(0, i+1)...))
	}

	return complete(rec, ascendingLogic)
}
