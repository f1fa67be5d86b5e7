package sorting

import (
	"fmt"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
)

// Merge runs an instrumented top-down merge sort. Ties favor the left half,
// so the sort is stable.
func Merge(values []int) *trace.Trace {
	rec := trace.NewRecorder(types.MergeSort, values)

	rec.Record("Starting Merge Sort Algorithm",
		"Merge sort uses divide and conquer approach. It divides the array into halves, sorts them, and merges the sorted halves.",
		trace.NewHighlight())

	m := merger{rec: rec, arr: rec.Array()}
	m.sort(0, len(m.arr)-1)

	return complete(rec, "Array is now sorted using merge sort.")
}

type merger struct {
	rec *trace.Recorder
	arr []int
}

func (m merger) sort(low, high int) {
	if low >= high {
		return
	}
	mid := (low + high) / 2

	m.rec.Record(fmt.Sprintf("📊 Dividing: indices %d to %d", low, high),
		fmt.Sprintf("Split array from index %d to %d at mid-point %d.", low, high, mid),
		trace.NewHighlight().WithComparing(trace.Range(low, high+1)...))

	m.sort(low, mid)
	m.sort(mid+1, high)
	m.merge(low, mid, high)
}

// merge combines arr[low..mid] and arr[mid+1..high]. Each comparison step
// highlights the destination index k, where the chosen element lands.
func (m merger) merge(low, mid, high int) {
	left := append([]int(nil), m.arr[low:mid+1]...)
	right := append([]int(nil), m.arr[mid+1:high+1]...)

	i, j, k := 0, 0, low
	for i < len(left) && j < len(right) {
		m.rec.Record(fmt.Sprintf("🔀 Merging: comparing %d and %d", left[i], right[j]),
			"Compare elements from left and right halves during merge.",
			trace.NewHighlight().WithComparing(k))

		if left[i] <= right[j] {
			m.arr[k] = left[i]
			i++
		} else {
			m.arr[k] = right[j]
			j++
		}
		k++
	}

	for ; i < len(left); i++ {
		m.arr[k] = left[i]
		k++
	}
	for ; j < len(right); j++ {
		m.arr[k] = right[j]
		k++
	}
}

// Quick runs an instrumented quick sort using the Lomuto partition scheme
// with the last element of each range as pivot.
func Quick(values []int) *trace.Trace {
	rec := trace.NewRecorder(types.QuickSort, values)

	rec.Record("Starting Quick Sort Algorithm",
		"Quick sort picks a pivot element and partitions the array around the pivot. Elements smaller than pivot go left, larger go right.",
		trace.NewHighlight())

	q := quicksorter{rec: rec, arr: rec.Array()}
	q.sort(0, len(q.arr)-1)

	return complete(rec, "Array is now sorted using quick sort.")
}

type quicksorter struct {
	rec *trace.Recorder
	arr []int
}

func (q quicksorter) sort(low, high int) {
	if low >= high {
		return
	}
	pi := q.partition(low, high)

	q.rec.Record(fmt.Sprintf("🎯 Partitioned around pivot at index %d", pi),
		fmt.Sprintf("Pivot %d is now in correct position. Recursively sort left and right partitions.", q.arr[pi]),
		trace.NewHighlight().WithSorted(pi).WithPivot(pi))

	q.sort(low, pi-1)
	q.sort(pi+1, high)
}

// partition places arr[high] at its final index and returns that index.
// Self-exchanges and the final pivot placement are not recorded.
func (q quicksorter) partition(low, high int) int {
	arr := q.arr
	pivot := arr[high]
	i := low - 1

	q.rec.Record(fmt.Sprintf("📌 Choosing pivot: %d at index %d", pivot, high),
		fmt.Sprintf("Partition array around pivot %d. Elements < pivot go left, > pivot go right.", pivot),
		trace.NewHighlight().WithPivot(high))

	for j := low; j < high; j++ {
		q.rec.Record(fmt.Sprintf("🔍 Comparing %d with pivot %d", arr[j], pivot),
			fmt.Sprintf("Check if %d <= pivot to decide placement.", arr[j]),
			trace.NewHighlight().WithComparing(j, high).WithPivot(high))

		if arr[j] <= pivot {
			i++
			if i != j {
				arr[i], arr[j] = arr[j], arr[i]
				q.rec.Record(fmt.Sprintf("🔄 Swapped %d and %d", arr[i], arr[j]),
					"Swapped to maintain partition order.",
					trace.NewHighlight().WithSwapping(i, j).WithPivot(high))
			}
		}
	}

	arr[i+1], arr[high] = arr[high], arr[i+1]
	return i + 1
}
