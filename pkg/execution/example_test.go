package execution_test

import (
	"context"
	"fmt"

	"github.com/dshills/sortviz/pkg/execution"
)

func ExampleStepFilter_Apply() {
	engine := execution.NewEngine()
	res, err := engine.Execute(context.Background(), execution.Request{
		Algorithm: "quick_sort",
		Values:    []int{5, 2, 9, 1, 5},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	filter, err := execution.NewStepFilter(`explanation contains "Choosing pivot"`)
	if err != nil {
		fmt.Println(err)
		return
	}

	indices, err := filter.Apply(res.Trace)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("matched %v of %d steps\n", indices, res.Trace.Len())
	// Output:
	// matched [1 8 12] of 16 steps
}
