package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/sortviz/pkg/domain/types"
	operr "github.com/dshills/sortviz/pkg/errors"
	"github.com/dshills/sortviz/pkg/execution"
	"github.com/dshills/sortviz/pkg/export"
	"github.com/dshills/sortviz/pkg/render"
	"github.com/spf13/cobra"
)

// SortFlags holds the flags for the sort command
type SortFlags struct {
	Generate   int
	Mode       string
	Format     string
	Where      string
	NoColor    bool
	NoLogic    bool
	OutputPath string
}

// NewSortCommand creates the sort command
func NewSortCommand() *cobra.Command {
	flags := &SortFlags{}

	cmd := &cobra.Command{
		Use:   "sort <algorithm> [values...]",
		Short: "Run a sorting algorithm and print its step trace",
		Long: `Run an instrumented sorting algorithm and print every recorded step.

Values may be given as separate arguments or comma-separated. With no values
(or with --generate) an input array is generated.

Step filter (--where) is an expression evaluated per step with:
  index, explanation, logic, snapshot, comparing, swapping, sorted, pivot

Examples:
  # Sort explicit values
  sortviz sort quick_sort 5 2 9 1 5

  # Worst case bubble sort on 8 generated values
  sortviz sort bubble_sort --generate 8 --mode reverse_sorted

  # Only the steps that swap something
  sortviz sort selection_sort 4,3,2,1 --where 'len(swapping) > 0'

  # Export the full trace
  sortviz sort merge_sort 4 3 2 1 --format yaml -o trace.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args[0], args[1:], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.Generate, "generate", "g", -1, "Generate N input values instead of reading them from arguments")
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "Shape of generated input: sorted, reverse_sorted or random")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "text", "Output format: text, json, yaml or msgpack")
	cmd.Flags().StringVarP(&flags.Where, "where", "w", "", "Only output steps matching this expression")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&flags.NoLogic, "no-logic", false, "Omit the logic explanation of each step (text format)")
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

// runSort handles the sort command
func runSort(cmd *cobra.Command, algorithm string, args []string, flags *SortFlags) error {
	tag := types.AlgorithmTag(algorithm)

	values, err := resolveValues(args, inputOptions{generate: flags.Generate, mode: flags.Mode})
	if err != nil {
		return err
	}

	var filter *execution.StepFilter
	if flags.Where != "" {
		filter, err = execution.NewStepFilter(flags.Where)
		if err != nil {
			return err
		}
	}

	engine, cleanup := newEngine()
	defer cleanup()

	result, err := engine.Execute(cmd.Context(), execution.Request{Algorithm: algorithm, Values: values})
	if err != nil {
		logRunFailure(err)
		return operr.NewOperationalError("sort", tag, "", err)
	}
	runID := result.Execution.ID

	var indices []int
	if filter != nil {
		indices, err = filter.Apply(result.Trace)
		if err != nil {
			return operr.NewOperationalError("filter steps", tag, runID, err)
		}
	}

	out := cmd.OutOrStdout()
	if flags.OutputPath != "" {
		f, err := os.Create(flags.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if flags.Format == "text" {
		return printSortText(out, result, indices, filter != nil, flags)
	}

	format, err := export.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	payload := export.NewPayload(result.Trace, runID)
	if filter != nil {
		payload = payload.Select(indices)
	}
	if err := export.EncodePayload(out, payload, format); err != nil {
		return operr.NewOperationalError("export trace", tag, runID, err)
	}
	return nil
}

// printSortText prints the trace as colored text followed by a summary
func printSortText(w io.Writer, result *execution.Result, indices []int, filtered bool, flags *SortFlags) error {
	printer := render.NewPrinter(w,
		render.WithColor(!flags.NoColor && flags.OutputPath == ""),
		render.WithLogic(!flags.NoLogic))

	if err := printer.PrintLegend(); err != nil {
		return err
	}
	if filtered && len(indices) == 0 {
		_, _ = fmt.Fprintln(w, "No steps matched the filter.")
	} else if err := printer.PrintTrace(result.Trace, indices); err != nil {
		return err
	}

	exec := result.Execution
	_, _ = fmt.Fprintf(w, "\n%s: %d values, %d steps (run %s)\n",
		exec.Algorithm, exec.InputSize, exec.StepCount, exec.ID)
	_, _ = fmt.Fprintf(w, "Result: %s\n", joinInts(result.Trace.Result(), " "))
	return nil
}
