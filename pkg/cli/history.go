package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// HistoryListFlags holds the flags for the history command
type HistoryListFlags struct {
	Limit     int
	Offset    int
	Algorithm string
	Status    string
	Since     string
	NoColor   bool
}

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	flags := &HistoryListFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Long: `List recorded runs, most recent first.

Only run metadata is stored (algorithm, input size, step count, status,
timing); traces themselves are never persisted.

Examples:
  sortviz history
  sortviz history --algorithm quick_sort --limit 5
  sortviz history --status failed --since 24h
  sortviz history show <run-id>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Maximum number of runs to display")
	cmd.Flags().IntVar(&flags.Offset, "offset", 0, "Number of runs to skip")
	cmd.Flags().StringVarP(&flags.Algorithm, "algorithm", "a", "", "Filter by algorithm tag")
	cmd.Flags().StringVar(&flags.Status, "status", "", "Filter by status (pending, running, completed, failed)")
	cmd.Flags().StringVar(&flags.Since, "since", "", "Filter by date (e.g., 7d, 24h, 2025-01-05)")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryDeleteCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Display one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, cleanup, err := openHistory()
			if err != nil {
				return err
			}
			defer cleanup()

			exec, err := history.GetExecution(types.RunID(args[0]))
			if err != nil {
				return fmt.Errorf("failed to load run: %w", err)
			}

			if outputJSON {
				return printRunJSON(cmd.OutOrStdout(), exec)
			}
			printRunDetail(cmd.OutOrStdout(), exec)
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output run details as JSON")

	return cmd
}

func newHistoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Remove a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, cleanup, err := openHistory()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := history.DeleteExecution(types.RunID(args[0])); err != nil {
				return fmt.Errorf("failed to delete run: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted run %s\n", args[0])
			return nil
		},
	}
}

// runHistoryList handles the history list command
func runHistoryList(cmd *cobra.Command, flags *HistoryListFlags) error {
	filter, err := buildListFilter(flags)
	if err != nil {
		return err
	}

	history, cleanup, err := openHistory()
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := history.ListExecutions(filter)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
		return nil
	}

	printHistoryTable(cmd.OutOrStdout(), runs, !flags.NoColor)
	return nil
}

// buildListFilter validates the list flags
func buildListFilter(flags *HistoryListFlags) (execution.ListFilter, error) {
	if flags.Limit < 0 || flags.Offset < 0 {
		return execution.ListFilter{}, fmt.Errorf("--limit and --offset cannot be negative")
	}

	filter := execution.ListFilter{
		Algorithm: types.AlgorithmTag(flags.Algorithm),
		Limit:     flags.Limit,
		Offset:    flags.Offset,
	}

	if flags.Status != "" {
		status := execution.Status(flags.Status)
		switch status {
		case execution.StatusPending, execution.StatusRunning, execution.StatusCompleted, execution.StatusFailed:
		default:
			return filter, fmt.Errorf("invalid status: %s (valid: pending, running, completed, failed)", flags.Status)
		}
		filter.Status = status
	}

	if flags.Since != "" {
		since, err := parseSinceFlag(flags.Since)
		if err != nil {
			return filter, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.StartedAfter = since
	}

	return filter, nil
}

// printHistoryTable displays runs in a table
func printHistoryTable(w io.Writer, runs []*execution.Execution, useColor bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Algorithm", "Size", "Steps", "Status", "Duration", "Started"})
	table.SetAutoWrapText(false)

	for _, exec := range runs {
		table.Append([]string{
			exec.ID.String(),
			string(exec.Algorithm),
			strconv.Itoa(exec.InputSize),
			strconv.Itoa(exec.StepCount),
			colorizeStatus(exec.Status, useColor),
			formatDuration(exec),
			exec.StartedAt.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// printRunDetail displays detailed run information
func printRunDetail(w io.Writer, exec *execution.Execution) {
	_, _ = fmt.Fprintf(w, "Run: %s\n", exec.ID)
	_, _ = fmt.Fprintf(w, "Algorithm: %s\n", exec.Algorithm)
	_, _ = fmt.Fprintf(w, "Input size: %d\n", exec.InputSize)
	_, _ = fmt.Fprintf(w, "Steps: %d\n", exec.StepCount)
	_, _ = fmt.Fprintf(w, "Status: %s\n", exec.Status)
	_, _ = fmt.Fprintf(w, "Started: %s\n", exec.StartedAt.Format("2006-01-02 15:04:05"))
	if exec.Status.IsTerminal() {
		_, _ = fmt.Fprintf(w, "Completed: %s\n", exec.CompletedAt.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Duration: %s\n", formatDurationValue(exec.Duration()))
	}

	if exec.Error != nil {
		_, _ = fmt.Fprintln(w, "\nError:")
		_, _ = fmt.Fprintf(w, "  Type: %s\n", exec.Error.Type)
		_, _ = fmt.Fprintf(w, "  Message: %s\n", exec.Error.Message)
		for k, v := range exec.Error.Context {
			_, _ = fmt.Fprintf(w, "  %s: %v\n", k, v)
		}
	}
}

// printRunJSON outputs a run as JSON
func printRunJSON(w io.Writer, exec *execution.Execution) error {
	output := map[string]interface{}{
		"id":           exec.ID,
		"algorithm":    exec.Algorithm,
		"input_size":   exec.InputSize,
		"step_count":   exec.StepCount,
		"status":       exec.Status,
		"started_at":   exec.StartedAt,
		"completed_at": exec.CompletedAt,
		"duration_ms":  exec.Duration().Milliseconds(),
	}

	if exec.Error != nil {
		output["error"] = map[string]interface{}{
			"type":    exec.Error.Type,
			"message": exec.Error.Message,
			"context": exec.Error.Context,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// Helper functions

// parseSinceFlag parses the --since flag into a time.Time
// Supports formats: "7d" (7 days), "24h" (24 hours), "2025-01-05" (date)
func parseSinceFlag(since string) (time.Time, error) {
	now := time.Now()

	// Try parsing as duration (e.g., "7d", "24h")
	if strings.HasSuffix(since, "d") {
		if d, err := strconv.Atoi(strings.TrimSuffix(since, "d")); err == nil {
			return now.AddDate(0, 0, -d), nil
		}
	}
	if strings.HasSuffix(since, "h") {
		if h, err := strconv.Atoi(strings.TrimSuffix(since, "h")); err == nil {
			return now.Add(-time.Duration(h) * time.Hour), nil
		}
	}

	// Try parsing as date (e.g., "2025-01-05")
	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, since, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format (use: 7d, 24h, or 2025-01-05)")
}

// colorizeStatus returns a colored status string
func colorizeStatus(status execution.Status, enabled bool) string {
	var c *color.Color
	switch status {
	case execution.StatusCompleted:
		c = color.New(color.FgGreen)
	case execution.StatusFailed:
		c = color.New(color.FgRed)
	case execution.StatusRunning:
		c = color.New(color.FgYellow)
	case execution.StatusPending:
		c = color.New(color.FgHiBlack)
	default:
		return string(status)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(string(status))
}

// formatDuration returns formatted duration for a run
func formatDuration(exec *execution.Execution) string {
	if !exec.Status.IsTerminal() {
		return "-"
	}
	return formatDurationValue(exec.Duration())
}

// formatDurationValue formats a duration value
func formatDurationValue(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
