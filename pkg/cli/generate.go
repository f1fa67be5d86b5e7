package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		size       int
		mode       string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an input array",
		Long: `Generate an array to feed into a sort.

Modes:
  sorted          5, 8, 11, ... (best case for bubble and insertion sort)
  reverse_sorted  the sorted sequence, descending (worst case)
  random          uniform integers between 5 and 30

Examples:
  # Ten random values (configured default)
  sortviz generate

  # Worst case input of 8 values
  sortviz generate --size 8 --mode reverse_sorted

  # Pipe into sort
  sortviz sort quick_sort $(sortviz generate --size 6)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settings()
			if !cmd.Flags().Changed("size") {
				size = s.DefaultSize
			}
			if size < 0 {
				return fmt.Errorf("size cannot be negative: %d", size)
			}
			if size > s.MaxArraySize {
				return fmt.Errorf("size %d exceeds max_array_size %d", size, s.MaxArraySize)
			}

			values, err := generateValues(size, mode)
			if err != nil {
				return err
			}

			if outputJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string][]int{"array": values})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), joinInts(values, " "))
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 0, "Number of values (default: default_size from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Array shape: sorted, reverse_sorted or random (default: default_mode from config)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, `Output as {"array": [...]}`)

	return cmd
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
