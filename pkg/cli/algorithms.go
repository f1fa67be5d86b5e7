package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAlgorithmsCommand creates the algorithms command
func NewAlgorithmsCommand() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the available sorting algorithms",
		Long: `List every algorithm the trace engine supports, with its selector tag,
best- and worst-case complexity and a short description.

Examples:
  # Show the catalog as a table
  sortviz algorithms

  # Machine-readable output
  sortviz algorithms --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := sorting.Catalog()
			if outputJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(catalog)
			}
			printAlgorithmsTable(cmd.OutOrStdout(), catalog)
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output the catalog as JSON")

	return cmd
}

// printAlgorithmsTable renders the catalog as a table
func printAlgorithmsTable(w io.Writer, catalog []sorting.Descriptor) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tag", "Name", "Best Case", "Worst Case"})
	table.SetAutoWrapText(false)
	for _, d := range catalog {
		table.Append([]string{string(d.Tag), d.Name, d.BestCase, d.WorstCase})
	}
	table.Render()

	_, _ = fmt.Fprintln(w)
	for _, d := range catalog {
		_, _ = fmt.Fprintf(w, "%-15s %s\n", d.Tag, d.Description)
	}
}
