package cli

import (
	"fmt"
	"time"

	"github.com/dshills/sortviz/pkg/domain/types"
	operr "github.com/dshills/sortviz/pkg/errors"
	"github.com/dshills/sortviz/pkg/execution"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/dshills/sortviz/pkg/tui"
	"github.com/spf13/cobra"
)

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	var (
		generate int
		mode     string
		autoplay bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "replay <algorithm> [values...]",
		Short: "Replay a sorting trace interactively in the terminal",
		Long: `Run an algorithm and step through its trace in a full-screen terminal view.

Keys:
  ←/→ or h/l   previous/next step
  space        play/pause
  +/-          faster/slower
  g/G          first/last step
  q            quit

Examples:
  sortviz replay quick_sort 5 2 9 1 5
  sortviz replay insertion_sort --generate 12 --autoplay`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm := args[0]
			tag := types.AlgorithmTag(algorithm)

			descriptor, err := sorting.Lookup(algorithm)
			if err != nil {
				return err
			}

			values, err := resolveValues(args[1:], inputOptions{generate: generate, mode: mode})
			if err != nil {
				return err
			}

			engine, cleanup := newEngine()
			defer cleanup()

			result, err := engine.Execute(cmd.Context(), execution.Request{Algorithm: algorithm, Values: values})
			if err != nil {
				logRunFailure(err)
				return operr.NewOperationalError("replay", tag, "", err)
			}

			app, err := tui.NewApp(descriptor.Name, result.Trace,
				tui.WithAutoplay(autoplay),
				tui.WithInterval(interval))
			if err != nil {
				return fmt.Errorf("failed to start replay: %w", err)
			}
			defer func() { _ = app.Close() }()

			return app.Run()
		},
	}

	cmd.Flags().IntVarP(&generate, "generate", "g", -1, "Generate N input values instead of reading them from arguments")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Shape of generated input: sorted, reverse_sorted or random")
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "Start playing immediately")
	cmd.Flags().DurationVar(&interval, "interval", tui.DefaultInterval, "Delay between steps while playing")

	return cmd
}
