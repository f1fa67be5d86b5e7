package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/sortviz/pkg/execution"
	"github.com/dshills/sortviz/pkg/server"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualizer and JSON API over HTTP",
		Long: `Start the HTTP server.

Routes:
  GET  /                HTML visualizer
  GET  /algorithms      algorithm catalog
  POST /generate_array  {"size": 10, "type": "random"}
  POST /sort            {"algorithm": "quick_sort", "array": [5, 2, 9]}

Examples:
  sortviz serve
  sortviz serve --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settings()
			if !cmd.Flags().Changed("addr") {
				addr = s.Server.Addr
			}

			monitor := execution.NewMonitor()
			defer monitor.Close()
			go logRunEvents(monitor.Subscribe())

			engine, cleanup := newEngine(execution.WithMonitor(monitor))
			defer cleanup()

			cfg := server.DefaultConfig()
			cfg.DefaultSize = s.DefaultSize

			srv, err := server.New(engine, sorting.NewGenerator(nil), cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving on %s (Ctrl+C to stop)\n", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")

	return cmd
}
