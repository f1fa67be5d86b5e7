package cli

import (
	"fmt"
	"log"

	"github.com/dshills/sortviz/pkg/execution"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/dshills/sortviz/pkg/storage"
	"github.com/dshills/sortviz/pkg/validation"
)

// newEngine builds a run engine from the loaded settings. History is
// best-effort: if the database cannot be opened the engine runs without it.
// The returned cleanup func must always be called.
func newEngine(extra ...execution.Option) (*execution.Engine, func()) {
	s := settings()
	opts := []execution.Option{execution.WithMaxArraySize(s.MaxArraySize)}
	cleanup := func() {}

	if s.History.Enabled {
		repo, err := storage.NewSQLiteExecutionRepository(s.History.Path)
		if err != nil {
			log.Printf("Warning: run history disabled: %v", err)
		} else {
			opts = append(opts, execution.WithRepository(repo))
			cleanup = func() { _ = repo.Close() }
		}
	}

	opts = append(opts, extra...)
	return execution.NewEngine(opts...), cleanup
}

// logRunEvents writes every event from events to the debug log until the
// channel closes.
func logRunEvents(events <-chan execution.RunEvent) {
	for ev := range events {
		if ev.Error != nil {
			log.Printf("%s %s (%s, %d values): %v", ev.Type, ev.RunID, ev.Algorithm, ev.InputSize, ev.Error)
			continue
		}
		log.Printf("%s %s (%s, %d values, %d steps)", ev.Type, ev.RunID, ev.Algorithm, ev.InputSize, ev.StepCount)
	}
}

// openHistory opens the run-history repository for the history commands and
// returns a Logger reading from it. The cleanup func closes the repository.
func openHistory() (*execution.Logger, func(), error) {
	s := settings()
	if !s.History.Enabled {
		return nil, nil, fmt.Errorf("run history is disabled (set history.enabled in %s/config.yaml)", GetConfigDir())
	}
	repo, err := storage.NewSQLiteExecutionRepository(s.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return execution.NewLogger(repo), func() { _ = repo.Close() }, nil
}

// logRunFailure writes the classified error chain of a failed run to the
// debug log.
func logRunFailure(err error) {
	log.Printf("Run failed: %s", execution.FormatErrorChain(err))
}

// inputOptions selects where the values to sort come from.
type inputOptions struct {
	generate int // generate this many values; <0 means unset
	mode     string
}

// resolveValues returns the values given on the command line, or a generated
// array when --generate is set or no values were given.
func resolveValues(args []string, opts inputOptions) ([]int, error) {
	if opts.generate < 0 && len(args) > 0 {
		values, err := validation.CoerceStrings(args)
		if err != nil {
			return nil, fmt.Errorf("failed to parse values: %w", err)
		}
		return values, nil
	}
	if opts.generate >= 0 && len(args) > 0 {
		return nil, fmt.Errorf("cannot combine --generate with explicit values")
	}

	size := opts.generate
	if size < 0 {
		size = settings().DefaultSize
	}
	return generateValues(size, opts.mode)
}

// generateValues produces size values shaped by mode, falling back to the
// configured default mode when mode is empty.
func generateValues(size int, mode string) ([]int, error) {
	if mode == "" {
		mode = settings().DefaultMode
	}
	m, ok := sorting.ParseMode(mode)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q (valid: sorted, reverse_sorted, random)", mode)
	}
	return sorting.NewGenerator(nil).Generate(size, m)
}
