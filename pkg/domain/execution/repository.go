package execution

import (
	"time"

	"github.com/dshills/sortviz/pkg/domain/types"
)

// ExecutionRepository defines the interface for persisting and retrieving run metadata.
// Implementations will typically use SQLite for storage.
type ExecutionRepository interface {
	// Save persists a run. Updates the run if it already exists.
	Save(execution *Execution) error

	// Load retrieves a run by its ID.
	// Returns an error if the run is not found.
	Load(id types.RunID) (*Execution, error)

	// List returns runs matching filter, most recent first.
	List(filter ListFilter) ([]*Execution, error)

	// Delete removes a run from storage.
	Delete(id types.RunID) error
}

// ListFilter narrows a List query. Zero values mean "no constraint".
type ListFilter struct {
	Algorithm    types.AlgorithmTag
	Status       Status
	StartedAfter time.Time // keep runs started at or after this time
	Limit        int
	Offset       int
}
