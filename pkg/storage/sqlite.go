// Package storage provides persistent run history for SortViz.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/types"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteExecutionRepository implements execution.ExecutionRepository using SQLite storage.
type SQLiteExecutionRepository struct {
	db *sql.DB
}

var _ execution.ExecutionRepository = (*SQLiteExecutionRepository)(nil)

// NewSQLiteExecutionRepository opens (or creates) the run history database at dbPath.
func NewSQLiteExecutionRepository(dbPath string) (*SQLiteExecutionRepository, error) {
	// Create directory if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database connection
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Initialize database schema
	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteExecutionRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteExecutionRepository) Close() error {
	return r.db.Close()
}

// Save persists a run to the database.
// Updates the run if it already exists (based on ID).
func (r *SQLiteExecutionRepository) Save(exec *execution.Execution) error {
	if exec == nil {
		return fmt.Errorf("cannot save nil execution")
	}

	var errorType, errorMessage, errorContext sql.NullString
	if exec.Error != nil {
		errorType.Valid = true
		errorType.String = string(exec.Error.Type)
		errorMessage.Valid = true
		errorMessage.String = exec.Error.Message
		if len(exec.Error.Context) > 0 {
			ctxData, err := json.Marshal(exec.Error.Context)
			if err == nil {
				errorContext.Valid = true
				errorContext.String = string(ctxData)
			}
		}
	}

	var completedAt sql.NullTime
	if !exec.CompletedAt.IsZero() {
		completedAt.Valid = true
		completedAt.Time = exec.CompletedAt
	}

	query := `
		INSERT INTO runs (
			id, algorithm, input_size, step_count, status, started_at, completed_at,
			error_type, error_message, error_context
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			step_count = excluded.step_count,
			started_at = excluded.started_at,
			status = excluded.status,
			completed_at = excluded.completed_at,
			error_type = excluded.error_type,
			error_message = excluded.error_message,
			error_context = excluded.error_context
	`

	_, err := r.db.Exec(query,
		exec.ID.String(),
		string(exec.Algorithm),
		exec.InputSize,
		exec.StepCount,
		string(exec.Status),
		exec.StartedAt,
		completedAt,
		errorType,
		errorMessage,
		errorContext,
	)
	if err != nil {
		return fmt.Errorf("failed to save execution: %w", err)
	}

	return nil
}

const selectRuns = `
	SELECT id, algorithm, input_size, step_count, status, started_at, completed_at,
	       error_type, error_message, error_context
	FROM runs
`

// Load retrieves a run by its ID.
func (r *SQLiteExecutionRepository) Load(id types.RunID) (*execution.Execution, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	execs, err := r.queryExecutions(selectRuns+" WHERE id = ?", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load execution: %w", err)
	}
	if len(execs) == 0 {
		return nil, fmt.Errorf("execution not found: %s", id)
	}

	return execs[0], nil
}

// List returns runs matching filter, most recent first.
func (r *SQLiteExecutionRepository) List(filter execution.ListFilter) ([]*execution.Execution, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("limit and offset must be non-negative")
	}

	var conditions []string
	var args []interface{}

	if filter.Algorithm != "" {
		conditions = append(conditions, "algorithm = ?")
		args = append(args, string(filter.Algorithm))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if !filter.StartedAfter.IsZero() {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, filter.StartedAfter)
	}

	query := selectRuns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY started_at DESC"

	// SQLite requires a LIMIT when OFFSET is used; -1 means unbounded.
	limit := filter.Limit
	if limit == 0 {
		limit = -1
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	return r.queryExecutions(query, args...)
}

// Delete removes a run from storage.
func (r *SQLiteExecutionRepository) Delete(id types.RunID) error {
	res, err := r.db.Exec("DELETE FROM runs WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete execution: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("execution not found: %s", id)
	}

	return nil
}

// queryExecutions is a helper function to execute queries that return multiple runs.
func (r *SQLiteExecutionRepository) queryExecutions(query string, args ...interface{}) ([]*execution.Execution, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	executions := make([]*execution.Execution, 0)

	for rows.Next() {
		var exec execution.Execution
		var completedAt sql.NullTime
		var errorType, errorMessage, errorContext sql.NullString

		err := rows.Scan(
			&exec.ID,
			&exec.Algorithm,
			&exec.InputSize,
			&exec.StepCount,
			&exec.Status,
			&exec.StartedAt,
			&completedAt,
			&errorType,
			&errorMessage,
			&errorContext,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}

		if completedAt.Valid {
			exec.CompletedAt = completedAt.Time
		}

		if errorType.Valid && errorMessage.Valid {
			exec.Error = &execution.ExecutionError{
				Type:      execution.ErrorType(errorType.String),
				Message:   errorMessage.String,
				Algorithm: exec.Algorithm,
			}
			if errorContext.Valid {
				var ctx map[string]interface{}
				if err := json.Unmarshal([]byte(errorContext.String), &ctx); err == nil {
					exec.Error.Context = ctx
				}
			}
		}

		executions = append(executions, &exec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating executions: %w", err)
	}

	return executions, nil
}
