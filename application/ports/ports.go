// Package ports defines the interfaces the application services depend on,
// implemented by the infrastructure layer.
package ports

import (
	"context"

	"kgraph/domain/workers"
)

// Row is one result row of a graph query, keyed by column alias.
type Row map[string]interface{}

// GraphStore issues parameterized queries against the graph database.
// Failures surface as StoreUnavailable errors with the store's diagnostic
// text attached; there are no retries at this level.
type GraphStore interface {
	// Read runs a read-only statement and returns all result rows.
	Read(ctx context.Context, statement string, params map[string]interface{}) ([]Row, error)
	// Write runs a mutating statement and returns all result rows.
	Write(ctx context.Context, statement string, params map[string]interface{}) ([]Row, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connection. Safe to call once at shutdown.
	Close(ctx context.Context) error
}

// ProcessHandle is a live handle on a launched worker process.
type ProcessHandle interface {
	// Running reports liveness, backed by the process itself rather than the
	// last observed start/stop outcome.
	Running() bool
	// Stop signals the process to terminate and reaps it.
	Stop() error
	// Output returns the combined stdout/stderr captured so far.
	Output() string
}

// ProcessLauncher spawns external worker processes.
type ProcessLauncher interface {
	// Launch starts the command and probes that it survives startup. A spawn
	// failure or an early non-zero exit yields a LaunchError carrying the
	// process' output.
	Launch(ctx context.Context, command string, args []string) (ProcessHandle, error)
}

// WorkerStatus is the externally visible state of one worker.
type WorkerStatus struct {
	Name    workers.Name `json:"name"`
	Running bool         `json:"running"`
}
