// Package neo4j implements the graph store client on top of the official
// Neo4j bolt driver.
package neo4j

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/pkg/errors"
	"kgraph/pkg/observability"
)

// Config holds the connection settings for the store.
type Config struct {
	URI               string
	User              string
	Password          string
	MaxRetries        int
	RetryIntervalSecs int
}

// Store is a GraphStore backed by a single long-lived Neo4j driver. The
// driver pools connections internally and is safe for concurrent use;
// sessions are cheap and created per query.
type Store struct {
	driver  neo4j.DriverWithContext
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewStore connects to the store, retrying the initial connectivity check.
// Retries apply only here; query failures later propagate immediately.
func NewStore(ctx context.Context, cfg Config, logger *zap.Logger, metrics *observability.Metrics) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, errors.NewStoreUnavailableError("connect", err)
	}

	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	for attempt := 1; ; attempt++ {
		err = driver.VerifyConnectivity(ctx)
		if err == nil {
			break
		}

		logger.Warn("graph store not reachable",
			zap.Int("attempt", attempt),
			zap.Int("maxRetries", retries),
			zap.Error(err),
		)

		if attempt >= retries {
			_ = driver.Close(ctx)
			return nil, errors.NewStoreUnavailableError("connect", err)
		}

		select {
		case <-time.After(time.Duration(cfg.RetryIntervalSecs) * time.Second):
		case <-ctx.Done():
			_ = driver.Close(ctx)
			return nil, errors.NewStoreUnavailableError("connect", ctx.Err())
		}
	}

	return &Store{driver: driver, logger: logger, metrics: metrics}, nil
}

// Read runs a read-only statement and returns all result rows.
func (s *Store) Read(ctx context.Context, statement string, params map[string]interface{}) ([]ports.Row, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, s.collect(ctx, statement, params))
	return s.finish("read", result, err)
}

// Write runs a mutating statement and returns all result rows.
func (s *Store) Write(ctx context.Context, statement string, params map[string]interface{}) ([]ports.Row, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, s.collect(ctx, statement, params))
	return s.finish("write", result, err)
}

// Ping verifies connectivity for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return errors.NewStoreUnavailableError("ping", err)
	}
	return nil
}

// Close releases the driver and its connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// collect builds the transaction function shared by Read and Write.
func (s *Store) collect(ctx context.Context, statement string, params map[string]interface{}) neo4j.ManagedTransactionWork {
	return func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, statement, params)
		if err != nil {
			return nil, err
		}

		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}

		rows := make([]ports.Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, ports.Row(record.AsMap()))
		}
		return rows, nil
	}
}

// finish converts the transaction result and uniformly wraps failures.
func (s *Store) finish(operation string, result interface{}, err error) ([]ports.Row, error) {
	if err != nil {
		s.metrics.StoreQueriesTotal.WithLabelValues(operation, "error").Inc()
		s.logger.Error("graph store query failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, errors.NewStoreUnavailableError(operation, err)
	}

	s.metrics.StoreQueriesTotal.WithLabelValues(operation, "ok").Inc()
	return result.([]ports.Row), nil
}

// compile-time guard
var _ ports.GraphStore = (*Store)(nil)
