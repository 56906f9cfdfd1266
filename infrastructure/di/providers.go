package di

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kgraph/application/ports"
	"kgraph/application/services"
	"kgraph/domain/workers"
	"kgraph/infrastructure/config"
	neo4jstore "kgraph/infrastructure/persistence/neo4j"
	"kgraph/infrastructure/process"
	"kgraph/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}

// ProvideRegistry creates the process-wide metrics registry
func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetrics creates the application metric collectors
func ProvideMetrics(registry *prometheus.Registry) *observability.Metrics {
	return observability.NewMetrics("kgraph", registry)
}

// ProvideGraphStore connects to the graph store, retrying per configuration
func ProvideGraphStore(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (ports.GraphStore, error) {
	return neo4jstore.NewStore(ctx, neo4jstore.Config{
		URI:               cfg.Neo4jURI,
		User:              cfg.Neo4jUser,
		Password:          cfg.Neo4jPassword,
		MaxRetries:        cfg.Neo4jMaxRetries,
		RetryIntervalSecs: cfg.Neo4jRetryIntervalSec,
	}, logger, metrics)
}

// ProvideLauncher creates the external process launcher
func ProvideLauncher(cfg *config.Config, logger *zap.Logger) ports.ProcessLauncher {
	return process.NewExecLauncher(
		time.Duration(cfg.LaunchProbeMS)*time.Millisecond,
		time.Duration(cfg.StopGraceSec)*time.Second,
		logger,
	)
}

// ProvideGraphReadService creates the graph read service
func ProvideGraphReadService(store ports.GraphStore, logger *zap.Logger) *services.GraphReadService {
	return services.NewGraphReadService(store, logger)
}

// ProvideGraphMutationService creates the graph mutation service
func ProvideGraphMutationService(store ports.GraphStore, logger *zap.Logger) *services.GraphMutationService {
	return services.NewGraphMutationService(store, logger)
}

// ProvideWorkerSupervisor creates the supervisor over the builder and enricher
func ProvideWorkerSupervisor(
	launcher ports.ProcessLauncher,
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *services.WorkerSupervisor {
	return services.NewWorkerSupervisor(launcher, map[workers.Name]string{
		workers.Builder:  cfg.BuilderCommand,
		workers.Enricher: cfg.EnricherCommand,
	}, logger, metrics)
}
