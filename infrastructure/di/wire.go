//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/application/services"
	"kgraph/infrastructure/config"
	"kgraph/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Registry        *prometheus.Registry
	Metrics         *observability.Metrics
	Store           ports.GraphStore
	Launcher        ports.ProcessLauncher
	ReadService     *services.GraphReadService
	MutationService *services.GraphMutationService
	Supervisor      *services.WorkerSupervisor
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideGraphStore,
	ProvideLauncher,
	ProvideGraphReadService,
	ProvideGraphMutationService,
	ProvideWorkerSupervisor,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
