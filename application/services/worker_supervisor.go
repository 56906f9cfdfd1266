package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/domain/workers"
	"kgraph/pkg/errors"
	"kgraph/pkg/observability"
)

// ControlResult is the outcome of a worker start/stop call.
type ControlResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Output  string `json:"output,omitempty"`
}

// workerState guards one worker's handle. Transitions for a given worker are
// serialized by its own mutex; the two workers never block each other.
type workerState struct {
	mu     sync.Mutex
	handle ports.ProcessHandle
	runID  string
}

// WorkerSupervisor starts and stops the builder and enricher processes.
// "Running" is backed by live process-handle liveness, so a worker that
// exits on its own reverts to stopped without a stop call.
type WorkerSupervisor struct {
	launcher ports.ProcessLauncher
	commands map[workers.Name]string
	states   map[workers.Name]*workerState
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewWorkerSupervisor creates a supervisor over the given worker commands.
func NewWorkerSupervisor(
	launcher ports.ProcessLauncher,
	commands map[workers.Name]string,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *WorkerSupervisor {
	return &WorkerSupervisor{
		launcher: launcher,
		commands: commands,
		states: map[workers.Name]*workerState{
			workers.Builder:  {},
			workers.Enricher: {},
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Start launches the named worker with the given parameters. A worker that
// is already running is not launched again.
func (s *WorkerSupervisor) Start(ctx context.Context, name workers.Name, params workers.Params) (*ControlResult, error) {
	state, err := s.state(name)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.handle != nil && state.handle.Running() {
		s.metrics.WorkerStartsTotal.WithLabelValues(string(name), "duplicate").Inc()
		return nil, errors.NewLaunchError(fmt.Sprintf("%s is already running", name), nil)
	}

	runID := uuid.NewString()
	handle, err := s.launcher.Launch(ctx, s.commands[name], params.Args())
	if err != nil {
		s.metrics.WorkerStartsTotal.WithLabelValues(string(name), "error").Inc()
		s.logger.Error("worker start failed",
			zap.String("worker", string(name)),
			zap.String("runID", runID),
			zap.Error(err),
		)
		return nil, err
	}

	state.handle = handle
	state.runID = runID
	s.metrics.WorkerStartsTotal.WithLabelValues(string(name), "ok").Inc()
	s.logger.Info("worker started",
		zap.String("worker", string(name)),
		zap.String("runID", runID),
	)

	return &ControlResult{
		Status:  "success",
		Message: fmt.Sprintf("%s started successfully", name),
		Output:  handle.Output(),
	}, nil
}

// Stop terminates the named worker. Stopping a worker that is not running
// succeeds as a no-op.
func (s *WorkerSupervisor) Stop(ctx context.Context, name workers.Name) (*ControlResult, error) {
	state, err := s.state(name)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.handle == nil || !state.handle.Running() {
		state.handle = nil
		s.metrics.WorkerStopsTotal.WithLabelValues(string(name), "noop").Inc()
		return &ControlResult{
			Status:  "success",
			Message: fmt.Sprintf("%s is not running", name),
		}, nil
	}

	if err := state.handle.Stop(); err != nil {
		s.metrics.WorkerStopsTotal.WithLabelValues(string(name), "error").Inc()
		s.logger.Error("worker stop failed",
			zap.String("worker", string(name)),
			zap.String("runID", state.runID),
			zap.Error(err),
		)
		return nil, err
	}

	output := state.handle.Output()
	state.handle = nil
	s.metrics.WorkerStopsTotal.WithLabelValues(string(name), "ok").Inc()
	s.logger.Info("worker stopped", zap.String("worker", string(name)))

	return &ControlResult{
		Status:  "success",
		Message: fmt.Sprintf("%s stopped successfully", name),
		Output:  output,
	}, nil
}

// Status reports live liveness for every known worker.
func (s *WorkerSupervisor) Status() []ports.WorkerStatus {
	statuses := make([]ports.WorkerStatus, 0, len(s.states))
	for _, name := range []workers.Name{workers.Builder, workers.Enricher} {
		state := s.states[name]
		state.mu.Lock()
		running := state.handle != nil && state.handle.Running()
		state.mu.Unlock()
		statuses = append(statuses, ports.WorkerStatus{Name: name, Running: running})
	}
	return statuses
}

func (s *WorkerSupervisor) state(name workers.Name) (*workerState, error) {
	state, ok := s.states[name]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown worker %q", name))
	}
	return state, nil
}
