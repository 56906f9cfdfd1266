package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"kgraph/application/ports"
	"kgraph/domain/workers"
	"kgraph/pkg/errors"
)

type fakeHandle struct {
	mu      sync.Mutex
	running bool
	output  string
	stopErr error
}

func (h *fakeHandle) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *fakeHandle) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopErr != nil {
		return h.stopErr
	}
	h.running = false
	return nil
}

func (h *fakeHandle) Output() string { return h.output }

type fakeLauncher struct {
	launches  atomic.Int64
	launchErr error
	handle    *fakeHandle
}

func (l *fakeLauncher) Launch(_ context.Context, _ string, _ []string) (ports.ProcessHandle, error) {
	l.launches.Add(1)
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	if l.handle == nil {
		l.handle = &fakeHandle{running: true, output: "worker starting"}
	}
	return l.handle, nil
}

func newSupervisor(launcher ports.ProcessLauncher, t *testing.T) *WorkerSupervisor {
	return NewWorkerSupervisor(
		launcher,
		map[workers.Name]string{
			workers.Builder:  "/usr/local/bin/kg-builder",
			workers.Enricher: "/usr/local/bin/kg-enricher",
		},
		zaptest.NewLogger(t),
		testMetrics(),
	)
}

var builderParams = workers.BuilderParams{
	SeedConcept:         "Physics",
	MaxNodes:            50,
	Timeout:             60,
	RandomRelationships: 5,
	Concurrency:         2,
}

func TestStartAndStop(t *testing.T) {
	launcher := &fakeLauncher{}
	s := newSupervisor(launcher, t)

	result, err := s.Start(context.Background(), workers.Builder, builderParams)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Contains(t, result.Message, "builder started")
	assert.Equal(t, "worker starting", result.Output)

	result, err = s.Stop(context.Background(), workers.Builder)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Contains(t, result.Message, "stopped successfully")
}

func TestStopWhenNeverStartedIsNoOp(t *testing.T) {
	s := newSupervisor(&fakeLauncher{}, t)

	result, err := s.Stop(context.Background(), workers.Enricher)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Contains(t, result.Message, "not running")
}

func TestDuplicateStartRejected(t *testing.T) {
	launcher := &fakeLauncher{}
	s := newSupervisor(launcher, t)

	_, err := s.Start(context.Background(), workers.Builder, builderParams)
	require.NoError(t, err)

	_, err = s.Start(context.Background(), workers.Builder, builderParams)
	require.Error(t, err)
	assert.True(t, errors.IsLaunch(err))
	assert.Equal(t, int64(1), launcher.launches.Load())
}

func TestConcurrentStartsLaunchOnce(t *testing.T) {
	launcher := &fakeLauncher{}
	s := newSupervisor(launcher, t)

	var wg sync.WaitGroup
	var successes atomic.Int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Start(context.Background(), workers.Builder, builderParams); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), launcher.launches.Load())
	assert.Equal(t, int64(1), successes.Load())
}

func TestCrashedWorkerCanBeRestarted(t *testing.T) {
	launcher := &fakeLauncher{}
	s := newSupervisor(launcher, t)

	_, err := s.Start(context.Background(), workers.Builder, builderParams)
	require.NoError(t, err)

	// Worker dies on its own; liveness must reflect that without a Stop call.
	launcher.handle.running = false

	statuses := s.Status()
	for _, st := range statuses {
		assert.False(t, st.Running, string(st.Name))
	}

	launcher.handle = nil
	_, err = s.Start(context.Background(), workers.Builder, builderParams)
	require.NoError(t, err)
	assert.Equal(t, int64(2), launcher.launches.Load())
}

func TestWorkersAreIndependent(t *testing.T) {
	launcher := &fakeLauncher{}
	s := newSupervisor(launcher, t)

	_, err := s.Start(context.Background(), workers.Builder, builderParams)
	require.NoError(t, err)

	statuses := s.Status()
	require.Len(t, statuses, 2)
	assert.Equal(t, workers.Builder, statuses[0].Name)
	assert.True(t, statuses[0].Running)
	assert.Equal(t, workers.Enricher, statuses[1].Name)
	assert.False(t, statuses[1].Running)
}

func TestStartLaunchFailurePropagates(t *testing.T) {
	launcher := &fakeLauncher{launchErr: errors.NewLaunchError("failed to spawn kg-builder", assert.AnError)}
	s := newSupervisor(launcher, t)

	_, err := s.Start(context.Background(), workers.Builder, builderParams)
	require.Error(t, err)
	assert.True(t, errors.IsLaunch(err))

	// A failed launch leaves the worker stoppable and restartable.
	result, err := s.Stop(context.Background(), workers.Builder)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
}

func TestUnknownWorkerRejected(t *testing.T) {
	s := newSupervisor(&fakeLauncher{}, t)

	_, err := s.Start(context.Background(), workers.Name("reaper"), builderParams)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
