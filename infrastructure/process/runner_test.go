package process

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"kgraph/pkg/errors"
)

func newTestLauncher(t *testing.T) *ExecLauncher {
	return NewExecLauncher(200*time.Millisecond, time.Second, zaptest.NewLogger(t))
}

func TestLaunchAndStop(t *testing.T) {
	l := newTestLauncher(t)

	h, err := l.Launch(context.Background(), "/bin/sh", []string{"-c", "echo started; sleep 60"})
	require.NoError(t, err)
	assert.True(t, h.Running())
	assert.Contains(t, h.Output(), "started")

	require.NoError(t, h.Stop())
	assert.False(t, h.Running())
}

func TestLaunchSpawnFailure(t *testing.T) {
	l := newTestLauncher(t)

	_, err := l.Launch(context.Background(), "/nonexistent/worker", nil)
	require.Error(t, err)
	assert.True(t, errors.IsLaunch(err))
}

func TestLaunchEarlyNonZeroExit(t *testing.T) {
	l := newTestLauncher(t)

	_, err := l.Launch(context.Background(), "/bin/sh", []string{"-c", "echo doom >&2; exit 3"})
	require.Error(t, err)
	assert.True(t, errors.IsLaunch(err))
	assert.Contains(t, err.Error(), "doom")
}

func TestLaunchCleanImmediateExitSucceeds(t *testing.T) {
	l := newTestLauncher(t)

	h, err := l.Launch(context.Background(), "/bin/sh", []string{"-c", "echo handed off"})
	require.NoError(t, err)
	assert.False(t, h.Running())
	assert.Contains(t, h.Output(), "handed off")
}

func TestStopIsIdempotent(t *testing.T) {
	l := newTestLauncher(t)

	h, err := l.Launch(context.Background(), "/bin/sh", []string{"-c", "sleep 60"})
	require.NoError(t, err)

	require.NoError(t, h.Stop())
	require.NoError(t, h.Stop())
}

func TestCrashedProcessReadsAsNotRunning(t *testing.T) {
	l := newTestLauncher(t)

	h, err := l.Launch(context.Background(), "/bin/sh", []string{"-c", "sleep 0.4; exit 1"})
	require.NoError(t, err)
	assert.True(t, h.Running())

	time.Sleep(400 * time.Millisecond)
	assert.False(t, h.Running())
}
