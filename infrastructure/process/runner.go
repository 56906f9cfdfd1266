// Package process wraps external worker binaries in typed start/stop
// operations with captured output.
package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/pkg/errors"
)

// lockedBuffer collects process output concurrently with reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Handle is a live process handle. Liveness comes from the reaper goroutine
// observing Wait, so a worker that crashes on its own reads as not running.
type Handle struct {
	cmd       *exec.Cmd
	output    *lockedBuffer
	stopGrace time.Duration

	done    chan struct{}
	waitErr error
}

// Running reports whether the process is still alive.
func (h *Handle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Output returns the combined stdout/stderr captured so far.
func (h *Handle) Output() string {
	return h.output.String()
}

// Stop terminates the process: SIGTERM first, SIGKILL after the grace
// period. Stopping an already-exited process is a no-op.
func (h *Handle) Stop() error {
	if !h.Running() {
		return nil
	}

	if err := h.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// The process may have exited between the check and the signal.
		select {
		case <-h.done:
			return nil
		default:
			return errors.NewLaunchError("failed to signal process", err)
		}
	}

	select {
	case <-h.done:
	case <-time.After(h.stopGrace):
		_ = h.cmd.Process.Kill()
		<-h.done
	}
	return nil
}

// ExecLauncher launches worker binaries with exec and a startup probe.
type ExecLauncher struct {
	probe     time.Duration
	stopGrace time.Duration
	logger    *zap.Logger
}

// NewExecLauncher creates a launcher. probe is how long a freshly started
// process is watched for an early exit; stopGrace is the SIGTERM-to-SIGKILL
// window on Stop.
func NewExecLauncher(probe, stopGrace time.Duration, logger *zap.Logger) *ExecLauncher {
	return &ExecLauncher{probe: probe, stopGrace: stopGrace, logger: logger}
}

// Launch starts the command and waits out the probe window. A spawn failure
// or an early non-zero exit yields a LaunchError with the process' output
// attached verbatim.
func (l *ExecLauncher) Launch(ctx context.Context, command string, args []string) (ports.ProcessHandle, error) {
	cmd := exec.Command(command, args...)
	output := &lockedBuffer{}
	cmd.Stdout = output
	cmd.Stderr = output

	l.logger.Info("launching process",
		zap.String("command", command),
		zap.Strings("args", args),
	)

	if err := cmd.Start(); err != nil {
		return nil, errors.NewLaunchError(fmt.Sprintf("failed to spawn %s", command), err)
	}

	h := &Handle{
		cmd:       cmd,
		output:    output,
		stopGrace: l.stopGrace,
		done:      make(chan struct{}),
	}

	go func() {
		h.waitErr = cmd.Wait()
		close(h.done)
	}()

	select {
	case <-h.done:
		if h.waitErr != nil {
			detail := strings.TrimSpace(h.Output())
			if detail == "" {
				detail = h.waitErr.Error()
			}
			return nil, errors.NewLaunchError(
				fmt.Sprintf("%s exited during startup: %s", command, detail), h.waitErr)
		}
		// A clean immediate exit is fine: launch scripts that hand off to a
		// daemon behave exactly like this.
		return h, nil
	case <-time.After(l.probe):
		return h, nil
	case <-ctx.Done():
		_ = h.Stop()
		return nil, errors.NewLaunchError("launch canceled", ctx.Err())
	}
}

var _ ports.ProcessLauncher = (*ExecLauncher)(nil)
var _ ports.ProcessHandle = (*Handle)(nil)
