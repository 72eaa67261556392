//go:generate mockgen -source=lifecycle.go -destination=lifecycle_mock.go -package=lifecycle
package lifecycle

import (
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/config/logger"
)

const pollInterval = 50 * time.Millisecond

// Lifecycle runs a locally launched browser in its own process group and reaps that group
type Lifecycle interface {
	Configure(cmd *exec.Cmd)
	Terminate(pid int, timeout time.Duration) error
}

// lifecycle implements the Lifecycle interface
type lifecycle struct {
	log logger.Logger
}

// NewLifecycle creates a new Lifecycle instance
func NewLifecycle(log logger.Logger) Lifecycle {
	return &lifecycle{log: log.WithComponent("LIFECYCLE")}
}

// Configure puts the command in a new process group, keeping attributes already set
func (l *lifecycle) Configure(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.Setpgid = true
}

// Terminate stops every process left in the group led by pid, escalating to SIGKILL after timeout
func (l *lifecycle) Terminate(pid int, timeout time.Duration) error {
	if pid <= 0 || !l.alive(pid) {
		return nil
	}

	l.log.Debug().Msgf("Stopping browser process group (PGID: %d)", pid)

	if err := l.signalGroup(pid, syscall.SIGTERM); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return nil
		}

		l.log.Warn().Err(err).Msg("Failed to send SIGTERM to process group, forcing kill")

		return l.forceKill(pid)
	}

	if l.waitGone(pid, timeout) {
		return nil
	}

	l.log.Warn().Msgf("Browser process group %d did not stop gracefully, forcing kill", pid)

	return l.forceKill(pid)
}

// alive reports whether any process is left in the group
func (l *lifecycle) alive(pid int) bool {
	return syscall.Kill(-pid, 0) == nil
}

// waitGone polls until the group is empty or the timeout passes
func (l *lifecycle) waitGone(pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if !l.alive(pid) {
			return true
		}

		time.Sleep(pollInterval)
	}

	return !l.alive(pid)
}

// signalGroup sends a signal to the process group
func (l *lifecycle) signalGroup(pid int, sig syscall.Signal) error {
	return syscall.Kill(-pid, sig)
}

// forceKill sends SIGKILL to the process group
func (l *lifecycle) forceKill(pid int) error {
	if err := l.signalGroup(pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("%w: %w", errors.ErrFailedToStopGroup, err)
	}

	l.waitGone(pid, time.Second)

	return nil
}
