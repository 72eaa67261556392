package lifecycle

import (
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/config/logger"
)

func Test_Configure(t *testing.T) {
	l := NewLifecycle(logger.NewNop())

	t.Run("sets process group", func(t *testing.T) {
		cmd := exec.Command("true")
		l.Configure(cmd)

		require.NotNil(t, cmd.SysProcAttr)
		assert.True(t, cmd.SysProcAttr.Setpgid)
	})

	t.Run("keeps existing attributes", func(t *testing.T) {
		cmd := exec.Command("true")
		cmd.SysProcAttr = &syscall.SysProcAttr{Noctty: true}
		l.Configure(cmd)

		assert.True(t, cmd.SysProcAttr.Setpgid)
		assert.True(t, cmd.SysProcAttr.Noctty)
	})
}

func startGroup(t *testing.T, script string) *exec.Cmd {
	t.Helper()

	cmd := exec.Command("sh", "-c", script)
	NewLifecycle(logger.NewNop()).Configure(cmd)
	require.NoError(t, cmd.Start())

	go func() { _ = cmd.Wait() }()

	return cmd
}

func Test_Terminate_Graceful(t *testing.T) {
	cmd := startGroup(t, "exec sleep 30")
	l := NewLifecycle(logger.NewNop()).(*lifecycle)

	require.True(t, l.alive(cmd.Process.Pid))
	require.NoError(t, l.Terminate(cmd.Process.Pid, 2*time.Second))

	assert.Eventually(t, func() bool { return !l.alive(cmd.Process.Pid) }, time.Second, 20*time.Millisecond)
}

func Test_Terminate_ForceKill(t *testing.T) {
	cmd := startGroup(t, "trap '' TERM; exec sleep 30")
	l := NewLifecycle(logger.NewNop()).(*lifecycle)

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, l.Terminate(cmd.Process.Pid, 200*time.Millisecond))

	assert.Eventually(t, func() bool { return !l.alive(cmd.Process.Pid) }, 2*time.Second, 20*time.Millisecond)
}

func Test_Terminate_NoGroup(t *testing.T) {
	l := NewLifecycle(logger.NewNop())

	assert.NoError(t, l.Terminate(0, time.Second))
	assert.NoError(t, l.Terminate(-1, time.Second))

	cmd := exec.Command("true")
	l.Configure(cmd)
	require.NoError(t, cmd.Run())

	assert.NoError(t, l.Terminate(cmd.Process.Pid, time.Second))
}
