package monitor

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonitor(t *testing.T) {
	assert.NotNil(t, NewMonitor())
}

func TestGetStats_InvalidPID(t *testing.T) {
	m := NewMonitor()
	ctx := context.Background()

	tests := []struct {
		name string
		pid  int
	}{
		{name: "zero PID", pid: 0},
		{name: "negative PID", pid: -1},
		{name: "above int32", pid: 2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := m.GetStats(ctx, tt.pid)
			assert.NoError(t, err)
			assert.Equal(t, Stats{}, stats)

			stats, err = m.GetTreeStats(ctx, tt.pid)
			assert.NoError(t, err)
			assert.Equal(t, Stats{}, stats)
		})
	}
}

func TestGetStats_CurrentProcess(t *testing.T) {
	m := NewMonitor()

	stats, err := m.GetStats(context.Background(), os.Getpid())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.CPU, 0.0)
	assert.Greater(t, stats.MEM, 0.0)
	assert.Equal(t, 1, stats.Processes)
}

func TestGetTreeStats_IncludesChildren(t *testing.T) {
	cmd := exec.Command("sleep", "5")
	if err := cmd.Start(); err != nil {
		t.Skip("sleep binary not available")
	}

	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	m := NewMonitor()

	stats, err := m.GetTreeStats(context.Background(), os.Getpid())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Processes, 2)
	assert.Greater(t, stats.MEM, 0.0)
}

func TestGetTreeStats_CancelledContext(t *testing.T) {
	m := NewMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	time.Sleep(time.Millisecond)

	_, err := m.GetTreeStats(ctx, os.Getpid())
	assert.Error(t, err)
}
