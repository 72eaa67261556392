package monitor

import (
	"context"
	"math"

	"github.com/shirou/gopsutil/v4/process"
)

// Stats contains process resource statistics
type Stats struct {
	CPU       float64 `json:"cpu_percent"`
	MEM       float64 `json:"rss_mb"` // in MB
	Processes int     `json:"processes"`
}

// Monitor samples resource usage of a process
type Monitor interface {
	GetStats(ctx context.Context, pid int) (Stats, error)
	GetTreeStats(ctx context.Context, pid int) (Stats, error)
}

type monitor struct{}

// NewMonitor creates a new Monitor instance
func NewMonitor() Monitor {
	return &monitor{}
}

// GetStats samples a single process
func (m *monitor) GetStats(ctx context.Context, pid int) (Stats, error) {
	proc, err := lookup(ctx, pid)
	if err != nil || proc == nil {
		return Stats{}, err
	}

	return sample(ctx, proc), nil
}

// GetTreeStats samples a process together with all its descendants, which is how Chromium spreads renderers
func (m *monitor) GetTreeStats(ctx context.Context, pid int) (Stats, error) {
	proc, err := lookup(ctx, pid)
	if err != nil || proc == nil {
		return Stats{}, err
	}

	total := Stats{}
	queue := []*process.Process{proc}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		current := queue[0]
		queue = queue[1:]

		s := sample(ctx, current)
		total.CPU += s.CPU
		total.MEM += s.MEM
		total.Processes++

		children, err := current.ChildrenWithContext(ctx)
		if err == nil {
			queue = append(queue, children...)
		}
	}

	return total, nil
}

func lookup(ctx context.Context, pid int) (*process.Process, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return nil, nil
	}

	return process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PID range checked above
}

func sample(ctx context.Context, proc *process.Process) Stats {
	stats := Stats{Processes: 1}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		stats.CPU = cpuPercent
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		stats.MEM = float64(memInfo.RSS) / 1024 / 1024
	}

	return stats
}
