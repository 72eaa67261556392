package preflight

import (
	"context"
	"os"
	"slices"
	"strings"
	"sync"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/lifecycle"
	"dozzlecheck/internal/app/worker"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// Result represents a process killed during preflight
type Result struct {
	Name string
	PID  int32
}

// Preflight kills browsers left behind by earlier crashed runs
//
//go:generate mockgen -source=preflight.go -destination=preflight_mock.go -package=preflight
type Preflight interface {
	Cleanup(ctx context.Context, marker string) ([]Result, error)
}

// entry is a snapshot of one running process
type entry struct {
	name    string
	cmdline string
	pid     int32
	ppid    int32
}

type scanFunc func() ([]entry, error)
type killFunc func(pid int32) error

type preflight struct {
	scan scanFunc
	kill killFunc
	bus  bus.Bus
	pool worker.Pool
	log  logger.Logger
}

// NewPreflight creates a new Preflight instance
func NewPreflight(cfg *config.Config, b bus.Bus, lc lifecycle.Lifecycle, log logger.Logger) Preflight {
	return &preflight{
		scan: scan,
		kill: terminator(lc),
		bus:  b,
		pool: worker.NewWorkerPool(cfg),
		log:  log.WithComponent("PREFLIGHT"),
	}
}

// Cleanup kills orphaned processes launched with the marker flag. Scan failures are logged, not returned
func (p *preflight) Cleanup(ctx context.Context, marker string) ([]Result, error) {
	if marker == "" {
		return nil, nil
	}

	p.bus.Publish(bus.Message{
		Type:     bus.EventPreflightStarted,
		Data:     bus.PreflightStarted{Marker: marker},
		Critical: true,
	})

	var results []Result

	defer func() {
		p.bus.Publish(bus.Message{
			Type:     bus.EventPreflightComplete,
			Data:     bus.PreflightComplete{Killed: len(results)},
			Critical: true,
		})
	}()

	processes, err := p.scan()
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to scan processes")
		return nil, nil
	}

	ownPID := int32(os.Getpid()) // #nosec G115 -- PID fits in int32

	results = p.killAll(ctx, orphans(processes, "--"+marker, ownPID))

	return results, nil
}

// orphans returns marked processes whose parent is gone or was reparented to init
func orphans(processes []entry, flag string, ownPID int32) []entry {
	running := make(map[int32]bool, len(processes))
	for _, proc := range processes {
		running[proc.pid] = true
	}

	var found []entry

	for _, proc := range processes {
		switch {
		case proc.pid == ownPID, proc.ppid == ownPID:
		case !hasFlag(proc.cmdline, flag):
		case running[proc.ppid] && proc.ppid != 1:
		default:
			found = append(found, proc)
		}
	}

	return found
}

// killAll terminates the given processes on the worker pool and returns them ordered by PID
func (p *preflight) killAll(ctx context.Context, targets []entry) []Result {
	if len(targets) == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]Result, 0, len(targets))
	)

	for _, target := range targets {
		if err := p.pool.Acquire(ctx); err != nil {
			p.log.Warn().Err(err).Msg("Context cancelled, stopping preflight kills")
			break
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer p.pool.Release()

			p.log.Info().Msgf("Killing orphaned browser '%s' (PID: %d)", target.name, target.pid)
			p.bus.Publish(bus.Message{
				Type: bus.EventPreflightKill,
				Data: bus.PreflightKill{Name: target.name, PID: int(target.pid)},
			})

			if err := p.kill(target.pid); err != nil {
				p.log.Warn().Err(err).Msgf("Failed to kill process %d", target.pid)
			}

			mu.Lock()
			results = append(results, Result{Name: target.name, PID: target.pid})
			mu.Unlock()
		}()
	}

	wg.Wait()

	slices.SortFunc(results, func(a, b Result) int { return int(a.PID - b.PID) })

	return results
}

func hasFlag(cmdline, flag string) bool {
	return slices.ContainsFunc(strings.Fields(cmdline), func(arg string) bool {
		return arg == flag || strings.HasPrefix(arg, flag+"=")
	})
}

func scan() ([]entry, error) {
	processes, err := process.Processes()
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(processes))

	for _, proc := range processes {
		cmdline, err := proc.Cmdline()
		if err != nil {
			continue
		}

		ppid, _ := proc.Ppid()
		name, _ := proc.Name()

		entries = append(entries, entry{name: name, cmdline: cmdline, pid: proc.Pid, ppid: ppid})
	}

	return entries, nil
}

// terminator stops the browser's process group, then the process itself when it led no group
func terminator(lc lifecycle.Lifecycle) killFunc {
	return func(pid int32) error {
		if err := lc.Terminate(int(pid), config.PreFlightKillTimeout); err != nil {
			return err
		}

		if err := syscall.Kill(int(pid), syscall.SIGKILL); err != nil && err != syscall.ESRCH {
			return err
		}

		return nil
	}
}
