package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

// lockedBuffer is a thread-safe bytes.Buffer for capturing process output
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer with mutex protection
func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

// String returns the buffer contents with mutex protection
func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// Runner manages a dozzlecheck process for e2e tests
type Runner struct {
	t       *testing.T
	bin     string
	cmd     *exec.Cmd
	done    chan struct{}
	stdout  *lockedBuffer
	stderr  *lockedBuffer
	workDir string
}

// NewRunner creates a runner working in a fresh directory, skipping when the binary is not installed
func NewRunner(t *testing.T) *Runner {
	t.Helper()

	bin := os.Getenv("DOZZLECHECK_BIN")
	if bin == "" {
		bin = "dozzlecheck"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		t.Skipf("dozzlecheck binary not found (%v), set DOZZLECHECK_BIN", err)
	}

	return &Runner{
		t:       t,
		bin:     path,
		workDir: t.TempDir(),
		stdout:  &lockedBuffer{},
		stderr:  &lockedBuffer{},
	}
}

// WriteFile creates a file relative to the working directory
func (r *Runner) WriteFile(path, content string) {
	r.t.Helper()

	fullPath := filepath.Join(r.workDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		r.t.Fatalf("failed to create directory: %v", err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		r.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns a file relative to the working directory
func (r *Runner) ReadFile(path string) string {
	r.t.Helper()

	content, err := os.ReadFile(filepath.Join(r.workDir, path))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", path, err)
	}

	return string(content)
}

// Start launches dozzlecheck with the given args
func (r *Runner) Start(args ...string) error {
	r.stdout = &lockedBuffer{}
	r.stderr = &lockedBuffer{}
	r.done = make(chan struct{})

	r.cmd = exec.Command(r.bin, args...)
	r.cmd.Dir = r.workDir
	r.cmd.Env = append(os.Environ(), "DOZZLECHECK_CONFIG=")
	r.cmd.Stdout = r.stdout
	r.cmd.Stderr = r.stderr

	if err := r.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start dozzlecheck: %w", err)
	}

	go func() {
		_ = r.cmd.Wait()
		close(r.done)
	}()

	return nil
}

// Run starts dozzlecheck and waits for it to exit, returning its exit code
func (r *Runner) Run(timeout time.Duration, args ...string) (int, error) {
	if err := r.Start(args...); err != nil {
		return -1, err
	}

	select {
	case <-r.done:
		return r.ExitCode(), nil
	case <-time.After(timeout):
		_ = r.cmd.Process.Kill()
		<-r.done

		return -1, fmt.Errorf("dozzlecheck %s did not exit in %s\nOutput:\n%s", strings.Join(args, " "), timeout, r.Output())
	}
}

// Stop sends SIGTERM and waits for graceful shutdown
func (r *Runner) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil {
		return nil
	}

	select {
	case <-r.done:
		return nil
	default:
	}

	if err := r.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	select {
	case <-r.done:
		return nil
	case <-time.After(10 * time.Second):
		_ = r.cmd.Process.Kill()
		<-r.done

		return fmt.Errorf("process did not exit gracefully, killed")
	}
}

// WaitForLog blocks until pattern appears in stdout or timeout
func (r *Runner) WaitForLog(pattern string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for log pattern %q\nOutput:\n%s", pattern, r.Output())
		case <-ticker.C:
			if strings.Contains(r.Output(), pattern) {
				return nil
			}
		}
	}
}

// Output returns current stdout content
func (r *Runner) Output() string {
	return r.stdout.String()
}

// Stderr returns current stderr content
func (r *Runner) Stderr() string {
	return r.stderr.String()
}

// ExitCode returns the process exit code once it has exited
func (r *Runner) ExitCode() int {
	if r.cmd == nil || r.cmd.ProcessState == nil {
		return -1
	}

	return r.cmd.ProcessState.ExitCode()
}
