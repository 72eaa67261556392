package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/pattern"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

func newTestLogger(ctrl *gomock.Controller) *logger.MockLogger {
	mockLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().WithComponent("WATCHER").Return(mockLog).AnyTimes()
	mockLog.EXPECT().Info().Return(nil).AnyTimes()
	mockLog.EXPECT().Warn().Return(nil).AnyTimes()
	mockLog.EXPECT().Error().Return(nil).AnyTimes()

	return mockLog
}

func newTestMatcher(t *testing.T) pattern.Matcher {
	t.Helper()

	m, err := pattern.NewMatcher([]string{"**/*.vue"}, []string{"node_modules/**"})
	require.NoError(t, err)

	return m
}

func Test_Watch_TriggersOnMatchingChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "components"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0755))

	cfg := config.DefaultConfig()
	cfg.Components.Debounce = 50 * time.Millisecond

	b := bus.New(nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Subscribe(ctx)

	var (
		mu    sync.Mutex
		calls [][]string
	)

	done := make(chan error, 1)

	go func() {
		done <- NewWatcher(cfg, b, newTestLogger(ctrl)).Watch(ctx, root, newTestMatcher(t), func(files []string) {
			mu.Lock()
			defer mu.Unlock()

			calls = append(calls, files)
		})
	}()

	waitFor(t, events, bus.EventWatchStarted)

	require.NoError(t, os.WriteFile(filepath.Join(root, "components", "Search.vue"), []byte("<template/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "components", "notes.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "Lib.vue"), []byte("x"), 0644))

	waitFor(t, events, bus.EventWatchTriggered)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(calls) > 0
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"components/Search.vue"}, calls[0])
	mu.Unlock()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch should return after cancellation")
	}
}

func Test_Watch_NewDirectoriesAreWatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Components.Debounce = 30 * time.Millisecond

	b := bus.New(nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := b.Subscribe(ctx)
	changed := make(chan []string, 4)

	go func() {
		_ = NewWatcher(cfg, b, newTestLogger(ctrl)).Watch(ctx, root, newTestMatcher(t), func(files []string) {
			changed <- files
		})
	}()

	waitFor(t, events, bus.EventWatchStarted)

	nested := filepath.Join(root, "components", "logs")
	require.NoError(t, os.MkdirAll(nested, 0755))

	// the directory must be registered before files inside it produce events
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(nested, "LogItem.vue"), []byte("<template/>"), 0644))

	select {
	case files := <-changed:
		assert.Contains(t, files, "components/logs/LogItem.vue")
	case <-time.After(2 * time.Second):
		t.Fatal("Expected change in new directory")
	}
}

func Test_Watch_MissingDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := NewWatcher(config.DefaultConfig(), bus.NoOp(), newTestLogger(ctrl))

	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), newTestMatcher(t), func([]string) {})
	assert.Error(t, err)
}

func Test_IsRelevantEvent(t *testing.T) {
	assert.True(t, isRelevantEvent(fsnotify.Event{Op: fsnotify.Write}))
	assert.True(t, isRelevantEvent(fsnotify.Event{Op: fsnotify.Create}))
	assert.True(t, isRelevantEvent(fsnotify.Event{Op: fsnotify.Remove}))
	assert.True(t, isRelevantEvent(fsnotify.Event{Op: fsnotify.Rename}))
	assert.False(t, isRelevantEvent(fsnotify.Event{Op: fsnotify.Chmod}))
}

func waitFor(t *testing.T, ch <-chan bus.Message, typ bus.MessageType) {
	t.Helper()

	timeout := time.After(3 * time.Second)

	for {
		select {
		case msg := <-ch:
			if msg.Type == typ {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", typ)
		}
	}
}
