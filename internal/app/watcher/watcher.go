package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/pattern"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// Watcher reports settled bursts of file changes under a directory
//
//go:generate mockgen -source=watcher.go -destination=watcher_mock.go -package=watcher
type Watcher interface {
	Watch(ctx context.Context, dir string, matcher pattern.Matcher, onChange func(files []string)) error
}

// watcher implements the Watcher interface
type watcher struct {
	debounce time.Duration
	bus      bus.Bus
	log      logger.Logger
}

// session holds the state of one Watch call
type session struct {
	root      string
	matcher   pattern.Matcher
	fsWatcher *fsnotify.Watcher
	debouncer Debouncer
	log       logger.Logger
}

// NewWatcher creates a new Watcher instance
func NewWatcher(cfg *config.Config, bus bus.Bus, log logger.Logger) Watcher {
	return &watcher{
		debounce: cfg.Components.Debounce,
		bus:      bus,
		log:      log.WithComponent("WATCHER"),
	}
}

// Watch blocks until ctx is done, calling onChange once per settled burst of matching changes
func (w *watcher) Watch(ctx context.Context, dir string, matcher pattern.Matcher, onChange func(files []string)) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	s := &session{
		root:      root,
		matcher:   matcher,
		fsWatcher: fsw,
		log:       w.log,
	}

	s.debouncer = NewDebouncer(w.debounce, func(files []string) {
		if ctx.Err() != nil {
			return
		}

		w.bus.Publish(bus.Message{
			Type:     bus.EventWatchTriggered,
			Data:     bus.WatchTriggered{ChangedFiles: files},
			Critical: true,
		})

		onChange(files)
	})
	defer s.debouncer.Stop()

	if err := s.addDirRecursive(root); err != nil {
		return err
	}

	w.bus.Publish(bus.Message{
		Type:     bus.EventWatchStarted,
		Data:     bus.WatchStarted{Dir: root},
		Critical: true,
	})
	w.log.Info().Msgf("Watching %s", root)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopped watching")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			s.handleEvent(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			w.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent routes a single fsnotify event to the debouncer
func (s *session) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	rel, ok := s.relative(event.Name)
	if !ok {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addDirRecursive(event.Name); err != nil {
				s.log.Warn().Err(err).Msgf("Failed to watch new directory: %s", event.Name)
			}

			return
		}
	}

	if s.matcher.Match(rel) {
		s.debouncer.Trigger(rel)
	}
}

// relative returns the slash-separated path below the watched root
func (s *session) relative(path string) (string, bool) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return pattern.Normalize(rel), true
}

// addDirRecursive adds a directory and all non-ignored subdirectories to the watch list
func (s *session) addDirRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if rel, ok := s.relative(path); ok && path != s.root {
			if strings.HasPrefix(entry.Name(), ".") || s.matcher.MatchDir(rel) {
				return filepath.SkipDir
			}
		}

		if err := s.fsWatcher.Add(path); err != nil {
			s.log.Warn().Err(err).Msgf("Failed to watch directory: %s", path)
		}

		return nil
	})
}

// isRelevantEvent returns true if the event may change the component set
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
