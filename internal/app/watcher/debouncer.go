package watcher

import (
	"sort"
	"sync"
	"time"
)

// maxWaitFactor bounds how long a continuous stream of saves can postpone regeneration
const maxWaitFactor = 10

// Debouncer coalesces bursts of file events into a single callback once they settle
type Debouncer interface {
	Trigger(file string)
	Stop()
}

// debouncer collects changed paths on its own goroutine, so callbacks never overlap
type debouncer struct {
	quiet    time.Duration
	maxWait  time.Duration
	callback func(files []string)
	events   chan string
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewDebouncer creates a debouncer firing after quiet without events, or at the latest after ten quiet periods
func NewDebouncer(quiet time.Duration, callback func(files []string)) Debouncer {
	d := &debouncer{
		quiet:    quiet,
		maxWait:  quiet * maxWaitFactor,
		callback: callback,
		events:   make(chan string),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go d.loop()

	return d
}

// Trigger records a changed file, ignored once stopped
func (d *debouncer) Trigger(file string) {
	select {
	case d.events <- file:
	case <-d.stop:
	}
}

// Stop drops pending changes and waits for a running callback to return
func (d *debouncer) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	<-d.done
}

func (d *debouncer) loop() {
	defer close(d.done)

	pending := make(map[string]struct{})

	var settled, deadline <-chan time.Time

	for {
		select {
		case <-d.stop:
			return
		case file := <-d.events:
			if len(pending) == 0 {
				deadline = time.After(d.maxWait)
			}

			pending[file] = struct{}{}
			settled = time.After(d.quiet)

			continue
		case <-settled:
		case <-deadline:
		}

		d.flush(pending)

		pending = make(map[string]struct{})
		settled, deadline = nil, nil
	}
}

// flush hands the sorted batch to the callback unless a stop raced it
func (d *debouncer) flush(pending map[string]struct{}) {
	select {
	case <-d.stop:
		return
	default:
	}

	files := make([]string, 0, len(pending))
	for f := range pending {
		files = append(files, f)
	}

	sort.Strings(files)
	d.callback(files)
}
