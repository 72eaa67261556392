package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// MessageType represents the type of message
type MessageType string

// Event types
const (
	EventSuiteStarted       MessageType = "suite_started"
	EventSuiteFinished      MessageType = "suite_finished"
	EventPreflightStarted   MessageType = "preflight_started"
	EventPreflightKill      MessageType = "preflight_kill"
	EventPreflightComplete  MessageType = "preflight_complete"
	EventTargetWaiting      MessageType = "target_waiting"
	EventTargetReady        MessageType = "target_ready"
	EventScenarioStarted    MessageType = "scenario_started"
	EventStepDone           MessageType = "step_done"
	EventScenarioPassed     MessageType = "scenario_passed"
	EventScenarioFailed     MessageType = "scenario_failed"
	EventScenarioSkipped    MessageType = "scenario_skipped"
	EventWatchStarted       MessageType = "watch_started"
	EventWatchTriggered     MessageType = "watch_triggered"
	EventDeclarationWritten MessageType = "declaration_written"
	EventSignal             MessageType = "signal"
)

// Message represents a bus message
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// SuiteStarted announces the selected scenarios of a run
type SuiteStarted struct {
	Target    string
	Scenarios []ScenarioEvent
	Workers   int
}

// SuiteFinished summarises a completed run
type SuiteFinished struct {
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// PreflightStarted indicates the orphan scan has begun
type PreflightStarted struct {
	Marker string
}

// PreflightKill indicates an orphaned browser was killed during preflight
type PreflightKill struct {
	Name string
	PID  int
}

// PreflightComplete indicates the preflight scan has finished
type PreflightComplete struct {
	Killed int
}

// TargetWaiting indicates the runner is polling the application healthcheck
type TargetWaiting struct {
	URL string
}

// TargetReady indicates the application answered its healthcheck
type TargetReady struct {
	URL      string
	Version  string
	Duration time.Duration
}

// ScenarioEvent is the base struct for scenario-related events
type ScenarioEvent struct {
	Scenario string
	Group    string
}

// Key identifies the scenario across events of one run
func (e ScenarioEvent) Key() string {
	return e.Group + "\x00" + e.Scenario
}

// ScenarioStarted indicates a scenario acquired a worker and a page
type ScenarioStarted struct {
	ScenarioEvent
	Steps int
}

// StepDone indicates a scenario step completed successfully
type StepDone struct {
	ScenarioEvent
	Index    int
	Total    int
	Action   string
	Duration time.Duration
}

// ScenarioPassed indicates every step of a scenario succeeded
type ScenarioPassed struct {
	ScenarioEvent
	Duration time.Duration
}

// ScenarioFailed indicates a scenario stopped at a failing step
type ScenarioFailed struct {
	ScenarioEvent
	Step     int
	Error    error
	Duration time.Duration
}

// ScenarioSkipped indicates a scenario never ran
type ScenarioSkipped struct {
	ScenarioEvent
	Reason string
}

// WatchStarted indicates the component watcher is active
type WatchStarted struct {
	Dir string
}

// WatchTriggered indicates file changes settled after debouncing
type WatchTriggered struct {
	ChangedFiles []string
}

// DeclarationWritten indicates the component declaration file was regenerated
type DeclarationWritten struct {
	Path       string
	Components int
	Changed    bool
}

// Signal contains information about a received OS signal
type Signal struct {
	Name string
}

// Bus handles pub/sub messaging
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

// subscription is one subscriber channel with its pending critical deliveries
type subscription struct {
	ch      chan Message
	done    chan struct{}
	pending sync.WaitGroup
}

// deliver queues msg without blocking, falling back to a background send for critical messages
func (s *subscription) deliver(msg Message) {
	select {
	case s.ch <- msg:
		return
	default:
	}

	if !msg.Critical {
		return
	}

	s.pending.Add(1)

	go func() {
		defer s.pending.Done()

		select {
		case s.ch <- msg:
		case <-s.done:
		}
	}()
}

// shutdown releases pending senders before closing the channel
func (s *subscription) shutdown() {
	close(s.done)
	s.pending.Wait()
	close(s.ch)
}

// bus fans every published message out to all live subscriptions
type bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*subscription
	closed bool
	buffer int
	log    logger.Logger
}

// New creates a new Bus
func New(log logger.Logger) Bus {
	return &bus{
		subs:   make(map[uint64]*subscription),
		buffer: config.BusBufferSize,
		log:    log,
	}
}

// Subscribe registers a channel that stays open until ctx ends or the bus closes
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	sub := &subscription{
		ch:   make(chan Message, b.buffer),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		return sub.ch
	}

	b.nextID++
	id := b.nextID
	b.subs[id] = sub

	go func() {
		select {
		case <-ctx.Done():
			b.remove(id)
		case <-sub.done:
		}
	}()

	return sub.ch
}

// Publish stamps msg and hands it to every subscription
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for _, sub := range b.subs {
		sub.deliver(msg)
	}
}

// Close shuts down every subscription; later publishes are dropped
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.shutdown()
	}
}

func (b *bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		sub.shutdown()
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case SuiteStarted:
		return fmt.Sprintf("{target: %s, scenarios: %d, workers: %d}", d.Target, len(d.Scenarios), d.Workers)
	case SuiteFinished:
		return fmt.Sprintf("{passed: %d, failed: %d, skipped: %d, duration: %s}", d.Passed, d.Failed, d.Skipped, d.Duration)
	case PreflightStarted:
		return fmt.Sprintf("{marker: %s}", d.Marker)
	case PreflightKill:
		return fmt.Sprintf("{pid: %d, name: %s}", d.PID, d.Name)
	case PreflightComplete:
		return fmt.Sprintf("{killed: %d}", d.Killed)
	case TargetWaiting:
		return fmt.Sprintf("{url: %s}", d.URL)
	case TargetReady:
		return fmt.Sprintf("{url: %s, version: %s}", d.URL, d.Version)
	case ScenarioStarted:
		return fmt.Sprintf("{scenario: %s, steps: %d}", d.Scenario, d.Steps)
	case StepDone:
		return fmt.Sprintf("{scenario: %s, step: %d/%d, action: %s}", d.Scenario, d.Index, d.Total, d.Action)
	case ScenarioPassed:
		return fmt.Sprintf("{scenario: %s, duration: %s}", d.Scenario, d.Duration)
	case ScenarioFailed:
		return fmt.Sprintf("{scenario: %s, step: %d, error: %v}", d.Scenario, d.Step, d.Error)
	case ScenarioSkipped:
		return fmt.Sprintf("{scenario: %s, reason: %s}", d.Scenario, d.Reason)
	case WatchStarted:
		return fmt.Sprintf("{dir: %s}", d.Dir)
	case WatchTriggered:
		return fmt.Sprintf("{files: %v}", d.ChangedFiles)
	case DeclarationWritten:
		return fmt.Sprintf("{path: %s, components: %d, changed: %t}", d.Path, d.Components, d.Changed)
	case Signal:
		return fmt.Sprintf("{signal: %s}", d.Name)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus for when messaging is disabled
func NoOp() Bus {
	return &noOpBus{}
}

// noOpBus implements Bus interface with no-op methods for testing
type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}
