package scenario

import (
	"context"

	"github.com/looplab/fsm"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/config/logger"
)

// FSM states
const (
	Idle        = "idle"
	Navigating  = "navigating"
	Interacting = "interacting"
	Asserting   = "asserting"
	Passed      = "passed"
	Failed      = "failed"
)

// FSM events
const (
	Navigate = "navigate"
	Interact = "interact"
	Assert   = "assert"
	Pass     = "pass"
	Fail     = "fail"
)

var active = []string{Navigating, Interacting, Asserting}

// newRunFSM creates the state machine tracking one scenario run
func newRunFSM(name string, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Navigate, Src: append([]string{Idle}, active...), Dst: Navigating},
			{Name: Interact, Src: active, Dst: Interacting},
			{Name: Assert, Src: active, Dst: Asserting},
			{Name: Pass, Src: active, Dst: Passed},
			{Name: Fail, Src: append([]string{Idle}, active...), Dst: Failed},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("STATE %s: %s → %s (trigger: %s)", name, e.Src, e.Dst, e.Event)
			},
		},
	)
}

// eventFor maps a step action to the transition it triggers
func eventFor(action Action) string {
	switch {
	case action == ActionGoto:
		return Navigate
	case action.IsAssertion():
		return Assert
	default:
		return Interact
	}
}

// transition fires the event, treating a self transition as a no-op
func transition(ctx context.Context, machine *fsm.FSM, event string) error {
	err := machine.Event(ctx, event)
	if err == nil {
		return nil
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}

	return err
}
