package scenario

import (
	"context"
	"fmt"
	"time"

	"dozzlecheck/internal/app/browser"
	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/expect"
	"dozzlecheck/internal/app/locator"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// StepResult reports a completed step
type StepResult struct {
	Index    int
	Total    int
	Step     Step
	Duration time.Duration
}

// StepError wraps the error of the step that stopped a scenario
type StepError struct {
	Index int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Executor runs the steps of one scenario on a page
//
//go:generate mockgen -source=executor.go -destination=executor_mock.go -package=scenario
type Executor interface {
	Execute(ctx context.Context, page browser.Page, s *Scenario, base string, onStep func(StepResult)) error
}

type executor struct {
	expect *expect.Expect
	log    logger.Logger
}

// NewExecutor creates an executor using the configured expectation timing
func NewExecutor(cfg *config.Config, log logger.Logger) Executor {
	return &executor{
		expect: expect.NewFromConfig(cfg),
		log:    log.WithComponent("SCENARIO"),
	}
}

// Execute runs steps in order and stops at the first failure
func (e *executor) Execute(ctx context.Context, page browser.Page, s *Scenario, base string, onStep func(StepResult)) error {
	log := e.log.WithScenario(s.FullName())
	machine := newRunFSM(s.FullName(), log)
	total := len(s.Steps)

	for i, step := range s.Steps {
		index := i + 1

		if err := transition(ctx, machine, eventFor(step.Action)); err != nil {
			return &StepError{Index: index, Step: step, Err: err}
		}

		started := time.Now()

		if err := e.step(ctx, page, step, base); err != nil {
			_ = transition(ctx, machine, Fail)
			log.Debug().Err(err).Msgf("Step %d/%d failed", index, total)

			return &StepError{Index: index, Step: step, Err: err}
		}

		if onStep != nil {
			onStep(StepResult{Index: index, Total: total, Step: step, Duration: time.Since(started)})
		}
	}

	if err := transition(ctx, machine, Pass); err != nil {
		return err
	}

	if machine.Current() != Passed {
		return fmt.Errorf("%w: '%s' ended in state %s", errors.ErrInvalidScenario, s.FullName(), machine.Current())
	}

	return nil
}

func (e *executor) step(ctx context.Context, page browser.Page, step Step, base string) error {
	switch step.Action {
	case ActionGoto:
		target, err := ResolveURL(base, step.Target)
		if err != nil {
			return err
		}

		return page.Goto(ctx, target)
	case ActionClick:
		loc, err := locator.Parse(step.Target)
		if err != nil {
			return err
		}

		return e.expect.Until(ctx, fmt.Sprintf("click '%s'", loc), func(ctx context.Context) error {
			return page.Click(ctx, loc)
		})
	case ActionPress:
		loc, err := locator.Parse(step.Target)
		if err != nil {
			return err
		}

		return e.expect.Until(ctx, fmt.Sprintf("press %s on '%s'", step.Value, loc), func(ctx context.Context) error {
			return page.Press(ctx, loc, step.Value)
		})
	case ActionExpectTitle:
		return e.expect.ToHaveTitle(ctx, page, step.Target)
	case ActionExpectURL:
		return e.expect.ToHaveURL(ctx, page, step.Target)
	case ActionExpectVisible:
		loc, err := locator.Parse(step.Target)
		if err != nil {
			return err
		}

		return e.expect.ToBeVisible(ctx, page, loc)
	default:
		return fmt.Errorf("%w: '%s'", errors.ErrUnknownAction, step.Action)
	}
}
