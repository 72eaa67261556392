package scenario

import (
	"fmt"
	"net/url"
	"strings"

	"dozzlecheck/internal/app/browser"
	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/expect"
	"dozzlecheck/internal/app/locator"
	"dozzlecheck/internal/config"
)

// Action names a step kind
type Action string

// Step actions
const (
	ActionGoto          Action = "goto"
	ActionClick         Action = "click"
	ActionPress         Action = "press"
	ActionExpectTitle   Action = "expect_title"
	ActionExpectURL     Action = "expect_url"
	ActionExpectVisible Action = "expect_visible"
)

// IsAssertion reports whether the action checks page state
func (a Action) IsAssertion() bool {
	return a == ActionExpectTitle || a == ActionExpectURL || a == ActionExpectVisible
}

func (a Action) known() bool {
	switch a {
	case ActionGoto, ActionClick, ActionPress, ActionExpectTitle, ActionExpectURL, ActionExpectVisible:
		return true
	}

	return false
}

// Step is one instruction of a scenario.
// Target is a url for goto, a selector for click, press and expect_visible,
// and a pattern for expect_title and expect_url. Value holds the keys for press.
type Step struct {
	Action Action
	Target string
	Value  string
}

func (s Step) String() string {
	if s.Value != "" {
		return fmt.Sprintf("%s %s %s", s.Action, s.Target, s.Value)
	}

	return fmt.Sprintf("%s %s", s.Action, s.Target)
}

// Scenario is a named, independent procedure run on its own page
type Scenario struct {
	Name   string
	Group  string
	Locale string
	Steps  []Step
}

// FullName joins group and name the way reports show them
func (s *Scenario) FullName() string {
	if s.Group == "" {
		return s.Name
	}

	return s.Group + " › " + s.Name
}

// Validate checks that every step can run
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", errors.ErrInvalidScenario)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: '%s' has no steps", errors.ErrInvalidScenario, s.Name)
	}

	if s.Steps[0].Action != ActionGoto {
		return fmt.Errorf("%w: '%s' must start with %s", errors.ErrInvalidScenario, s.Name, ActionGoto)
	}

	asserts := false

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("%w: '%s' step %d: %w", errors.ErrInvalidScenario, s.Name, i+1, err)
		}

		asserts = asserts || step.Action.IsAssertion()
	}

	if !asserts {
		return fmt.Errorf("%w: '%s' has no expectations", errors.ErrInvalidScenario, s.Name)
	}

	return nil
}

func (s Step) validate() error {
	if !s.Action.known() {
		return fmt.Errorf("%w: '%s'", errors.ErrUnknownAction, s.Action)
	}

	if strings.TrimSpace(s.Target) == "" {
		return fmt.Errorf("%s requires a target", s.Action)
	}

	switch s.Action {
	case ActionGoto:
		if _, err := url.Parse(s.Target); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrInvalidTargetURL, err)
		}
	case ActionClick, ActionExpectVisible:
		if _, err := locator.Parse(s.Target); err != nil {
			return err
		}
	case ActionPress:
		if _, err := locator.Parse(s.Target); err != nil {
			return err
		}

		if _, err := browser.ParseKeys(s.Value); err != nil {
			return err
		}
	case ActionExpectTitle, ActionExpectURL:
		if _, err := expect.Compile(s.Target); err != nil {
			return err
		}
	}

	return nil
}

// ValidateAll validates each scenario and rejects names used twice
func ValidateAll(scenarios []*Scenario) error {
	seen := make(map[string]bool, len(scenarios))

	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return err
		}

		key := s.FullName()
		if seen[key] {
			return fmt.Errorf("%w: '%s'", errors.ErrDuplicateScenario, key)
		}

		seen[key] = true
	}

	return nil
}

// ResolveURL resolves a goto target against the base url, keeping the base path prefix
func ResolveURL(base, target string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return "", fmt.Errorf("%w: '%s'", errors.ErrInvalidTargetURL, target)
	}

	if ref.IsAbs() {
		return ref.String(), nil
	}

	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: '%s'", errors.ErrInvalidTargetURL, base)
	}

	p := ref.Path
	if p == "" {
		p = "/"
	}

	resolved := u.JoinPath(p)
	resolved.RawQuery = ref.RawQuery
	resolved.Fragment = ref.Fragment

	return resolved.String(), nil
}

// FromConfig converts config-declared scenarios
func FromConfig(specs []*config.ScenarioSpec) []*Scenario {
	scenarios := make([]*Scenario, 0, len(specs))

	for _, spec := range specs {
		if spec == nil {
			continue
		}

		s := &Scenario{
			Name:   strings.TrimSpace(spec.Name),
			Group:  strings.TrimSpace(spec.Group),
			Locale: strings.TrimSpace(spec.Locale),
		}

		for _, step := range spec.Steps {
			if step == nil {
				continue
			}

			s.Steps = append(s.Steps, Step{
				Action: Action(strings.ToLower(strings.TrimSpace(step.Action))),
				Target: strings.TrimSpace(step.Target),
				Value:  strings.TrimSpace(step.Value),
			})
		}

		scenarios = append(scenarios, s)
	}

	return scenarios
}

// Spec converts a scenario back to its config form
func (s *Scenario) Spec() *config.ScenarioSpec {
	spec := &config.ScenarioSpec{
		Name:   s.Name,
		Group:  s.Group,
		Locale: s.Locale,
	}

	for _, step := range s.Steps {
		spec.Steps = append(spec.Steps, &config.StepSpec{
			Action: string(step.Action),
			Target: step.Target,
			Value:  step.Value,
		})
	}

	return spec
}

// Load returns the builtin scenarios followed by those declared in the config
func Load(cfg *config.Config, base string) ([]*Scenario, error) {
	scenarios := append(Builtin(base), FromConfig(cfg.Scenarios)...)

	for _, s := range scenarios {
		if s.Locale == "" {
			s.Locale = cfg.Locale
		}
	}

	if err := ValidateAll(scenarios); err != nil {
		return nil, err
	}

	return scenarios, nil
}
