package locator

import (
	"fmt"
	"regexp"
	"strings"

	"dozzlecheck/internal/app/errors"
)

// Kind identifies the engine resolving a selector step
type Kind string

const (
	KindRole        Kind = "role"
	KindText        Kind = "text"
	KindPlaceholder Kind = "placeholder"
	KindCSS         Kind = "css"
)

const chainSeparator = ">>"

var (
	rolePattern   = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	enginePattern = regexp.MustCompile(`^([a-z]+)=`)
)

// Step is one link of a selector chain
type Step struct {
	Kind  Kind
	Value string
	// Name is the accessible name filter of a role step
	Name    string
	HasName bool
	// Exact is set when a text or placeholder value was quoted
	Exact bool
}

// Locator is a chain of steps, each resolved inside the previous step's match
type Locator struct {
	Steps []Step
}

// Parse parses selectors such as 'role=link[name="Settings"]' or 'css=.modal >> placeholder=Search'
func Parse(selector string) (Locator, error) {
	parts, err := splitChain(selector)
	if err != nil {
		return Locator{}, err
	}

	steps := make([]Step, 0, len(parts))

	for _, part := range parts {
		step, err := parseStep(part)
		if err != nil {
			return Locator{}, fmt.Errorf("%w: '%s': %w", errors.ErrInvalidSelector, selector, err)
		}

		steps = append(steps, step)
	}

	return Locator{Steps: steps}, nil
}

// MustParse is like Parse but panics on error
func MustParse(selector string) Locator {
	l, err := Parse(selector)
	if err != nil {
		panic(err)
	}

	return l
}

// String returns the canonical form of the locator
func (l Locator) String() string {
	parts := make([]string, 0, len(l.Steps))
	for _, s := range l.Steps {
		parts = append(parts, s.String())
	}

	return strings.Join(parts, " "+chainSeparator+" ")
}

// String returns the canonical form of the step
func (s Step) String() string {
	switch s.Kind {
	case KindRole:
		if s.HasName {
			return fmt.Sprintf("role=%s[name=%s]", s.Value, quote(s.Name))
		}

		return "role=" + s.Value
	case KindText, KindPlaceholder:
		if s.Exact {
			return string(s.Kind) + "=" + quote(s.Value)
		}

		return string(s.Kind) + "=" + s.Value
	default:
		return "css=" + s.Value
	}
}

// splitChain splits on '>>' outside of quotes and brackets
func splitChain(selector string) ([]string, error) {
	var (
		parts   []string
		current strings.Builder
		quoteCh rune
		escaped bool
		depth   int
	)

	runes := []rune(selector)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case escaped:
			escaped = false
		case quoteCh != 0 && r == '\\':
			escaped = true
		case quoteCh != 0:
			if r == quoteCh {
				quoteCh = 0
			}
		case (r == '"' || r == '\'') && opensQuote(runes, i):
			quoteCh = r
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0 && r == '>' && i+1 < len(runes) && runes[i+1] == '>':
			parts = append(parts, current.String())
			current.Reset()
			i++

			continue
		}

		current.WriteRune(r)
	}

	if quoteCh != 0 {
		return nil, fmt.Errorf("%w: '%s': unterminated quote", errors.ErrInvalidSelector, selector)
	}

	parts = append(parts, current.String())

	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil, fmt.Errorf("%w: '%s': empty step", errors.ErrInvalidSelector, selector)
		}
	}

	return parts, nil
}

// opensQuote reports whether a quote at i starts a quoted value rather than being an apostrophe
func opensQuote(runes []rune, i int) bool {
	if i == 0 {
		return true
	}

	return strings.ContainsRune("=([, ", runes[i-1])
}

func parseStep(part string) (Step, error) {
	engine := ""
	value := part

	if m := enginePattern.FindStringSubmatch(part); m != nil {
		switch Kind(m[1]) {
		case KindRole, KindText, KindPlaceholder, KindCSS:
			engine = m[1]
			value = strings.TrimSpace(part[len(m[0]):])
		}
	}

	if value == "" {
		return Step{}, fmt.Errorf("empty %s value", engine)
	}

	switch Kind(engine) {
	case KindRole:
		return parseRole(value)
	case KindText, KindPlaceholder:
		text, exact, err := unquote(value)
		if err != nil {
			return Step{}, err
		}

		return Step{Kind: Kind(engine), Value: text, Exact: exact}, nil
	default:
		return Step{Kind: KindCSS, Value: value}, nil
	}
}

// parseRole parses 'link' or 'link[name="Settings"]'
func parseRole(value string) (Step, error) {
	role, attrs, hasAttrs := strings.Cut(value, "[")
	role = strings.TrimSpace(role)

	if !rolePattern.MatchString(role) {
		return Step{}, fmt.Errorf("invalid role '%s'", role)
	}

	step := Step{Kind: KindRole, Value: role}

	if !hasAttrs {
		return step, nil
	}

	if !strings.HasSuffix(attrs, "]") {
		return Step{}, fmt.Errorf("unterminated role attribute")
	}

	key, raw, ok := strings.Cut(strings.TrimSuffix(attrs, "]"), "=")
	if !ok || strings.TrimSpace(key) != "name" {
		return Step{}, fmt.Errorf("unsupported role attribute '%s'", attrs)
	}

	name, quoted, err := unquote(strings.TrimSpace(raw))
	if err != nil {
		return Step{}, err
	}

	if !quoted {
		return Step{}, fmt.Errorf("role name must be quoted")
	}

	step.Name = name
	step.HasName = true

	return step, nil
}

// unquote strips matching quotes and backslash escapes, reporting whether the value was quoted
func unquote(value string) (string, bool, error) {
	if value == "" || (value[0] != '"' && value[0] != '\'') {
		return value, false, nil
	}

	q := value[0]

	var b strings.Builder

	escaped := false

	for i := 1; i < len(value); i++ {
		c := value[i]

		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == q:
			if i != len(value)-1 {
				return "", false, fmt.Errorf("unexpected text after quoted value")
			}

			return b.String(), true, nil
		default:
			b.WriteByte(c)
		}
	}

	return "", false, fmt.Errorf("unterminated quote")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	return `"` + r.Replace(s) + `"`
}
