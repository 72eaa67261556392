package registry

import (
	"fmt"
	"sort"
	"strings"

	"dozzlecheck/internal/app/errors"
)

// DefaultExport is the module export a component resolves to when none is given
const DefaultExport = "default"

// Component maps a symbolic UI element name to the module that implements it
type Component struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Export string `json:"export,omitempty" yaml:"export,omitempty"`
}

// IsIcon reports whether the component comes from an icon collection
func (c Component) IsIcon() bool {
	return strings.HasPrefix(c.Path, IconPrefix)
}

// Registry is a static set of uniquely named components
type Registry interface {
	Add(c Component) error
	Resolve(name string) (Component, bool)
	Components() []Component
	Len() int
}

// registry implements the Registry interface
type registry struct {
	entries map[string]Component
}

// New creates an empty registry
func New() Registry {
	return &registry{entries: make(map[string]Component)}
}

// FromComponents builds a registry, failing on the first invalid or conflicting entry
func FromComponents(components ...Component) (Registry, error) {
	r := New()

	for _, c := range components {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Add declares a component, re-adding an identical declaration is a no-op
func (r *registry) Add(c Component) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Path = strings.TrimSpace(c.Path)

	if c.Export == "" {
		c.Export = DefaultExport
	}

	if c.Name == "" || c.Path == "" {
		return fmt.Errorf("%w: name='%s' path='%s'", errors.ErrInvalidComponent, c.Name, c.Path)
	}

	if existing, ok := r.entries[c.Name]; ok {
		if existing == c {
			return nil
		}

		return fmt.Errorf("%w: '%s' is '%s' and '%s'", errors.ErrDuplicateComponent, c.Name, existing.Path, c.Path)
	}

	r.entries[c.Name] = c

	return nil
}

// Resolve returns the single component declared under name
func (r *registry) Resolve(name string) (Component, bool) {
	c, ok := r.entries[name]

	return c, ok
}

// Components returns every declared component ordered for generation
func (r *registry) Components() []Component {
	components := make([]Component, 0, len(r.entries))
	for _, c := range r.entries {
		components = append(components, c)
	}

	sort.Slice(components, func(i, j int) bool {
		a, b := strings.ToLower(components[i].Name), strings.ToLower(components[j].Name)
		if a != b {
			return a < b
		}

		return components[i].Name < components[j].Name
	})

	return components
}

// Len returns the number of declared components
func (r *registry) Len() int {
	return len(r.entries)
}
