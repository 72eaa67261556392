package cli

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"dozzlecheck/internal/app/scenario"
	"dozzlecheck/internal/config"
)

// scenariosDocument is the YAML layout of the scenarios command, matching the config file
type scenariosDocument struct {
	Scenarios []*config.ScenarioSpec `yaml:"scenarios"`
}

// handleScenarios prints the builtin and configured scenarios with targets resolved
func (c *cli) handleScenarios(url string) error {
	base := strings.TrimRight(url, "/")
	if base == "" {
		base = c.cfg.Target.URL
	}

	scenarios, err := scenario.Load(c.cfg, base)
	if err != nil {
		return err
	}

	doc := scenariosDocument{Scenarios: make([]*config.ScenarioSpec, 0, len(scenarios))}
	for _, s := range scenarios {
		doc.Scenarios = append(doc.Scenarios, s.Spec())
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode scenarios: %w", err)
	}

	_, err = c.out.Write(out)

	return err
}
