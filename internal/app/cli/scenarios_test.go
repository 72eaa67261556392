package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/config"
)

func Test_Scenarios(t *testing.T) {
	f := newFixture(t)
	f.cli.cfg.Scenarios = []*config.ScenarioSpec{
		{
			Name: "logs page",
			Steps: []*config.StepSpec{
				{Action: "goto", Target: "/"},
				{Action: "expect_visible", Target: "css=main"},
			},
		},
	}

	code, err := f.execute("scenarios", "--url", "http://localhost:3100/")

	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)

	var doc scenariosDocument
	require.NoError(t, yaml.Unmarshal(f.out.Bytes(), &doc))
	require.Len(t, doc.Scenarios, 6)

	assert.Equal(t, "has right title", doc.Scenarios[0].Name)
	assert.Equal(t, "goto", doc.Scenarios[0].Steps[0].Action)
	assert.Equal(t, "http://localhost:3100/", doc.Scenarios[0].Steps[0].Target)
	assert.Equal(t, "es", doc.Scenarios[4].Locale)
	assert.Equal(t, "logs page", doc.Scenarios[5].Name)
}

func Test_Scenarios_Invalid(t *testing.T) {
	f := newFixture(t)
	f.cli.cfg.Scenarios = []*config.ScenarioSpec{{Name: "broken", Steps: []*config.StepSpec{{Action: "fly"}}}}

	code, err := f.execute("scenarios")

	assert.ErrorIs(t, err, errors.ErrInvalidScenario)
	assert.Equal(t, ExitFailed, code)
}
