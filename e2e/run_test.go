package e2e

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBrowser(t *testing.T) {
	t.Helper()

	if os.Getenv("DOZZLECHECK_BROWSER") != "1" {
		t.Skip("set DOZZLECHECK_BROWSER=1 to run browser tests")
	}
}

func Test_Run_BuiltinScenarios(t *testing.T) {
	requireBrowser(t)

	runner := NewRunner(t)
	server := newDozzle(t)

	code, err := runner.Run(2*time.Minute, "run", "--no-ui", "--url", server.URL, "--workers", "2")
	require.NoError(t, err)

	output := runner.Output()
	assert.Equal(t, 0, code, output)
	assert.Contains(t, output, "has right title")
	assert.Contains(t, output, "translated text")
	assert.Contains(t, output, "5 passed")
}

func Test_Run_Grep(t *testing.T) {
	requireBrowser(t)

	runner := NewRunner(t)
	server := newDozzle(t)

	code, err := runner.Run(time.Minute, "run", "--no-ui", "--url", server.URL, "--grep", "title")
	require.NoError(t, err)

	output := runner.Output()
	assert.Equal(t, 0, code, output)
	assert.Contains(t, output, "1 passed")
	assert.NotContains(t, output, "route by name")
}

func Test_Run_FailingScenarioWritesReport(t *testing.T) {
	requireBrowser(t)

	runner := NewRunner(t)
	server := newDozzle(t)

	runner.WriteFile("dozzlecheck.yaml", `expect:
  timeout: 1s
  interval: 50ms
report:
  json: report.json
scenarios:
  - name: missing log panel
    steps:
      - action: goto
        target: /
      - action: expect_visible
        target: css=.log-panel
`)

	code, err := runner.Run(time.Minute, "run", "--no-ui", "--url", server.URL, "--grep", "log panel")
	require.NoError(t, err)

	assert.Equal(t, 1, code, runner.Output())
	assert.Contains(t, runner.Output(), "1 failed")
	assert.Contains(t, runner.ReadFile("report.json"), "missing log panel")
}

func Test_Run_TargetNotReady(t *testing.T) {
	runner := NewRunner(t)

	runner.WriteFile("dozzlecheck.yaml", `target:
  readiness:
    timeout: 500ms
    interval: 100ms
`)

	code, err := runner.Run(time.Minute, "run", "--no-ui", "--url", "http://127.0.0.1:1")
	require.NoError(t, err)

	assert.Equal(t, 1, code)
	assert.Contains(t, runner.Output(), "skipped")
}
