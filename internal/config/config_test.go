package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/app/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultTargetURL, cfg.Target.URL)
	assert.True(t, cfg.Target.Readiness.Enabled)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, DefaultExpectTimeout, cfg.Expect.Timeout)
	assert.Equal(t, DefaultExpectInterval, cfg.Expect.Interval)
	assert.Equal(t, MaxWorkers, cfg.Concurrency.Workers)
	assert.Equal(t, DefaultComponentsOutput, cfg.Components.Output)
	assert.Equal(t, DefaultIconCollections, cfg.Components.IconCollections)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func Test_DefaultConfig_Independent(t *testing.T) {
	a := DefaultConfig()
	a.Components.IconCollections[0] = "changed"

	b := DefaultConfig()
	assert.Equal(t, "carbon", b.Components.IconCollections[0])
}

func Test_Load(t *testing.T) {
	tests := []struct {
		name   string
		path   func(t *testing.T) string
		error  error
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "no config file found - uses default",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultTargetURL, cfg.Target.URL)
			},
		},
		{
			name: "valid config file",
			path: func(t *testing.T) string {
				return writeConfig(t, `target:
  url: http://localhost:3100/
  readiness:
    enabled: false
expect:
  timeout: 2s
  interval: 50ms
concurrency:
  workers: 1
scenarios:
  - name: logs page
    steps:
      - action: goto
        target: /
      - action: expect_visible
        target: css=main
logging:
  level: debug
  format: json
`)
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:3100", cfg.Target.URL)
				assert.False(t, cfg.Target.Readiness.Enabled)
				assert.Equal(t, 2*time.Second, cfg.Expect.Timeout)
				assert.Equal(t, 50*time.Millisecond, cfg.Expect.Interval)
				assert.Equal(t, 1, cfg.Concurrency.Workers)
				require.Len(t, cfg.Scenarios, 1)
				assert.Equal(t, "logs page", cfg.Scenarios[0].Name)
				require.Len(t, cfg.Scenarios[0].Steps, 2)
				assert.Equal(t, "expect_visible", cfg.Scenarios[0].Steps[1].Action)
				assert.Equal(t, "css=main", cfg.Scenarios[0].Steps[1].Target)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "invalid yaml",
			path: func(t *testing.T) string {
				return writeConfig(t, "target: [unterminated\n")
			},
			error: errors.ErrFailedToParseConfig,
		},
		{
			name: "invalid yaml structure for unmarshal",
			path: func(t *testing.T) string {
				return writeConfig(t, "scenarios: \"this should be a list\"\n")
			},
			error: errors.ErrFailedToParseConfig,
		},
		{
			name: "config directory instead of file",
			path: func(t *testing.T) string {
				return t.TempDir()
			},
			error: errors.ErrFailedToReadConfig,
		},
		{
			name: "invalid values",
			path: func(t *testing.T) string {
				return writeConfig(t, "concurrency:\n  workers: 0\n")
			},
			error: errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path(t))

			if tt.error != nil {
				assert.ErrorIs(t, err, tt.error)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.verify != nil {
				tt.verify(t, cfg)
			}
		})
	}
}

func Test_Load_EnvOverrides(t *testing.T) {
	t.Setenv("DOZZLECHECK_TARGET_URL", "https://logs.example.com")
	t.Setenv("DOZZLECHECK_CONCURRENCY_WORKERS", "2")
	t.Setenv("DOZZLECHECK_BROWSER_HEADLESS", "false")
	t.Setenv("DOZZLECHECK_LOCALE", "de")

	path := writeConfig(t, "target:\n  url: http://ignored:8080\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://logs.example.com", cfg.Target.URL)
	assert.Equal(t, 2, cfg.Concurrency.Workers)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "de", cfg.Locale)
}

func Test_Path(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		assert.Equal(t, ConfigFile, Path())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv(EnvConfig, "/etc/dozzlecheck.yaml")
		assert.Equal(t, "/etc/dozzlecheck.yaml", Path())
	})
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		error  error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:   "missing target url",
			mutate: func(cfg *Config) { cfg.Target.URL = "" },
			error:  errors.ErrTargetURLRequired,
		},
		{
			name:   "relative target url",
			mutate: func(cfg *Config) { cfg.Target.URL = "/dozzle" },
			error:  errors.ErrInvalidTargetURL,
		},
		{
			name:   "unsupported scheme",
			mutate: func(cfg *Config) { cfg.Target.URL = "ftp://dozzle" },
			error:  errors.ErrInvalidTargetURL,
		},
		{
			name:   "zero readiness interval",
			mutate: func(cfg *Config) { cfg.Target.Readiness.Interval = 0 },
			error:  errors.ErrInvalidReadinessTimeout,
		},
		{
			name: "zero readiness ignored when disabled",
			mutate: func(cfg *Config) {
				cfg.Target.Readiness.Enabled = false
				cfg.Target.Readiness.Timeout = 0
			},
		},
		{
			name:   "zero expect timeout",
			mutate: func(cfg *Config) { cfg.Expect.Timeout = 0 },
			error:  errors.ErrInvalidExpectTimeout,
		},
		{
			name:   "interval not below timeout",
			mutate: func(cfg *Config) { cfg.Expect.Interval = cfg.Expect.Timeout },
			error:  errors.ErrInvalidExpectInterval,
		},
		{
			name:   "negative workers",
			mutate: func(cfg *Config) { cfg.Concurrency.Workers = -1 },
			error:  errors.ErrInvalidConcurrencyWorkers,
		},
		{
			name:   "missing components output",
			mutate: func(cfg *Config) { cfg.Components.Output = "" },
			error:  errors.ErrComponentsOutputRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.error != nil {
				assert.ErrorIs(t, err, tt.error)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
