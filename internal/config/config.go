package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"dozzlecheck/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Target struct {
		URL       string `mapstructure:"url" yaml:"url"`
		Readiness struct {
			Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
			Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
			Interval time.Duration `mapstructure:"interval" yaml:"interval"`
		} `mapstructure:"readiness" yaml:"readiness"`
	} `mapstructure:"target" yaml:"target"`
	Browser struct {
		ExecPath  string `mapstructure:"exec_path" yaml:"exec_path"`
		RemoteURL string `mapstructure:"remote_url" yaml:"remote_url"`
		Headless  bool   `mapstructure:"headless" yaml:"headless"`
		Width     int    `mapstructure:"width" yaml:"width"`
		Height    int    `mapstructure:"height" yaml:"height"`
	} `mapstructure:"browser" yaml:"browser"`
	Expect struct {
		Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
		Interval          time.Duration `mapstructure:"interval" yaml:"interval"`
		NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	} `mapstructure:"expect" yaml:"expect"`
	Concurrency struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"concurrency" yaml:"concurrency"`
	Locale     string          `mapstructure:"locale" yaml:"locale"`
	Scenarios  []*ScenarioSpec `mapstructure:"scenarios" yaml:"scenarios"`
	Components struct {
		Dir             string        `mapstructure:"dir" yaml:"dir"`
		Output          string        `mapstructure:"output" yaml:"output"`
		Include         []string      `mapstructure:"include" yaml:"include"`
		Ignore          []string      `mapstructure:"ignore" yaml:"ignore"`
		IconCollections []string      `mapstructure:"icon_collections" yaml:"icon_collections"`
		Debounce        time.Duration `mapstructure:"debounce" yaml:"debounce"`
	} `mapstructure:"components" yaml:"components"`
	Report struct {
		JSON      string `mapstructure:"json" yaml:"json"`
		SentryDSN string `mapstructure:"sentry_dsn" yaml:"sentry_dsn"`
	} `mapstructure:"report" yaml:"report"`
	Logging struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"logging" yaml:"logging"`
}

// ScenarioSpec represents a user-declared scenario in the config file
type ScenarioSpec struct {
	Name   string      `mapstructure:"name" yaml:"name"`
	Group  string      `mapstructure:"group" yaml:"group,omitempty"`
	Locale string      `mapstructure:"locale" yaml:"locale,omitempty"`
	Steps  []*StepSpec `mapstructure:"steps" yaml:"steps"`
}

// StepSpec represents a single step of a user-declared scenario
type StepSpec struct {
	Action string `mapstructure:"action" yaml:"action"`
	Target string `mapstructure:"target" yaml:"target,omitempty"`
	Value  string `mapstructure:"value" yaml:"value,omitempty"`
}

// envKeys lists config keys that can be overridden from the environment
var envKeys = []string{
	"target.url",
	"target.readiness.enabled",
	"browser.exec_path",
	"browser.remote_url",
	"browser.headless",
	"concurrency.workers",
	"locale",
	"components.dir",
	"components.output",
	"report.json",
	"report.sentry_dsn",
	"logging.level",
	"logging.format",
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Target.URL = DefaultTargetURL
	cfg.Target.Readiness.Enabled = true
	cfg.Target.Readiness.Timeout = DefaultReadinessTimeout
	cfg.Target.Readiness.Interval = DefaultReadinessInterval

	cfg.Browser.Headless = true
	cfg.Browser.Width = DefaultWindowWidth
	cfg.Browser.Height = DefaultWindowHeight

	cfg.Expect.Timeout = DefaultExpectTimeout
	cfg.Expect.Interval = DefaultExpectInterval
	cfg.Expect.NavigationTimeout = DefaultNavigationTimeout

	cfg.Concurrency.Workers = MaxWorkers

	cfg.Components.Dir = DefaultComponentsDir
	cfg.Components.Output = DefaultComponentsOutput
	cfg.Components.Include = append([]string(nil), DefaultComponentInclude...)
	cfg.Components.Ignore = append([]string(nil), DefaultComponentIgnore...)
	cfg.Components.IconCollections = append([]string(nil), DefaultIconCollections...)
	cfg.Components.Debounce = DefaultWatchDebounce

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	return cfg
}

// Path returns the config file path from the environment or the default name
func Path() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	return ConfigFile
}

// Load loads the configuration from the given file, the environment and an optional .env file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(EnvFile); err == nil {
		if err := godotenv.Load(EnvFile); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
		}
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ErrFailedToReadConfig
	}

	if err == nil {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToParseConfig
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateTarget(); err != nil {
		return err
	}

	if err := c.validateExpect(); err != nil {
		return err
	}

	if c.Concurrency.Workers <= 0 {
		return errors.ErrInvalidConcurrencyWorkers
	}

	if c.Components.Output == "" {
		return errors.ErrComponentsOutputRequired
	}

	return nil
}

// validateTarget validates the application under test settings
func (c *Config) validateTarget() error {
	if c.Target.URL == "" {
		return errors.ErrTargetURLRequired
	}

	u, err := url.Parse(c.Target.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: '%s'", errors.ErrInvalidTargetURL, c.Target.URL)
	}

	if c.Target.Readiness.Enabled && (c.Target.Readiness.Timeout <= 0 || c.Target.Readiness.Interval <= 0) {
		return errors.ErrInvalidReadinessTimeout
	}

	return nil
}

// validateExpect validates assertion timing
func (c *Config) validateExpect() error {
	if c.Expect.Timeout <= 0 {
		return errors.ErrInvalidExpectTimeout
	}

	if c.Expect.Interval <= 0 || c.Expect.Interval >= c.Expect.Timeout {
		return errors.ErrInvalidExpectInterval
	}

	if c.Expect.NavigationTimeout <= 0 {
		c.Expect.NavigationTimeout = DefaultNavigationTimeout
	}

	return nil
}

// normalize trims values that users commonly decorate
func (c *Config) normalize() {
	c.Target.URL = strings.TrimRight(strings.TrimSpace(c.Target.URL), "/")
	c.Locale = strings.TrimSpace(c.Locale)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if c.Components.Debounce <= 0 {
		c.Components.Debounce = DefaultWatchDebounce
	}
}
