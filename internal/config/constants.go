package config

import "time"

// app constants
const (
	AppName        = "dozzlecheck"
	AppDescription = "acceptance checks and component declarations for the Dozzle log viewer"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	Version = "0.1.0"
)

// config file constants
const (
	ConfigFile = "dozzlecheck.yaml"
	EnvFile    = ".env"
	EnvPrefix  = "DOZZLECHECK"
	EnvConfig  = "DOZZLECHECK_CONFIG"
)

// target constants
const (
	DefaultTargetURL = "http://dozzle:8080"

	HealthcheckPath = "healthcheck"
	VersionPath     = "version"

	DefaultReadinessTimeout  = 30 * time.Second
	DefaultReadinessInterval = 500 * time.Millisecond
)

// browser constants
const (
	BrowserMarkerFlag = "dozzlecheck-browser"

	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// expect constants
const (
	DefaultExpectTimeout      = 5 * time.Second
	DefaultExpectInterval     = 100 * time.Millisecond
	DefaultNavigationTimeout  = 30 * time.Second
	DefaultPageCloseTimeout   = 5 * time.Second
	DefaultBrowserStopTimeout = 10 * time.Second
	BrowserGroupStopTimeout   = 2 * time.Second
)

// concurrency constants
const (
	MaxWorkers = 3

	BusBufferSize = 256
)

// ui constants
const (
	UIStopTimeout = 2 * time.Second
)

// preflight constants
const (
	PreFlightKillTimeout = 3 * time.Second
)

// components constants
const (
	DefaultComponentsDir    = "assets"
	DefaultComponentsOutput = "assets/components.d.ts"
	DefaultWatchDebounce    = 300 * time.Millisecond
)

// DefaultComponentInclude lists globs (relative to the components dir) declaring components
var DefaultComponentInclude = []string{"components/**/*.vue"}

// DefaultComponentIgnore lists globs excluded from scanning and watching
var DefaultComponentIgnore = []string{"node_modules/**", "dist/**", "**/*.spec.*"}

// DefaultIconCollections lists icon set prefixes recognised in templates
var DefaultIconCollections = []string{"carbon", "cil", "mdi", "mdi-light", "octicon"}
