package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrTargetURLRequired         = errors.New("target url is required")
	ErrInvalidTargetURL          = errors.New("target url must be an absolute http(s) url")
	ErrInvalidConcurrencyWorkers = errors.New("concurrency workers must be greater than zero")
	ErrInvalidExpectTimeout      = errors.New("expect timeout must be greater than zero")
	ErrInvalidExpectInterval     = errors.New("expect interval must be greater than zero and below the timeout")
	ErrInvalidReadinessTimeout   = errors.New("readiness timeout and interval must be greater than zero")
	ErrComponentsOutputRequired  = errors.New("components output path is required")

	ErrInvalidComponent      = errors.New("component requires a name and a path")
	ErrDuplicateComponent    = errors.New("component declared with conflicting paths")
	ErrComponentsDirNotExist = errors.New("components directory does not exist")
	ErrDeclarationExists     = errors.New("declaration file exists and was not generated by dozzlecheck")
	ErrDeclarationStale      = errors.New("declaration file is out of date")

	ErrInvalidSelector   = errors.New("invalid selector")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrElementNotFound   = errors.New("element not found")
	ErrInvalidKeyCombo   = errors.New("invalid key combination")
	ErrBrowserNotReady   = errors.New("browser is not available")
	ErrPageCreateFailed  = errors.New("failed to create page")
	ErrFailedToStopGroup = errors.New("failed to stop browser process group")

	ErrInvalidScenario   = errors.New("invalid scenario")
	ErrUnknownAction     = errors.New("unknown step action")
	ErrDuplicateScenario = errors.New("duplicate scenario name")
	ErrNoScenarios       = errors.New("no scenarios selected")

	ErrReadinessCheckFailed = errors.New("readiness check failed")
	ErrUnexpectedStatus     = errors.New("unexpected response status")

	ErrSuiteFailed           = errors.New("one or more scenarios failed")
	ErrFailedToAcquireWorker = errors.New("failed to acquire worker")
	ErrUnknownCommand        = errors.New("unknown command")
	ErrFailedToWriteReport   = errors.New("failed to write report")
	ErrFailedToSendReport    = errors.New("failed to send report")
)

var (
	As   = errors.As
	Is   = errors.Is
	New  = errors.New
	Join = errors.Join
)
