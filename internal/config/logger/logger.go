package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"dozzlecheck/internal/config"
)

// Logger configuration constants
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
	FatalLevel = "fatal"
	PanicLevel = "panic"
	TraceLevel = "trace"

	ConsoleFormat = "console"
	JSONFormat    = "json"

	TimeFormat = "02.01.2006 15:04:05"
)

//go:generate mockgen -source=logger.go -destination=logger_mock.go -package=logger

// Logger interface for application logging
type Logger interface {
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	WithComponent(name string) Logger
	WithScenario(name string) Logger
}

// AppLogger represents a logger implementation using zerolog
type AppLogger struct {
	log zerolog.Logger
}

// NewLogger creates a new logger instance writing to stderr, keeping stdout for reports
func NewLogger(cfg *config.Config) Logger {
	return NewLoggerWithOutput(cfg, nil)
}

// NewNop creates a logger that discards everything
func NewNop() Logger {
	return &AppLogger{log: zerolog.Nop()}
}

// NewLoggerWithOutput creates a logger writing to out, or to stderr when out is nil
func NewLoggerWithOutput(cfg *config.Config, out io.Writer) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	output := out
	if output == nil {
		output = defaultOutput(cfg.Logging.Format)
	}

	log := zerolog.New(output).
		Level(getLogLevel(cfg.Logging.Level)).
		With().
		Timestamp().
		Str("app", config.AppName).
		Logger()

	return &AppLogger{log: log}
}

// defaultOutput picks raw JSON lines or a console writer, colored only on a terminal
func defaultOutput(format string) io.Writer {
	if format == JSONFormat {
		return os.Stderr
	}

	w := newConsoleWriter(os.Stderr)
	w.NoColor = !term.IsTerminal(os.Stderr.Fd())

	return w
}

// Debug returns a debug level Event for logging debug messages
func (l *AppLogger) Debug() *zerolog.Event {
	return l.log.Debug()
}

// Info returns an info level Event for logging informational messages
func (l *AppLogger) Info() *zerolog.Event {
	return l.log.Info()
}

// Warn returns a warn level Event for logging warning messages
func (l *AppLogger) Warn() *zerolog.Event {
	return l.log.Warn()
}

// Error returns an error level Event for logging error messages
func (l *AppLogger) Error() *zerolog.Event {
	return l.log.Error()
}

// WithComponent creates a new logger with a component name for contextual logging
func (l *AppLogger) WithComponent(name string) Logger {
	return &AppLogger{
		log: l.log.With().Str("component", name).Logger(),
	}
}

// WithScenario creates a new logger tagged with the scenario being executed
func (l *AppLogger) WithScenario(name string) Logger {
	return &AppLogger{
		log: l.log.With().Str("scenario", name).Logger(),
	}
}

// newConsoleWriter creates a console writer with component formatting
func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           out,
		TimeFormat:    TimeFormat,
		FieldsExclude: []string{"app"},
		FormatFieldName: func(i interface{}) string {
			if s, ok := i.(string); ok && (s == "component" || s == "scenario") {
				return ""
			}

			return fmt.Sprintf("%s=", i)
		},
		FormatPrepare: func(m map[string]interface{}) error {
			if component, ok := m["component"].(string); ok {
				m["component"] = fmt.Sprintf("[%s]", component)
			}

			if scenario, ok := m["scenario"].(string); ok {
				m["scenario"] = fmt.Sprintf("%q", scenario)
			}

			return nil
		},
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"component",
			zerolog.CallerFieldName,
			"scenario",
			zerolog.MessageFieldName,
		},
	}
}

// getLogLevel converts a config level, treating empty or unknown values as info
func getLogLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}

	return parsed
}
