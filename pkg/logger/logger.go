// Package logger creates the component loggers used across CertMe.
package logger

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AbsaOSS/CertMe/pkg/constants"
)

// CallerHook implements zerolog.Hook interface.
type CallerHook struct{}

// Run adds additional context
func (h CallerHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if _, file, line, ok := runtime.Caller(3); ok {
		e.Str("file", fmt.Sprintf("%s:%d", path.Base(file), line))
	}
}

// New creates a new zerolog.Logger
func New(component string) zerolog.Logger {
	l := log.With().Str("component", component).Logger().Hook(CallerHook{})
	if os.Getenv(constants.EnvVarHumanReadableLogMessages) == "true" {
		return l.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return l.Output(os.Stderr)
}

// SetLogLevel sets the global logging level
func SetLogLevel(verbosity string) error {
	switch strings.ToLower(verbosity) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)

	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)

	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)

	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)

	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)

	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)

	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

	default:
		return fmt.Errorf("Invalid log level '%s' specified. Please specify one of %v", verbosity, AllowedLevels)
	}
	return nil
}

// AllowedLevels lists the verbosity values accepted by SetLogLevel.
var AllowedLevels = []string{"debug", "info", "warn", "error", "fatal", "panic", "disabled", "trace"}

// Configure applies the verbosity, with debug taking precedence over it.
func Configure(verbosity string, debug bool) error {
	if debug {
		verbosity = "debug"
	}
	return SetLogLevel(verbosity)
}
