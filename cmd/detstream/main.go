// Command detstream evaluates an ensemble of trained density estimation
// trees against a line-oriented stream of query points.
//
// Configuration is taken from flags; two environment variables are also
// honored:
//   - DETSTREAM_WORKERS: concurrent model evaluations per query
//   - DETSTREAM_LOG_LEVEL: logrus level for diagnostics (default "warning")
package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/thejonan/detstream"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates invalid command line arguments.
	ExitInvalidArgs = 2

	// ExitNoModels indicates that no model file could be loaded.
	ExitNoModels = 3

	// ExitIOError indicates the query source or estimate sink could
	// not be opened.
	ExitIOError = 4
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level := logrus.WarnLevel
	if env := os.Getenv("DETSTREAM_LOG_LEVEL"); env != "" {
		if parsed, err := logrus.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)

	cmd := detstream.NewCommand(detstream.WithLogger(&logrusLogger{log}))
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, detstream.ErrNoModels):
		return ExitNoModels
	case errors.Is(err, detstream.ErrOpenInput):
		return ExitIOError
	case errors.Is(err, detstream.ErrOpenOutput):
		return ExitIOError
	default:
		return ExitGeneralError
	}
}

// logrusLogger adapts a logrus.Logger to the detstream.Logger interface.
type logrusLogger struct {
	log *logrus.Logger
}

func (l *logrusLogger) Debug(msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).Error(msg)
}

// fields pairs up key-value arguments; a trailing unpaired value is
// recorded under "arg".
func fields(keysAndValues []any) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		f[key] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 == 1 {
		f["arg"] = keysAndValues[len(keysAndValues)-1]
	}
	return f
}
