/*
Package logx wraps zerolog for the linewatch service.

It initializes the global logger (human-readable console output in development,
JSON in production) and exposes small level helpers so callers do not have to
thread a logger through every function.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the process-wide zerolog instance.
// Development mode switches to the colored ConsoleWriter at Debug level;
// anything else logs JSON at Info level. All entries carry a timestamp and caller.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns the global zerolog.Logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// pairs drops a trailing unmatched field so zerolog never sees an odd key/value list.
func pairs(fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().Int("fields_count", len(fields)).Msg("logx called with odd number of fields; last field dropped")
		return fields[:len(fields)-1]
	}
	return fields
}

// Info logs at Info level with optional key/value fields.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Warn logs at Warn level with optional key/value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Error logs err at Error level with optional key/value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Fatal logs err at Fatal level and exits the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}
