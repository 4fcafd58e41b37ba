// Package logger provides the process-wide structured logger. Call sites use
// the package-level printf-style helpers; Initialize selects the level once
// flags have been parsed.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = newLogger(false)

// Initialize replaces the default logger. verbose enables debug-level
// output.
func Initialize(verbose bool) {
	log = newLogger(verbose)
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// The static config above cannot fail to build; fall back to a
		// no-op logger rather than panicking in a logging path.
		return zap.NewNop().Sugar()
	}
	return built.Sugar()
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// Fatalf logs at error level and exits the process.
func Fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}
