package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

func init() {
	logger = zap.NewNop().Sugar()
}

// Configure replaces the package logger. Production environments get JSON output.
func Configure(level string, environment string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if environment == "prod" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	logger = built.Sugar()
	return nil
}

// SetLogger installs an already constructed logger, mostly for tests
func SetLogger(l *zap.Logger) {
	logger = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Info(msg string, keysAndValues ...any) {
	logger.Infow(msg, keysAndValues...)
}

func Debug(msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	logger.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	logger.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered log entries
func Sync() {
	_ = logger.Sync()
}
