package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. Levels follow LOG_LEVEL (debug, info, warn,
// error); anything else means info. "debug" also switches to the console
// encoder for local runs.
func New(level, service, version string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", service), zap.String("version", version)), nil
}

// Must is New for mains: it falls back to a production logger instead of
// failing.
func Must(level, service, version string) *zap.Logger {
	l, err := New(level, service, version)
	if err != nil {
		return zap.Must(zap.NewProduction())
	}
	return l
}
