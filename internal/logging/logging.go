// Package logging provides the structured logger used across the service.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the minimal logging interface used across packages.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

// New builds a zap-backed Logger. Format "json" selects the production
// encoder; anything else selects the development encoder.
func New(levelStr, format string) Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, _ := cfg.Build()
	return &wrapper{l: l}
}

// NewTestLogger creates a Logger that writes through testing.T.
func NewTestLogger(t testing.TB) Logger {
	return &wrapper{l: zaptest.NewLogger(t)}
}

// NewNop creates a Logger that discards everything.
func NewNop() Logger {
	return &wrapper{l: zap.NewNop()}
}

type wrapper struct {
	l *zap.Logger
}

func (w *wrapper) Debug(msg string, fields ...zap.Field) { w.l.Debug(msg, fields...) }
func (w *wrapper) Info(msg string, fields ...zap.Field)  { w.l.Info(msg, fields...) }
func (w *wrapper) Warn(msg string, fields ...zap.Field)  { w.l.Warn(msg, fields...) }
func (w *wrapper) Error(msg string, fields ...zap.Field) { w.l.Error(msg, fields...) }

func (w *wrapper) With(fields ...zap.Field) Logger {
	return &wrapper{l: w.l.With(fields...)}
}
