// Package logger wraps zap configuration behind a small helper.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the configured zap logger.
type Logger struct {
	// Log is the underlying zap logger, nil until Init is called.
	Log *zap.Logger
}

// New returns an uninitialized Logger.
func New() *Logger {
	return &Logger{}
}

// Init builds a production zap logger at the given level ("Debug", "Info",
// "Warn", "Error"). Unknown levels default to Info.
func (l *Logger) Init(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
