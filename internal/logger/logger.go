// Package logger configures the process-wide zap logger. Initialize is
// called once from main; everything else logs through Log.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared structured logger. It defaults to a no-op logger so
// packages can log safely in tests without calling Initialize.
var Log = zap.NewNop()

// Initialize replaces Log with a production logger at the given level.
// Level strings follow zap ("debug", "info", "warn", "error").
func Initialize(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}
