package types

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's sugared logger so callers depend on this package, not
// on zap directly.
type Logger struct {
	*zap.SugaredLogger
}

// Log is the subset of a log entry handed to hooks.
type Log struct {
	Level   zapcore.Level
	Message string
}

// LogHook receives every entry written at or above the hook's level.
type LogHook func(log Log)
