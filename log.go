/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "go.uber.org/zap"

// Level names the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is the structured logging sink the engine reports through.
// Every call is a single line with an even number of key/value pairs
// trailing the message, e.g. Log(LevelDebug, "proposed", "epoch", 3).
type Logger interface {
	Log(level Level, msg string, keysAndValues ...interface{})
}

// NopLogger discards everything. It is the zero-value default so that
// constructing an Engine never requires wiring up logging.
type NopLogger struct{}

func (NopLogger) Log(Level, string, ...interface{}) {}

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface.
type ZapLogger struct {
	S *zap.SugaredLogger
}

// NewZapLogger wraps l as a Logger.
func NewZapLogger(l *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{S: l}
}

func (z *ZapLogger) Log(level Level, msg string, keysAndValues ...interface{}) {
	switch level {
	case LevelDebug:
		z.S.Debugw(msg, keysAndValues...)
	case LevelInfo:
		z.S.Infow(msg, keysAndValues...)
	case LevelWarn:
		z.S.Warnw(msg, keysAndValues...)
	case LevelError:
		z.S.Errorw(msg, keysAndValues...)
	default:
		z.S.Infow(msg, keysAndValues...)
	}
}
