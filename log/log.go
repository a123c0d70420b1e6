//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package log implements leveled structured logging.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is a structured logger.
type Logger struct {
	logger log.Logger
	level  Level
	module string
}

// NewDefaultLogger creates a logfmt logger to standard error at the
// info level.
func NewDefaultLogger(module string) *Logger {
	logger, err := NewLogger(module, os.Stderr, FmtLogfmt, LevelInfo)
	if err != nil {
		panic(err)
	}
	return logger
}

// NewNopLogger creates a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{
		logger: log.NewNopLogger(),
		level:  LevelError + 1,
	}
}

// NewLogger creates a new logger.
func NewLogger(module string, w io.Writer, format Format, lvl Level) (
	*Logger, error) {

	var logger log.Logger
	switch format {
	case FmtLogfmt:
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case FmtJSON:
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("log: unsupported log format: %v", format)
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	return &Logger{
		logger: logger,
		level:  lvl,
		module: module,
	}, nil
}

func (l *Logger) log(lvl Level, msg string, keyvals []interface{}) {
	if l.level > lvl {
		return
	}
	keyvals = append([]interface{}{"module", l.module, "msg", msg},
		keyvals...)

	var logger log.Logger
	switch lvl {
	case LevelDebug:
		logger = level.Debug(l.logger)
	case LevelInfo:
		logger = level.Info(l.logger)
	case LevelWarn:
		logger = level.Warn(l.logger)
	default:
		logger = level.Error(l.logger)
	}
	_ = logger.Log(keyvals...)
}

// Debug logs the message and key value pairs at the debug level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.log(LevelDebug, msg, keyvals)
}

// Info logs the message and key value pairs at the info level.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.log(LevelInfo, msg, keyvals)
}

// Warn logs the message and key value pairs at the warn level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.log(LevelWarn, msg, keyvals)
}

// Error logs the message and key value pairs at the error level.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.log(LevelError, msg, keyvals)
}

// With returns a clone of the logger with the key value pairs added
// to all subsequent messages.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{
		logger: log.With(l.logger, keyvals...),
		level:  l.level,
		module: l.module,
	}
}

// WithModule returns a clone of the logger for the module.
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{
		logger: l.logger,
		level:  l.level,
		module: module,
	}
}

// Level returns the logging level.
func (l *Logger) Level() Level {
	return l.level
}
