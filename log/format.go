//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package log

import (
	"fmt"
	"strings"
)

// Format is a logging format. It implements the pflag.Value
// interface.
type Format uint

// Logging formats.
const (
	FmtLogfmt Format = iota
	FmtJSON
)

func (f *Format) String() string {
	switch *f {
	case FmtLogfmt:
		return "logfmt"
	case FmtJSON:
		return "json"
	default:
		return fmt.Sprintf("{Format %d}", uint(*f))
	}
}

// Set sets the format from its name.
func (f *Format) Set(s string) error {
	switch strings.ToLower(s) {
	case "logfmt", "":
		*f = FmtLogfmt
	case "json":
		*f = FmtJSON
	default:
		return fmt.Errorf("log: invalid log format: '%s'", s)
	}
	return nil
}

// Type returns the list of supported formats.
func (f *Format) Type() string {
	return "[logfmt,json]"
}

// Level is a logging level. It implements the pflag.Value interface.
type Level uint

// Logging levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l *Level) String() string {
	switch *l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("{Level %d}", uint(*l))
	}
}

// Set sets the level from its name.
func (l *Level) Set(s string) error {
	switch strings.ToLower(s) {
	case "debug":
		*l = LevelDebug
	case "info", "":
		*l = LevelInfo
	case "warn":
		*l = LevelWarn
	case "error":
		*l = LevelError
	default:
		return fmt.Errorf("log: invalid log level: '%s'", s)
	}
	return nil
}

// Type returns the list of supported levels.
func (l *Level) Type() string {
	return "[debug,info,warn,error]"
}
