//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements the global environment of a protocol party.
package env

import (
	"crypto/rand"
	"io"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/markkurossi/fantastic4/log"
)

// Config defines the global configuration of a protocol party. It
// configures the operation of all modules of the party. Config must
// not be modified after being passed to any module. It is safe for
// concurrent use by multiple modules as they do not modify it.
type Config struct {
	// Rand is the source of entropy for seeding the party PRG.
	Rand io.Reader

	// Logger receives protocol and network logging.
	Logger *log.Logger

	// Workers limits the number of goroutines used for per-element
	// work. Zero selects runtime.GOMAXPROCS(0).
	Workers int

	// Registerer receives the party metrics. Metrics are not
	// registered if Registerer is nil.
	Registerer prometheus.Registerer
}

// GetRandom returns the source of entropy for seeding PRGs.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetLogger returns the configured logger or a no-op logger.
func (config *Config) GetLogger() *log.Logger {
	if config != nil && config.Logger != nil {
		return config.Logger
	}
	return log.NewNopLogger()
}

// GetWorkers returns the per-element worker limit.
func (config *Config) GetWorkers() int {
	if config != nil && config.Workers > 0 {
		return config.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// GetRegisterer returns the metrics registerer or nil.
func (config *Config) GetRegisterer() prometheus.Registerer {
	if config == nil {
		return nil
	}
	return config.Registerer
}
