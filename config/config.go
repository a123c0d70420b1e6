//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package config implements the configuration of a protocol party.
package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/markkurossi/fantastic4/log"
	"github.com/markkurossi/fantastic4/ring"
)

// EnvPrefix is the prefix of configuration environment variables.
// The `__` separates hierarchy levels, e.g. F4_PARTY__RANK.
const EnvPrefix = "F4_"

// NumParties defines the number of party addresses.
const NumParties = 4

// Config contains the party configuration.
type Config struct {
	Party   *PartyConfig   `koanf:"party"`
	Input   *InputConfig   `koanf:"input"`
	Log     *LogConfig     `koanf:"log"`
	Metrics *MetricsConfig `koanf:"metrics"`
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if cfg.Party == nil {
		return fmt.Errorf("party: missing configuration")
	}
	if err := cfg.Party.Validate(); err != nil {
		return fmt.Errorf("party: %w", err)
	}
	if cfg.Input != nil {
		if err := cfg.Input.Validate(); err != nil {
			return fmt.Errorf("input: %w", err)
		}
	}
	if cfg.Log != nil {
		if err := cfg.Log.Validate(); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}
	if cfg.Metrics != nil {
		if err := cfg.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	return nil
}

// PartyConfig contains the network identity of the party.
type PartyConfig struct {
	// Rank is the rank of this party.
	Rank int `koanf:"rank"`

	// Peers lists the network addresses of all parties by rank.
	Peers []string `koanf:"peers"`

	// Session identifies the protocol run. All parties must use the
	// same session.
	Session string `koanf:"session"`

	// Field is the ring width: FM32, FM64, or FM128.
	Field string `koanf:"field"`
}

// Validate validates the party configuration.
func (cfg *PartyConfig) Validate() error {
	if cfg.Rank < 0 || cfg.Rank >= NumParties {
		return fmt.Errorf("invalid rank %d", cfg.Rank)
	}
	if len(cfg.Peers) != NumParties {
		return fmt.Errorf("expected %d peers, got %d", NumParties,
			len(cfg.Peers))
	}
	for idx, peer := range cfg.Peers {
		if peer == "" {
			return fmt.Errorf("peer %d: missing address", idx)
		}
	}
	if _, err := uuid.Parse(cfg.Session); err != nil {
		return fmt.Errorf("malformed session '%s': %w", cfg.Session, err)
	}
	_, err := ring.ParseField(cfg.Field)
	return err
}

// SessionID returns the session UUID.
func (cfg *PartyConfig) SessionID() uuid.UUID {
	return uuid.MustParse(cfg.Session)
}

// RingField returns the configured ring width.
func (cfg *PartyConfig) RingField() ring.Field {
	f, err := ring.ParseField(cfg.Field)
	if err != nil {
		return ring.FMInvalid
	}
	return f
}

// InputConfig contains the inputs of the party pipeline.
type InputConfig struct {
	// Owner is the rank of the party holding the private values.
	Owner int `koanf:"owner"`

	// Values holds the private values. They are only used by the
	// owner.
	Values []string `koanf:"values"`

	// Public holds the public values known to all parties.
	Public []string `koanf:"public"`
}

// Validate validates the input configuration.
func (cfg *InputConfig) Validate() error {
	if cfg.Owner < 0 || cfg.Owner >= NumParties {
		return fmt.Errorf("invalid owner %d", cfg.Owner)
	}
	if len(cfg.Public) == 0 {
		return fmt.Errorf("no public values")
	}
	if len(cfg.Values) != 0 && len(cfg.Values) != len(cfg.Public) {
		return fmt.Errorf("%d values and %d public values",
			len(cfg.Values), len(cfg.Public))
	}
	return nil
}

// LogConfig contains the logging configuration.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// Validate validates the logging configuration.
func (cfg *LogConfig) Validate() error {
	var format log.Format
	if err := format.Set(cfg.Format); err != nil {
		return err
	}
	var level log.Level
	return level.Set(cfg.Level)
}

// MetricsConfig contains the metrics configuration.
type MetricsConfig struct {
	PullEndpoint string `koanf:"pull_endpoint"`
}

// Validate validates the metrics configuration.
func (cfg *MetricsConfig) Validate() error {
	if cfg.PullEndpoint == "" {
		return fmt.Errorf("malformed Prometheus pull endpoint '%s'",
			cfg.PullEndpoint)
	}
	return nil
}

// InitConfig initializes configuration from file.
func InitConfig(f string) (*Config, error) {
	return initConfig(file.Provider(f))
}

func initConfig(p koanf.Provider) (*Config, error) {
	var config Config
	k := koanf.New(".")

	// Load configuration from the yaml config.
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, err
	}

	// Load environment variables and merge into the loaded config.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
