//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/stretchr/testify/require"

	"github.com/markkurossi/fantastic4/ring"
)

const exampleYAML = `
party:
  rank: 2
  peers:
    - 127.0.0.1:8040
    - 127.0.0.1:8041
    - 127.0.0.1:8042
    - 127.0.0.1:8043
  session: 7d444840-9dc0-11d1-b245-5ffdce74fad2
  field: FM64
input:
  owner: 1
  values: ["42", "0x10"]
  public: ["1", "-1"]
log:
  format: json
  level: debug
metrics:
  pull_endpoint: localhost:9090
`

func TestInitConfig(t *testing.T) {
	cfg, err := initConfig(rawbytes.Provider([]byte(exampleYAML)))
	require.NoError(t, err)

	require.Equal(t, 2, cfg.Party.Rank)
	require.Len(t, cfg.Party.Peers, 4)
	require.Equal(t, "127.0.0.1:8043", cfg.Party.Peers[3])
	require.Equal(t, ring.FM64, cfg.Party.RingField())
	require.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		cfg.Party.SessionID().String())

	require.Equal(t, &InputConfig{
		Owner:  1,
		Values: []string{"42", "0x10"},
		Public: []string{"1", "-1"},
	}, cfg.Input)
	require.Equal(t, &LogConfig{Format: "json", Level: "debug"}, cfg.Log)
	require.Equal(t, "localhost:9090", cfg.Metrics.PullEndpoint)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("F4_PARTY__RANK", "3")
	t.Setenv("F4_PARTY__FIELD", "FM128")

	dir := t.TempDir()
	path := filepath.Join(dir, "party.yml")
	require.NoError(t, os.WriteFile(path, []byte(exampleYAML), 0o600))

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Party.Rank)
	require.Equal(t, ring.FM128, cfg.Party.RingField())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := initConfig(rawbytes.Provider([]byte(exampleYAML)))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"no party", func(cfg *Config) { cfg.Party = nil }},
		{"rank", func(cfg *Config) { cfg.Party.Rank = 4 }},
		{"peers", func(cfg *Config) { cfg.Party.Peers = cfg.Party.Peers[:3] }},
		{"empty peer", func(cfg *Config) { cfg.Party.Peers[0] = "" }},
		{"session", func(cfg *Config) { cfg.Party.Session = "session-1" }},
		{"field", func(cfg *Config) { cfg.Party.Field = "FM16" }},
		{"owner", func(cfg *Config) { cfg.Input.Owner = -1 }},
		{"public", func(cfg *Config) { cfg.Input.Public = nil }},
		{"values", func(cfg *Config) { cfg.Input.Values = []string{"1"} }},
		{"log format", func(cfg *Config) { cfg.Log.Format = "xml" }},
		{"log level", func(cfg *Config) { cfg.Log.Level = "trace" }},
		{"metrics", func(cfg *Config) { cfg.Metrics.PullEndpoint = "" }},
	}
	for _, test := range tests {
		cfg := valid()
		test.modify(cfg)
		require.Error(t, cfg.Validate(), test.name)
	}
	require.NoError(t, valid().Validate())

	_, err := InitConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
