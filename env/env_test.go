//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"bytes"
	"crypto/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var config *Config
	require.Equal(t, rand.Reader, config.GetRandom())
	require.NotNil(t, config.GetLogger())
	require.Equal(t, runtime.GOMAXPROCS(0), config.GetWorkers())
	require.Nil(t, config.GetRegisterer())

	config = &Config{
		Rand:    bytes.NewReader(nil),
		Workers: 3,
	}
	require.NotEqual(t, rand.Reader, config.GetRandom())
	require.Equal(t, 3, config.GetWorkers())
}
