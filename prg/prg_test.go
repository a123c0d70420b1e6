//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	seed := make([]byte, SeedSize)
	seed[0] = 42

	p0, err := NewFromSeed(seed)
	require.NoError(t, err)
	p1, err := NewFromSeed(seed)
	require.NoError(t, err)

	a := make([]byte, 100)
	b := make([]byte, 100)
	_, _ = p0.Read(a)
	_, _ = p1.Read(b)
	require.Equal(t, a, b)

	// The generator advances.
	c := make([]byte, 100)
	_, _ = p0.Read(c)
	require.NotEqual(t, a, c)
}

func TestSeeds(t *testing.T) {
	p0, err := New(rand.Reader)
	require.NoError(t, err)
	p1, err := New(rand.Reader)
	require.NoError(t, err)

	a := make([]byte, 64)
	b := make([]byte, 64)
	_, _ = p0.Read(a)
	_, _ = p1.Read(b)
	require.NotEqual(t, a, b)

	_, err = New(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)

	_, err = NewFromSeed([]byte{1})
	require.Error(t, err)
}

func BenchmarkPRG1K(b *testing.B) {
	benchmarkPRG(b, 1000)
}

func BenchmarkPRG100K(b *testing.B) {
	benchmarkPRG(b, 100000)
}

func benchmarkPRG(b *testing.B, n int) {
	p, err := New(rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	out := make([]byte, n)
	for b.Loop() {
		p.Read(out)
	}
}
