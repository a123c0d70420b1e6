//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package prg implements the process-local pseudo-random generator
// of a protocol party.
package prg

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// SeedSize defines the PRG seed size in bytes.
const SeedSize = chacha20.KeySize + chacha20.NonceSize

// PRG implements a ChaCha20 keystream generator. It implements
// io.Reader and is safe for concurrent use.
type PRG struct {
	m      sync.Mutex
	cipher *chacha20.Cipher
	zeros  []byte
}

// New creates a new PRG seeded from the entropy source.
func New(entropy io.Reader) (*PRG, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(entropy, seed[:]); err != nil {
		return nil, fmt.Errorf("prg: seed: %w", err)
	}
	return NewFromSeed(seed[:])
}

// NewFromSeed creates a deterministic PRG from the seed.
func NewFromSeed(seed []byte) (*PRG, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("prg: invalid seed size %d, expected %d",
			len(seed), SeedSize)
	}
	c, err := chacha20.NewUnauthenticatedCipher(seed[:chacha20.KeySize],
		seed[chacha20.KeySize:])
	if err != nil {
		return nil, err
	}
	return &PRG{
		cipher: c,
	}, nil
}

// Read fills p with keystream bytes. It never fails.
func (prg *PRG) Read(p []byte) (int, error) {
	prg.m.Lock()
	defer prg.m.Unlock()

	if len(prg.zeros) < len(p) {
		prg.zeros = make([]byte, len(p))
	}
	// XOR of zeros gives the keystream.
	prg.cipher.XORKeyStream(p, prg.zeros[:len(p)])

	return len(p), nil
}
