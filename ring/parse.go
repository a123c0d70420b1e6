//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"fmt"
	"math/big"
)

var mask64 = new(big.Int).SetUint64(^uint64(0))

// Parse parses the integer s and reduces it modulo 2^k. The string
// may use the 0x, 0o, and 0b base prefixes. Negative values wrap
// around.
func Parse[E comparable](r Ring[E], s string) (E, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return r.Zero(), fmt.Errorf("ring: invalid element '%s'", s)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(r.Field().Bits()))
	v.Mod(v, mod)

	lo := new(big.Int).And(v, mask64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()

	result := r.FromUint64(hi)
	for i := 0; i < 64 && hi != 0; i++ {
		result = r.Add(result, result)
	}
	return r.Add(result, r.FromUint64(lo)), nil
}

// ParseAll parses the integers in values.
func ParseAll[E comparable](r Ring[E], values []string) ([]E, error) {
	result := make([]E, len(values))
	for i, s := range values {
		v, err := Parse(r, s)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}
