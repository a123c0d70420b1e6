//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"math/big"
	"math/bits"
)

// Uint128 implements a 128-bit unsigned integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// U128 creates an Uint128 from the uint64 value.
func U128(v uint64) Uint128 {
	return Uint128{
		Lo: v,
	}
}

// Add returns a+b mod 2^128.
func (a Uint128) Add(b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{
		Hi: hi,
		Lo: lo,
	}
}

// Sub returns a-b mod 2^128.
func (a Uint128) Sub(b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{
		Hi: hi,
		Lo: lo,
	}
}

// Neg returns -a mod 2^128.
func (a Uint128) Neg() Uint128 {
	return Uint128{}.Sub(a)
}

// Big returns the value as big.Int.
func (a Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(a.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(a.Lo))
}

func (a Uint128) String() string {
	return a.Big().String()
}
