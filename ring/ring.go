//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Ring implements the arithmetic of Z/2^kZ for elements of type E.
type Ring[E comparable] interface {
	// Field returns the ring width.
	Field() Field

	// Zero returns the additive identity.
	Zero() E

	// Add returns a+b.
	Add(a, b E) E

	// Sub returns a-b.
	Sub(a, b E) E

	// Neg returns -a.
	Neg(a E) E

	// FromUint64 maps v into the ring.
	FromUint64(v uint64) E

	// Encode encodes src into dst in little-endian byte order. The
	// dst must have room for len(src)*Field().Bytes() bytes.
	Encode(dst []byte, src []E)

	// Decode decodes dst from the little-endian encoding src.
	Decode(dst []E, src []byte) error
}

// Rings for the supported fields.
var (
	Z2k32  = Native[uint32]{field: FM32}
	Z2k64  = Native[uint64]{field: FM64}
	Z2k128 = Wide{}
)

var (
	_ Ring[uint32]  = Z2k32
	_ Ring[uint64]  = Z2k64
	_ Ring[Uint128] = Z2k128
)

// Native implements rings whose elements are native Go unsigned
// integers.
type Native[T constraints.Unsigned] struct {
	field Field
}

// Field implements Ring.Field.
func (r Native[T]) Field() Field {
	return r.field
}

// Zero implements Ring.Zero.
func (r Native[T]) Zero() T {
	return 0
}

// Add implements Ring.Add.
func (r Native[T]) Add(a, b T) T {
	return a + b
}

// Sub implements Ring.Sub.
func (r Native[T]) Sub(a, b T) T {
	return a - b
}

// Neg implements Ring.Neg.
func (r Native[T]) Neg(a T) T {
	return -a
}

// FromUint64 implements Ring.FromUint64.
func (r Native[T]) FromUint64(v uint64) T {
	return T(v)
}

// Encode implements Ring.Encode.
func (r Native[T]) Encode(dst []byte, src []T) {
	switch r.field {
	case FM32:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], uint32(v))
		}
	default:
		for i, v := range src {
			binary.LittleEndian.PutUint64(dst[i*8:], uint64(v))
		}
	}
}

// Decode implements Ring.Decode.
func (r Native[T]) Decode(dst []T, src []byte) error {
	size := r.field.Bytes()
	if len(src) != len(dst)*size {
		return fmt.Errorf("ring: %s: invalid encoding: got %d bytes, expected %d",
			r.field, len(src), len(dst)*size)
	}
	switch r.field {
	case FM32:
		for i := range dst {
			dst[i] = T(binary.LittleEndian.Uint32(src[i*4:]))
		}
	default:
		for i := range dst {
			dst[i] = T(binary.LittleEndian.Uint64(src[i*8:]))
		}
	}
	return nil
}

// Wide implements the 128-bit ring.
type Wide struct{}

// Field implements Ring.Field.
func (r Wide) Field() Field {
	return FM128
}

// Zero implements Ring.Zero.
func (r Wide) Zero() Uint128 {
	return Uint128{}
}

// Add implements Ring.Add.
func (r Wide) Add(a, b Uint128) Uint128 {
	return a.Add(b)
}

// Sub implements Ring.Sub.
func (r Wide) Sub(a, b Uint128) Uint128 {
	return a.Sub(b)
}

// Neg implements Ring.Neg.
func (r Wide) Neg(a Uint128) Uint128 {
	return a.Neg()
}

// FromUint64 implements Ring.FromUint64.
func (r Wide) FromUint64(v uint64) Uint128 {
	return U128(v)
}

// Encode implements Ring.Encode. The low word is encoded first.
func (r Wide) Encode(dst []byte, src []Uint128) {
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[i*16:], v.Lo)
		binary.LittleEndian.PutUint64(dst[i*16+8:], v.Hi)
	}
}

// Decode implements Ring.Decode.
func (r Wide) Decode(dst []Uint128, src []byte) error {
	if len(src) != len(dst)*16 {
		return fmt.Errorf("ring: FM128: invalid encoding: got %d bytes, expected %d",
			len(src), len(dst)*16)
	}
	for i := range dst {
		dst[i].Lo = binary.LittleEndian.Uint64(src[i*16:])
		dst[i].Hi = binary.LittleEndian.Uint64(src[i*16+8:])
	}
	return nil
}

// Marshal encodes the elements into a newly allocated buffer.
func Marshal[E comparable](r Ring[E], src []E) []byte {
	buf := make([]byte, len(src)*r.Field().Bytes())
	r.Encode(buf, src)
	return buf
}

// Unmarshal decodes n elements from the buffer.
func Unmarshal[E comparable](r Ring[E], src []byte, n int) ([]E, error) {
	dst := make([]E, n)
	if err := r.Decode(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
