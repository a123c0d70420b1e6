//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package ring implements arithmetic in the rings Z/2^kZ that carry
// secret shares.
package ring

import (
	"fmt"
	"strings"
)

// Field specifies the ring width. Arithmetic is performed modulo
// 2^Bits with natural wraparound.
type Field uint8

// Supported ring widths.
const (
	FMInvalid Field = iota
	FM32
	FM64
	FM128
)

// Fields lists all supported ring widths.
var Fields = []Field{FM32, FM64, FM128}

var fieldNames = map[Field]string{
	FM32:  "FM32",
	FM64:  "FM64",
	FM128: "FM128",
}

func (f Field) String() string {
	name, ok := fieldNames[f]
	if ok {
		return name
	}
	return fmt.Sprintf("{Field %d}", uint8(f))
}

// Valid tests if the field is one of the supported ring widths.
func (f Field) Valid() bool {
	_, ok := fieldNames[f]
	return ok
}

// Bits returns the ring width k in bits.
func (f Field) Bits() int {
	switch f {
	case FM32:
		return 32
	case FM64:
		return 64
	case FM128:
		return 128
	default:
		return 0
	}
}

// Bytes returns the encoded size of one ring element.
func (f Field) Bytes() int {
	return f.Bits() / 8
}

// ParseField parses the field name. Both the symbolic names (FM64)
// and plain bit widths (64) are accepted.
func ParseField(s string) (Field, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FM32", "32":
		return FM32, nil
	case "FM64", "64":
		return FM64, nil
	case "FM128", "128":
		return FM128, nil
	default:
		return FMInvalid, fmt.Errorf("ring: unsupported field '%s'", s)
	}
}
