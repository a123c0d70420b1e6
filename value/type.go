//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package value implements the share-bearing value kinds of the
// four-party replicated secret sharing: arithmetic shares, public
// values, and private values.
package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/markkurossi/fantastic4/ring"
)

// Kind specifies the value kind.
type Kind uint8

// Value kinds.
const (
	KindInvalid Kind = iota
	KindAShare
	KindPublic
	KindPrivate
)

var kindNames = map[Kind]string{
	KindInvalid: "Invalid",
	KindAShare:  "AShr",
	KindPublic:  "Pub2k",
	KindPrivate: "Priv2k",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if ok {
		return name
	}
	return fmt.Sprintf("{Kind %d}", uint8(k))
}

// NoOwner is the owner of values that are not private.
const NoOwner = -1

// Type defines the declared type of a value.
type Type struct {
	Kind  Kind
	Field ring.Field
	Owner int
}

// AShare returns the arithmetic share type for the field.
func AShare(f ring.Field) Type {
	return Type{
		Kind:  KindAShare,
		Field: f,
		Owner: NoOwner,
	}
}

// Public returns the public value type for the field.
func Public(f ring.Field) Type {
	return Type{
		Kind:  KindPublic,
		Field: f,
		Owner: NoOwner,
	}
}

// Private returns the private value type for the field and owner.
func Private(f ring.Field, owner int) Type {
	return Type{
		Kind:  KindPrivate,
		Field: f,
		Owner: owner,
	}
}

func (t Type) String() string {
	if t.Kind == KindPrivate {
		return fmt.Sprintf("%s<%s,%d>", t.Kind, t.Field, t.Owner)
	}
	return fmt.Sprintf("%s<%s>", t.Kind, t.Field)
}

// Shape defines the dimensions of a value.
type Shape []int64

// Numel returns the number of elements. An empty shape defines a
// scalar with one element. The result is only meaningful for valid
// shapes.
func (s Shape) Numel() int64 {
	n := int64(1)
	for _, d := range s {
		n *= d
	}
	return n
}

// Equal tests if the shapes are equal.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Valid tests that all dimensions are non-negative and that the
// number of elements fits in an int.
func (s Shape) Valid() bool {
	var empty bool
	for _, d := range s {
		if d < 0 {
			return false
		}
		if d == 0 {
			empty = true
		}
	}
	if empty {
		return true
	}
	n := int64(1)
	for _, d := range s {
		if n > int64(math.MaxInt)/d {
			return false
		}
		n *= d
	}
	return true
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, "x") + ")"
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	return append(Shape{}, s...)
}
