//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package value

import (
	"errors"
	"fmt"

	"github.com/markkurossi/fantastic4/ring"
)

// ErrPlaceholder is returned when data is requested from a
// placeholder value.
var ErrPlaceholder = errors.New("value: placeholder has no data")

// Value implements an N-dimensional value of one kind. Values are
// immutable once created.
type Value struct {
	typ   Type
	shape Shape
	data  any
}

// Type returns the value type.
func (v *Value) Type() Type {
	return v.typ
}

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	return v.typ.Kind
}

// Field returns the ring width of the value.
func (v *Value) Field() ring.Field {
	return v.typ.Field
}

// Owner returns the owner of a private value or NoOwner.
func (v *Value) Owner() int {
	return v.typ.Owner
}

// Shape returns the value shape.
func (v *Value) Shape() Shape {
	return v.shape
}

// Numel returns the number of elements in the value.
func (v *Value) Numel() int {
	return int(v.shape.Numel())
}

// IsPlaceholder tests if the value is a placeholder without data.
func (v *Value) IsPlaceholder() bool {
	return v.data == nil
}

func (v *Value) String() string {
	if v.IsPlaceholder() {
		return fmt.Sprintf("%s%s{}", v.typ, v.shape)
	}
	return fmt.Sprintf("%s%s%v", v.typ, v.shape, v.data)
}

func newValue[D any](typ Type, shape Shape, data []D) (*Value, error) {
	if !typ.Field.Valid() {
		return nil, fmt.Errorf("value: invalid field %s", typ.Field)
	}
	if !shape.Valid() {
		return nil, fmt.Errorf("value: invalid shape %s", shape)
	}
	if int64(len(data)) != shape.Numel() {
		return nil, fmt.Errorf("value: %s: shape %s expects %d elements, got %d",
			typ, shape, shape.Numel(), len(data))
	}
	if data == nil {
		data = []D{}
	}
	return &Value{
		typ:   typ,
		shape: shape.Clone(),
		data:  data,
	}, nil
}

// NewPublic creates a public value.
func NewPublic[E comparable](r ring.Ring[E], shape Shape, data []E) (
	*Value, error) {
	return newValue(Public(r.Field()), shape, data)
}

// NewPrivate creates a private value owned by owner.
func NewPrivate[E comparable](r ring.Ring[E], owner int, shape Shape,
	data []E) (*Value, error) {
	return newValue(Private(r.Field(), owner), shape, data)
}

// NewAShare creates an arithmetic share from its local triples.
func NewAShare[E comparable](r ring.Ring[E], shape Shape,
	data []Triple[E]) (*Value, error) {
	return newValue(AShare(r.Field()), shape, data)
}

// NewPlaceholder creates a value without data. Placeholders stand
// for private values at parties that do not own them. The shape is
// not validated; kernels reject placeholders with invalid shapes.
func NewPlaceholder(typ Type, shape Shape) *Value {
	return &Value{
		typ:   typ,
		shape: shape.Clone(),
	}
}

// Elements returns the plaintext elements of a public or private
// value.
func Elements[E comparable](v *Value) ([]E, error) {
	if v.typ.Kind != KindPublic && v.typ.Kind != KindPrivate {
		return nil, fmt.Errorf("value: %s has no plaintext elements", v.typ)
	}
	if v.IsPlaceholder() {
		return nil, ErrPlaceholder
	}
	data, ok := v.data.([]E)
	if !ok {
		return nil, fmt.Errorf("value: %s: invalid element type %T", v.typ,
			v.data)
	}
	return data, nil
}

// Triples returns the local share triples of an arithmetic share.
func Triples[E comparable](v *Value) ([]Triple[E], error) {
	if v.typ.Kind != KindAShare {
		return nil, fmt.Errorf("value: %s is not an arithmetic share", v.typ)
	}
	data, ok := v.data.([]Triple[E])
	if !ok {
		return nil, fmt.Errorf("value: %s: invalid share type %T", v.typ,
			v.data)
	}
	return data, nil
}

// GetShare returns the sub-shares of slot s as a new slice.
func GetShare[E comparable](v *Value, s Slot) ([]E, error) {
	if s < First || s > Third {
		return nil, fmt.Errorf("value: invalid slot %d", s)
	}
	triples, err := Triples[E](v)
	if err != nil {
		return nil, err
	}
	result := make([]E, len(triples))
	for i, t := range triples {
		result[i] = t[s]
	}
	return result, nil
}

// MakeShare creates an arithmetic share from the sub-share slices of
// the three slots.
func MakeShare[E comparable](r ring.Ring[E], shape Shape,
	first, second, third []E) (*Value, error) {

	if len(first) != len(second) || len(first) != len(third) {
		return nil, fmt.Errorf("value: slot length mismatch: %d/%d/%d",
			len(first), len(second), len(third))
	}
	data := make([]Triple[E], len(first))
	for i := range data {
		data[i] = Triple[E]{first[i], second[i], third[i]}
	}
	return NewAShare(r, shape, data)
}

// Strings formats the plaintext elements of a public or private
// value.
func Strings(v *Value) ([]string, error) {
	switch v.typ.Field {
	case ring.FM32:
		return formatElements[uint32](v)
	case ring.FM64:
		return formatElements[uint64](v)
	case ring.FM128:
		return formatElements[ring.Uint128](v)
	default:
		return nil, fmt.Errorf("value: invalid field %s", v.typ.Field)
	}
}

func formatElements[E comparable](v *Value) ([]string, error) {
	data, err := Elements[E](v)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(data))
	for i, el := range data {
		result[i] = fmt.Sprintf("%v", el)
	}
	return result, nil
}
