//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/fantastic4/ring"
)

func TestTypeString(t *testing.T) {
	require.Equal(t, "AShr<FM64>", AShare(ring.FM64).String())
	require.Equal(t, "Pub2k<FM32>", Public(ring.FM32).String())
	require.Equal(t, "Priv2k<FM128,2>", Private(ring.FM128, 2).String())
}

func TestShape(t *testing.T) {
	require.Equal(t, int64(1), Shape{}.Numel())
	require.Equal(t, int64(24), Shape{2, 3, 4}.Numel())
	require.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	require.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	require.False(t, Shape{-1}.Valid())
	require.False(t, Shape{1 << 32, 1 << 32}.Valid())
	require.False(t, Shape{math.MaxInt64, 2}.Valid())
	require.True(t, Shape{1 << 62, 1 << 62, 0}.Valid())
	require.True(t, Shape{1 << 31, 1 << 31}.Valid())
	require.Equal(t, "(2x3)", Shape{2, 3}.String())
}

func TestNewPublic(t *testing.T) {
	v, err := NewPublic(ring.Z2k64, Shape{3}, []uint64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, KindPublic, v.Kind())
	require.Equal(t, ring.FM64, v.Field())
	require.Equal(t, NoOwner, v.Owner())
	require.Equal(t, 3, v.Numel())

	data, err := Elements[uint64](v)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, data)

	_, err = Elements[uint32](v)
	require.Error(t, err)

	_, err = Triples[uint64](v)
	require.Error(t, err)

	strs, err := Strings(v)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, strs)

	_, err = NewPublic(ring.Z2k64, Shape{4}, []uint64{1, 2, 3})
	require.Error(t, err)
}

func TestNewPublicOverflow(t *testing.T) {
	_, err := NewPublic(ring.Z2k64, Shape{1 << 32, 1 << 32}, []uint64{})
	require.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	v := NewPlaceholder(Private(ring.FM32, 1), Shape{2})
	require.True(t, v.IsPlaceholder())
	require.Equal(t, 1, v.Owner())
	require.Equal(t, 2, v.Numel())

	_, err := Elements[uint32](v)
	require.ErrorIs(t, err, ErrPlaceholder)
}

func TestShareHelpers(t *testing.T) {
	v, err := MakeShare(ring.Z2k32, Shape{2},
		[]uint32{1, 2}, []uint32{3, 4}, []uint32{5, 6})
	require.NoError(t, err)

	triples, err := Triples[uint32](v)
	require.NoError(t, err)
	require.Equal(t, []Triple[uint32]{{1, 3, 5}, {2, 4, 6}}, triples)
	require.Equal(t, uint32(5), triples[0].Get(Third))

	for slot, expected := range [][]uint32{{1, 2}, {3, 4}, {5, 6}} {
		s, err := GetShare[uint32](v, Slot(slot))
		require.NoError(t, err)
		require.Equal(t, expected, s)
	}
	_, err = GetShare[uint32](v, Slot(3))
	require.Error(t, err)

	_, err = MakeShare(ring.Z2k32, Shape{2},
		[]uint32{1, 2}, []uint32{3}, []uint32{5, 6})
	require.Error(t, err)

	var tr Triple[uint32]
	tr.Set(Second, 7)
	require.Equal(t, Triple[uint32]{0, 7, 0}, tr)
}
