//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"github.com/markkurossi/fantastic4/value"
)

// NumParties defines the number of protocol parties.
const NumParties = 4

// Next returns the rank following rank r.
func Next(r int) int {
	return (r + 1) % NumParties
}

// Prev returns the rank preceding rank r.
func Prev(r int) int {
	return (r + NumParties - 1) % NumParties
}

// Offset returns the distance of rank r from the rank o, that is,
// (r-o) mod 4.
func Offset(r, o int) int {
	return ((r-o)%NumParties + NumParties) % NumParties
}

func validRank(r int) bool {
	return r >= 0 && r < NumParties
}

// layout maps rank and slot to the sub-share index (0 for x1, 3 for
// x4). Rank r stores sub-share (r+s) mod 4 in slot s and lacks
// sub-share (r+3) mod 4.
var layout = [NumParties][3]int{
	{0, 1, 2},
	{1, 2, 3},
	{2, 3, 0},
	{3, 0, 1},
}

// SubShare returns the sub-share index rank stores in slot s.
func SubShare(rank int, s value.Slot) int {
	return layout[rank][s]
}

// SlotOf returns the slot where rank stores the sub-share index sub,
// or value.NoSlot if rank does not store it.
func SlotOf(rank, sub int) value.Slot {
	for _, s := range value.Slots {
		if layout[rank][s] == sub {
			return s
		}
	}
	return value.NoSlot
}

// revealSlot is the slot a party sends when revealing a share. It
// holds the sub-share the previous party lacks.
const revealSlot = value.Third

// x1Slot holds the slot representing x1 at each rank.
var x1Slot = [NumParties]value.Slot{
	value.First,
	value.NoSlot,
	value.Third,
	value.Second,
}

// publicSlot holds the slot receiving public addends at each rank.
// All slots hold x3 which rank 3 does not store.
var publicSlot = [NumParties]value.Slot{
	value.Third,
	value.Second,
	value.First,
	value.NoSlot,
}

// noSplit marks a zero sub-share in the dealing tables.
const noSplit = -1

// dealSlots maps the offset from the dealer and the slot to the
// split index stored in the slot. The dealer's frame sets x1, x2, x3
// to the splits s0, s1, s2 and x4 to zero.
var dealSlots = [NumParties][3]int{
	{0, 1, 2},
	{1, 2, noSplit},
	{2, noSplit, 0},
	{noSplit, 0, 1},
}

// dealSends maps the offset from the dealer to the split indices
// sent to the party, in message order.
var dealSends = [NumParties][2]int{
	{noSplit, noSplit},
	{1, 2},
	{2, 0},
	{0, 1},
}

// Message tags.
const (
	tagA2P = "a2p"
	tagA2V = "a2v"
)

var tagV2A = [2]string{"v2a:0", "v2a:1"}
