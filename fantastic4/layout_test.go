//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/fantastic4/value"
)

func TestRanks(t *testing.T) {
	for r := 0; r < NumParties; r++ {
		require.Equal(t, (r+1)%4, Next(r))
		require.Equal(t, (r+3)%4, Prev(r))
		require.Equal(t, r, Next(Prev(r)))
		for o := 0; o < NumParties; o++ {
			require.Equal(t, r, (o+Offset(r, o))%NumParties)
		}
	}
	require.Equal(t, 3, Offset(0, 1))
	require.Equal(t, 1, Offset(0, 3))
}

func TestLayout(t *testing.T) {
	for r := 0; r < NumParties; r++ {
		missing := (r + 3) % NumParties
		for _, s := range value.Slots {
			require.Equal(t, (r+int(s))%NumParties, SubShare(r, s))
			require.NotEqual(t, missing, SubShare(r, s))
		}
		require.Equal(t, value.NoSlot, SlotOf(r, missing))

		// The missing sub-share is held by both neighbours.
		require.Equal(t, missing, SubShare(Next(r), revealSlot))
		require.Equal(t, missing, SubShare(Prev(r), value.First))
	}
}

func TestSlotTables(t *testing.T) {
	for r := 0; r < NumParties; r++ {
		require.Equal(t, SlotOf(r, 0), x1Slot[r], "x1Slot[%d]", r)
		require.Equal(t, SlotOf(r, 2), publicSlot[r], "publicSlot[%d]", r)
	}
}

func TestDealTables(t *testing.T) {
	for d := 0; d < NumParties; d++ {
		var received []int
		for _, s := range value.Slots {
			sub := SubShare(d, s)
			expected := sub
			if sub == 3 {
				expected = noSplit
			}
			require.Equal(t, expected, dealSlots[d][s],
				"dealSlots[%d][%s]", d, s)
			if expected != noSplit {
				received = append(received, expected)
			}
		}
		if d == 0 {
			require.Equal(t, []int{0, 1, 2}, received)
			continue
		}
		require.Equal(t, received, dealSends[d][:], "dealSends[%d]", d)
	}
}
