//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package value

// Slot identifies one of the three sub-shares a party stores for
// each element of an arithmetic share.
type Slot int

// Share slots. The logical sub-share x1..x4 stored in each slot
// depends on the local party rank.
const (
	First Slot = iota
	Second
	Third
)

// Slots lists the share slots in order.
var Slots = [3]Slot{First, Second, Third}

// NoSlot marks that a party stores no slot for a sub-share.
const NoSlot Slot = -1

func (s Slot) String() string {
	switch s {
	case First:
		return "First"
	case Second:
		return "Second"
	case Third:
		return "Third"
	default:
		return "None"
	}
}

// Triple holds the three locally stored sub-shares of one element.
type Triple[E any] [3]E

// Get returns the sub-share in slot s.
func (t Triple[E]) Get(s Slot) E {
	return t[s]
}

// Set sets the sub-share in slot s.
func (t *Triple[E]) Set(s Slot, v E) {
	t[s] = v
}
