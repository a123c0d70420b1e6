//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package comm

// Outbound defines a message sent in a communication step.
type Outbound struct {
	To      int
	Tag     string
	Payload []byte
}

// Inbound defines a message received in a communication step.
type Inbound struct {
	From int
	Tag  string
}

// Step defines one communication round of a party. All sends are
// issued without waiting before the receives are awaited in list
// order. A set of steps is deadlock-free when every receive of every
// party is matched by a send of its peer in the same round.
type Step struct {
	Sends []Outbound
	Recvs []Inbound
}

// Empty tests if the step has no communication.
func (s Step) Empty() bool {
	return len(s.Sends) == 0 && len(s.Recvs) == 0
}
