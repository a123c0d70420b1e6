//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"context"
	"fmt"

	"github.com/markkurossi/fantastic4/comm"
	"github.com/markkurossi/fantastic4/cost"
	"github.com/markkurossi/fantastic4/parallel"
	"github.com/markkurossi/fantastic4/ring"
	"github.com/markkurossi/fantastic4/value"
)

// a2pKernel reveals an arithmetic share to all parties.
type a2pKernel struct{}

func (a2pKernel) Name() string {
	return "a2p"
}

func (a2pKernel) Kind() Kind {
	return Static
}

func (a2pKernel) Latency() cost.Expr {
	return oneRound
}

func (a2pKernel) Comm() cost.Expr {
	return cost.Mul(cost.K(), cost.N())
}

func (k a2pKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	if err := checkOperands(k.Name(), args, value.KindAShare); err != nil {
		return nil, err
	}
	x := args.Operands[0]
	switch x.Field() {
	case ring.FM32:
		return a2p(ctx, c, ring.Z2k32, x)
	case ring.FM64:
		return a2p(ctx, c, ring.Z2k64, x)
	default:
		return a2p(ctx, c, ring.Z2k128, x)
	}
}

func a2p[E comparable](ctx context.Context, c *Context, r ring.Ring[E],
	x *value.Value) (*value.Value, error) {

	shares, err := value.Triples[E](x)
	if err != nil {
		return nil, err
	}
	data, err := c.comm.RotateBack(ctx, tagA2P, marshalSlot(r, shares,
		revealSlot))
	if err != nil {
		return nil, fmt.Errorf("a2p: %w", err)
	}
	missing, err := ring.Unmarshal(r, data, len(shares))
	if err != nil {
		return nil, fmt.Errorf("a2p: %w", err)
	}
	result := reconstruct(c, r, shares, missing)

	return value.NewPublic(r, x.Shape(), result)
}

// marshalSlot encodes the sub-shares of slot s.
func marshalSlot[E comparable](r ring.Ring[E], shares []value.Triple[E],
	s value.Slot) []byte {

	slot := make([]E, len(shares))
	for i, t := range shares {
		slot[i] = t[s]
	}
	return ring.Marshal(r, slot)
}

// reconstruct sums the local sub-shares with the missing sub-share.
func reconstruct[E comparable](c *Context, r ring.Ring[E],
	shares []value.Triple[E], missing []E) []E {

	result := make([]E, len(shares))
	parallel.For(c.workers, len(shares), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			t := shares[i]
			sum := r.Add(t[value.First], t[value.Second])
			sum = r.Add(sum, t[value.Third])
			result[i] = r.Add(sum, missing[i])
		}
	})
	return result
}

// p2aKernel converts a public value into an arithmetic share with
// x1 set to the value and other sub-shares set to zero.
type p2aKernel struct{}

func (p2aKernel) Name() string {
	return "p2a"
}

func (p2aKernel) Kind() Kind {
	return Static
}

func (p2aKernel) Latency() cost.Expr {
	return zero
}

func (p2aKernel) Comm() cost.Expr {
	return zero
}

func (k p2aKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	if err := checkOperands(k.Name(), args, value.KindPublic); err != nil {
		return nil, err
	}
	x := args.Operands[0]
	switch x.Field() {
	case ring.FM32:
		return p2a(c, ring.Z2k32, x)
	case ring.FM64:
		return p2a(c, ring.Z2k64, x)
	default:
		return p2a(c, ring.Z2k128, x)
	}
}

func p2a[E comparable](c *Context, r ring.Ring[E], x *value.Value) (
	*value.Value, error) {

	data, err := value.Elements[E](x)
	if err != nil {
		return nil, err
	}
	shares := make([]value.Triple[E], len(data))
	slot := x1Slot[c.rank]
	if slot != value.NoSlot {
		parallel.For(c.workers, len(data), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				shares[i].Set(slot, data[i])
			}
		})
	}
	return value.NewAShare(r, x.Shape(), shares)
}

// a2vKernel reveals an arithmetic share to one party.
type a2vKernel struct{}

func (a2vKernel) Name() string {
	return "a2v"
}

func (a2vKernel) Kind() Kind {
	return Dynamic
}

func (a2vKernel) Latency() cost.Expr {
	return oneRound
}

func (a2vKernel) Comm() cost.Expr {
	return cost.Mul(cost.K(), cost.N())
}

func (k a2vKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	if err := checkOperands(k.Name(), args, value.KindAShare); err != nil {
		return nil, err
	}
	if !validRank(args.Rank) {
		return nil, typeErrorf(k.Name(), "invalid target rank %d", args.Rank)
	}
	x := args.Operands[0]
	switch x.Field() {
	case ring.FM32:
		return a2v(ctx, c, ring.Z2k32, x, args.Rank)
	case ring.FM64:
		return a2v(ctx, c, ring.Z2k64, x, args.Rank)
	default:
		return a2v(ctx, c, ring.Z2k128, x, args.Rank)
	}
}

func a2v[E comparable](ctx context.Context, c *Context, r ring.Ring[E],
	x *value.Value, target int) (*value.Value, error) {

	shares, err := value.Triples[E](x)
	if err != nil {
		return nil, err
	}
	placeholder := value.NewPlaceholder(value.Private(r.Field(), target),
		x.Shape())

	switch c.rank {
	case Next(target):
		err = c.comm.SendAsync(target, tagA2V, marshalSlot(r, shares,
			revealSlot))
		if err != nil {
			return nil, fmt.Errorf("a2v: %w", err)
		}
		return placeholder, nil

	case target:
		data, err := c.comm.Recv(ctx, Next(target), tagA2V)
		if err != nil {
			return nil, fmt.Errorf("a2v: %w", err)
		}
		missing, err := ring.Unmarshal(r, data, len(shares))
		if err != nil {
			return nil, fmt.Errorf("a2v: %w", err)
		}
		return value.NewPrivate(r, target, x.Shape(),
			reconstruct(c, r, shares, missing))

	default:
		return placeholder, nil
	}
}

// v2aKernel shares a private value from its owner to all parties.
// The owner splits the value into three random additive splits and
// deals them to the other parties so that x4 is zero in the owner's
// frame.
type v2aKernel struct{}

func (v2aKernel) Name() string {
	return "v2a"
}

func (v2aKernel) Kind() Kind {
	return Dynamic
}

func (v2aKernel) Latency() cost.Expr {
	return oneRound
}

func (v2aKernel) Comm() cost.Expr {
	return cost.Mul(cost.Const(6), cost.K(), cost.N())
}

func (k v2aKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	if err := checkOperands(k.Name(), args, value.KindPrivate); err != nil {
		return nil, err
	}
	x := args.Operands[0]
	if !validRank(x.Owner()) {
		return nil, typeErrorf(k.Name(), "invalid owner %d", x.Owner())
	}
	if x.Owner() == c.rank && x.IsPlaceholder() {
		return nil, typeErrorf(k.Name(), "owner value %s has no data",
			x.Type())
	}
	switch x.Field() {
	case ring.FM32:
		return v2a(ctx, c, ring.Z2k32, x)
	case ring.FM64:
		return v2a(ctx, c, ring.Z2k64, x)
	default:
		return v2a(ctx, c, ring.Z2k128, x)
	}
}

func v2a[E comparable](ctx context.Context, c *Context, r ring.Ring[E],
	x *value.Value) (*value.Value, error) {

	owner := x.Owner()
	d := Offset(c.rank, owner)
	n := x.Numel()

	var splits [3][]E
	var step comm.Step

	if d == 0 {
		data, err := value.Elements[E](x)
		if err != nil {
			return nil, err
		}
		s, err := ring.AdditiveSplits(r, c.prg, data, len(splits))
		if err != nil {
			return nil, fmt.Errorf("v2a: %w", err)
		}
		copy(splits[:], s)

		for to := 1; to < NumParties; to++ {
			for i, split := range dealSends[to] {
				step.Sends = append(step.Sends, comm.Outbound{
					To:      (owner + to) % NumParties,
					Tag:     tagV2A[i],
					Payload: ring.Marshal(r, splits[split]),
				})
			}
		}
	} else {
		for i := range dealSends[d] {
			step.Recvs = append(step.Recvs, comm.Inbound{
				From: owner,
				Tag:  tagV2A[i],
			})
		}
	}
	received, err := c.comm.Exchange(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("v2a: %w", err)
	}
	for i, data := range received {
		s, err := ring.Unmarshal(r, data, n)
		if err != nil {
			return nil, fmt.Errorf("v2a: %w", err)
		}
		splits[dealSends[d][i]] = s
	}

	shares := make([]value.Triple[E], n)
	for _, slot := range value.Slots {
		split := dealSlots[d][slot]
		if split == noSplit {
			continue
		}
		src := splits[split]
		parallel.For(c.workers, n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				shares[i].Set(slot, src[i])
			}
		})
	}
	return value.NewAShare(r, x.Shape(), shares)
}
