//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"context"

	"github.com/markkurossi/fantastic4/cost"
	"github.com/markkurossi/fantastic4/parallel"
	"github.com/markkurossi/fantastic4/ring"
	"github.com/markkurossi/fantastic4/value"
)

// negateAKernel negates an arithmetic share.
type negateAKernel struct{}

func (negateAKernel) Name() string {
	return "negate_a"
}

func (negateAKernel) Kind() Kind {
	return Static
}

func (negateAKernel) Latency() cost.Expr {
	return zero
}

func (negateAKernel) Comm() cost.Expr {
	return zero
}

func (k negateAKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	if err := checkOperands(k.Name(), args, value.KindAShare); err != nil {
		return nil, err
	}
	x := args.Operands[0]
	switch x.Field() {
	case ring.FM32:
		return negateA(c, ring.Z2k32, x)
	case ring.FM64:
		return negateA(c, ring.Z2k64, x)
	default:
		return negateA(c, ring.Z2k128, x)
	}
}

func negateA[E comparable](c *Context, r ring.Ring[E], x *value.Value) (
	*value.Value, error) {

	shares, err := value.Triples[E](x)
	if err != nil {
		return nil, err
	}
	result := make([]value.Triple[E], len(shares))
	parallel.For(c.workers, len(shares), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for _, s := range value.Slots {
				result[i][s] = r.Neg(shares[i][s])
			}
		}
	})
	return value.NewAShare(r, x.Shape(), result)
}

// addAPKernel adds a public value to an arithmetic share. The value
// is added to the sub-share x3 at every party that stores it.
type addAPKernel struct{}

func (addAPKernel) Name() string {
	return "add_ap"
}

func (addAPKernel) Kind() Kind {
	return Static
}

func (addAPKernel) Latency() cost.Expr {
	return zero
}

func (addAPKernel) Comm() cost.Expr {
	return zero
}

func (k addAPKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	err := checkOperands(k.Name(), args, value.KindAShare, value.KindPublic)
	if err != nil {
		return nil, err
	}
	a := args.Operands[0]
	p := args.Operands[1]
	switch a.Field() {
	case ring.FM32:
		return addAP(c, ring.Z2k32, a, p)
	case ring.FM64:
		return addAP(c, ring.Z2k64, a, p)
	default:
		return addAP(c, ring.Z2k128, a, p)
	}
}

func addAP[E comparable](c *Context, r ring.Ring[E], a, p *value.Value) (
	*value.Value, error) {

	shares, err := value.Triples[E](a)
	if err != nil {
		return nil, err
	}
	public, err := value.Elements[E](p)
	if err != nil {
		return nil, err
	}
	result := make([]value.Triple[E], len(shares))
	copy(result, shares)

	slot := publicSlot[c.rank]
	if slot != value.NoSlot {
		parallel.For(c.workers, len(result), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				result[i].Set(slot, r.Add(result[i].Get(slot), public[i]))
			}
		})
	}
	return value.NewAShare(r, a.Shape(), result)
}

// addAAKernel adds two arithmetic shares.
type addAAKernel struct{}

func (addAAKernel) Name() string {
	return "add_aa"
}

func (addAAKernel) Kind() Kind {
	return Static
}

func (addAAKernel) Latency() cost.Expr {
	return zero
}

func (addAAKernel) Comm() cost.Expr {
	return zero
}

func (k addAAKernel) Evaluate(ctx context.Context, c *Context, args Args) (
	*value.Value, error) {

	err := checkOperands(k.Name(), args, value.KindAShare, value.KindAShare)
	if err != nil {
		return nil, err
	}
	a := args.Operands[0]
	b := args.Operands[1]
	switch a.Field() {
	case ring.FM32:
		return addAA(c, ring.Z2k32, a, b)
	case ring.FM64:
		return addAA(c, ring.Z2k64, a, b)
	default:
		return addAA(c, ring.Z2k128, a, b)
	}
}

func addAA[E comparable](c *Context, r ring.Ring[E], a, b *value.Value) (
	*value.Value, error) {

	x, err := value.Triples[E](a)
	if err != nil {
		return nil, err
	}
	y, err := value.Triples[E](b)
	if err != nil {
		return nil, err
	}
	result := make([]value.Triple[E], len(x))
	parallel.For(c.workers, len(x), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for _, s := range value.Slots {
				result[i][s] = r.Add(x[i][s], y[i][s])
			}
		}
	})
	return value.NewAShare(r, a.Shape(), result)
}
