//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"fmt"

	"github.com/markkurossi/text/superscript"

	"github.com/markkurossi/fantastic4/comm"
	"github.com/markkurossi/fantastic4/config"
	"github.com/markkurossi/fantastic4/fantastic4"
	"github.com/markkurossi/fantastic4/ring"
	"github.com/markkurossi/fantastic4/timing"
	"github.com/markkurossi/fantastic4/value"
)

// Result holds the pipeline outputs of one party.
type Result struct {
	Rank int

	// Revealed holds the public result.
	Revealed []string

	// Private holds the result revealed to the input owner. It is
	// nil at other parties.
	Private []string

	Timing *timing.Timing
	Stats  comm.Stats
}

// Print prints the result to standard output.
func (r *Result) Print() {
	fmt.Printf("P%s: public=%v", superscript.Itoa(r.Rank), r.Revealed)
	if r.Private != nil {
		fmt.Printf(" private=%v", r.Private)
	}
	fmt.Println()
}

// linkStats returns the payload statistics of the party link.
type linkStats interface {
	Stats() comm.Stats
}

// runPipeline evaluates the sample pipeline
//
//	z = AddAP(NegateA(AddAA(V2A(x), P2A(p))), p)
//
// and reveals z with A2P to all parties and with A2V to the owner of
// x. The result is -x.
func runPipeline(ctx context.Context, c *fantastic4.Context, link linkStats,
	field ring.Field, input *config.InputConfig) (*Result, error) {

	switch field {
	case ring.FM32:
		return pipeline(ctx, c, link, ring.Z2k32, input)
	case ring.FM64:
		return pipeline(ctx, c, link, ring.Z2k64, input)
	case ring.FM128:
		return pipeline(ctx, c, link, ring.Z2k128, input)
	default:
		return nil, fmt.Errorf("unsupported field %s", field)
	}
}

func pipeline[E comparable](ctx context.Context, c *fantastic4.Context,
	link linkStats, r ring.Ring[E], input *config.InputConfig) (
	*Result, error) {

	pub, err := ring.ParseAll(r, input.Public)
	if err != nil {
		return nil, err
	}
	shape := value.Shape{int64(len(pub))}
	p, err := value.NewPublic(r, shape, pub)
	if err != nil {
		return nil, err
	}

	var x *value.Value
	if c.Rank() == input.Owner {
		if len(input.Values) != len(pub) {
			return nil, fmt.Errorf("owner P%s: expected %d values, got %d",
				superscript.Itoa(c.Rank()), len(pub), len(input.Values))
		}
		data, err := ring.ParseAll(r, input.Values)
		if err != nil {
			return nil, err
		}
		x, err = value.NewPrivate(r, input.Owner, shape, data)
		if err != nil {
			return nil, err
		}
	} else {
		x = value.NewPlaceholder(value.Private(r.Field(), input.Owner), shape)
	}

	t := timing.New()
	var sent uint64
	sample := func(label string) {
		stats := link.Stats()
		t.Sample(label, timing.FileSize(stats.Sent-sent).String())
		sent = stats.Sent
	}

	xs, err := c.V2A(ctx, x)
	if err != nil {
		return nil, err
	}
	sample("v2a")

	ps, err := c.P2A(ctx, p)
	if err != nil {
		return nil, err
	}
	sample("p2a")

	z, err := c.AddAA(ctx, xs, ps)
	if err != nil {
		return nil, err
	}
	sample("add_aa")

	z, err = c.NegateA(ctx, z)
	if err != nil {
		return nil, err
	}
	sample("negate_a")

	z, err = c.AddAP(ctx, z, p)
	if err != nil {
		return nil, err
	}
	sample("add_ap")

	revealed, err := c.A2P(ctx, z)
	if err != nil {
		return nil, err
	}
	sample("a2p")

	private, err := c.A2V(ctx, z, input.Owner)
	if err != nil {
		return nil, err
	}
	sample("a2v")

	result := &Result{
		Rank:   c.Rank(),
		Timing: t,
		Stats:  link.Stats(),
	}
	result.Revealed, err = value.Strings(revealed)
	if err != nil {
		return nil, err
	}
	if !private.IsPlaceholder() {
		result.Private, err = value.Strings(private)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
