//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package fantastic4 implements the four-party replicated secret
// sharing over the ring Z/2^kZ. Each value x is split into four
// additive sub-shares x1..x4 and every party stores three of them.
package fantastic4

import (
	"context"
	"fmt"
	"time"

	"github.com/markkurossi/fantastic4/comm"
	"github.com/markkurossi/fantastic4/env"
	"github.com/markkurossi/fantastic4/log"
	"github.com/markkurossi/fantastic4/metrics"
	"github.com/markkurossi/fantastic4/prg"
	"github.com/markkurossi/fantastic4/value"
)

// Communicator defines the point-to-point messaging the kernels
// need from the party network.
type Communicator interface {
	Rank() int
	Size() int
	NextRank() int
	PrevRank() int
	Send(ctx context.Context, dst int, tag string, data []byte) error
	SendAsync(dst int, tag string, data []byte) error
	Recv(ctx context.Context, src int, tag string) ([]byte, error)
	Rotate(ctx context.Context, tag string, data []byte) ([]byte, error)
	RotateBack(ctx context.Context, tag string, data []byte) ([]byte, error)
	Exchange(ctx context.Context, step comm.Step) ([][]byte, error)
}

var _ Communicator = &comm.Communicator{}

// Context holds the protocol state of one party.
type Context struct {
	comm     Communicator
	rank     int
	prg      *prg.PRG
	logger   *log.Logger
	metrics  *metrics.KernelMetrics
	workers  int
	registry *Registry
}

// NewContext creates a protocol context for the party communicating
// over c.
func NewContext(c Communicator, config *env.Config) (*Context, error) {
	if c.Size() != NumParties {
		return nil, fmt.Errorf("fantastic4: invalid number of parties: %d",
			c.Size())
	}
	rank := c.Rank()
	if !validRank(rank) || c.NextRank() != Next(rank) ||
		c.PrevRank() != Prev(rank) {
		return nil, fmt.Errorf("fantastic4: invalid party topology at rank %d",
			rank)
	}
	g, err := prg.New(config.GetRandom())
	if err != nil {
		return nil, err
	}
	m, err := metrics.New(config.GetRegisterer())
	if err != nil {
		return nil, err
	}
	return &Context{
		comm:     c,
		rank:     rank,
		prg:      g,
		logger:   config.GetLogger().WithModule("fantastic4").With("rank", rank),
		metrics:  &m.Kernel,
		workers:  config.GetWorkers(),
		registry: NewKernelRegistry(),
	}, nil
}

// Rank returns the local party rank.
func (c *Context) Rank() int {
	return c.rank
}

// Registry returns the kernel registry of the context.
func (c *Context) Registry() *Registry {
	return c.registry
}

// Call evaluates the named kernel.
func (c *Context) Call(ctx context.Context, name string, args Args) (
	*value.Value, error) {

	k, err := c.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := k.Evaluate(ctx, c, args)
	c.metrics.Observe(name, start, err)
	if err != nil {
		c.logger.Debug("kernel failed", "kernel", name, "err", err)
		return nil, err
	}
	c.logger.Debug("kernel", "kernel", name, "type", result.Type(),
		"shape", result.Shape(), "elapsed", time.Since(start))
	return result, nil
}

// A2P reveals the arithmetic share x to all parties.
func (c *Context) A2P(ctx context.Context, x *value.Value) (
	*value.Value, error) {
	return c.Call(ctx, "a2p", Args{Operands: []*value.Value{x}})
}

// P2A converts the public value x into an arithmetic share.
func (c *Context) P2A(ctx context.Context, x *value.Value) (
	*value.Value, error) {
	return c.Call(ctx, "p2a", Args{Operands: []*value.Value{x}})
}

// A2V reveals the arithmetic share x to the party rank.
func (c *Context) A2V(ctx context.Context, x *value.Value, rank int) (
	*value.Value, error) {
	return c.Call(ctx, "a2v", Args{
		Operands: []*value.Value{x},
		Rank:     rank,
	})
}

// V2A shares the private value x from its owner to all parties.
func (c *Context) V2A(ctx context.Context, x *value.Value) (
	*value.Value, error) {
	return c.Call(ctx, "v2a", Args{Operands: []*value.Value{x}})
}

// NegateA negates the arithmetic share x.
func (c *Context) NegateA(ctx context.Context, x *value.Value) (
	*value.Value, error) {
	return c.Call(ctx, "negate_a", Args{Operands: []*value.Value{x}})
}

// AddAP adds the public value p to the arithmetic share a.
func (c *Context) AddAP(ctx context.Context, a, p *value.Value) (
	*value.Value, error) {
	return c.Call(ctx, "add_ap", Args{Operands: []*value.Value{a, p}})
}

// AddAA adds the arithmetic shares a and b.
func (c *Context) AddAA(ctx context.Context, a, b *value.Value) (
	*value.Value, error) {
	return c.Call(ctx, "add_aa", Args{Operands: []*value.Value{a, b}})
}
