//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package cost implements static cost expressions for protocol
// kernels. Latency expressions count communication rounds and
// communication expressions count bytes sent by one party.
package cost

import (
	"fmt"
	"strings"

	"github.com/markkurossi/fantastic4/ring"
)

// Params define the parameters cost expressions are evaluated with.
type Params struct {
	Field ring.Field
	N     int64
}

// Expr implements a cost expression.
type Expr interface {
	// Eval evaluates the expression with the parameters.
	Eval(p Params) uint64
	fmt.Stringer
}

// Const returns a constant expression.
func Const(v uint64) Expr {
	return constant(v)
}

// K returns the size of one ring element in bytes.
func K() Expr {
	return k{}
}

// N returns the number of elements.
func N() Expr {
	return n{}
}

// Add returns the sum of the expressions.
func Add(e ...Expr) Expr {
	return &op{
		name:  "+",
		exprs: e,
		fn: func(a, b uint64) uint64 {
			return a + b
		},
		zero: 0,
	}
}

// Mul returns the product of the expressions.
func Mul(e ...Expr) Expr {
	return &op{
		name:  "*",
		exprs: e,
		fn: func(a, b uint64) uint64 {
			return a * b
		},
		zero: 1,
	}
}

type constant uint64

func (c constant) Eval(p Params) uint64 {
	return uint64(c)
}

func (c constant) String() string {
	return fmt.Sprintf("%d", uint64(c))
}

type k struct{}

func (k) Eval(p Params) uint64 {
	return uint64(p.Field.Bytes())
}

func (k) String() string {
	return "K"
}

type n struct{}

func (n) Eval(p Params) uint64 {
	return uint64(p.N)
}

func (n) String() string {
	return "N"
}

type op struct {
	name  string
	exprs []Expr
	fn    func(a, b uint64) uint64
	zero  uint64
}

func (o *op) Eval(p Params) uint64 {
	result := o.zero
	for _, e := range o.exprs {
		result = o.fn(result, e.Eval(p))
	}
	return result
}

func (o *op) String() string {
	parts := make([]string, len(o.exprs))
	for i, e := range o.exprs {
		s := e.String()
		if _, ok := e.(*op); ok && len(o.exprs) > 1 {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, o.name)
}
