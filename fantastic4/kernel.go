//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"context"
	"fmt"

	"github.com/markkurossi/fantastic4/cost"
	"github.com/markkurossi/fantastic4/value"
)

// Kind specifies the communication pattern of a kernel.
type Kind int

// Kernel kinds.
const (
	// Static kernels have the same traffic at every party.
	Static Kind = iota
	// Dynamic kernels have traffic that depends on party rank or
	// value owner.
	Dynamic
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("{Kind %d}", k)
	}
}

// Args define the arguments of a kernel evaluation.
type Args struct {
	Operands []*value.Value

	// Rank is the static target rank of A2V.
	Rank int
}

// Kernel implements a protocol operator. Kernels are stateless and
// safe for concurrent use.
type Kernel interface {
	// Name returns the registration name of the kernel.
	Name() string

	// Kind returns the communication kind of the kernel.
	Kind() Kind

	// Latency returns the number of communication rounds.
	Latency() cost.Expr

	// Comm returns the number of bytes sent by the busiest party.
	Comm() cost.Expr

	// Evaluate evaluates the kernel for the local party. The result
	// is newly allocated and the operands are not modified.
	Evaluate(ctx context.Context, c *Context, args Args) (*value.Value, error)
}

var (
	zero     = cost.Const(0)
	oneRound = cost.Const(1)
)
