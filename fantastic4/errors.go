//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"errors"
	"fmt"

	"github.com/markkurossi/fantastic4/value"
)

var (
	// ErrTypeMismatch is matched by all operand type errors.
	ErrTypeMismatch = errors.New("fantastic4: type mismatch")

	// ErrUnknownKernel is returned for unregistered kernel names.
	ErrUnknownKernel = errors.New("fantastic4: unknown kernel")

	// ErrDuplicateKernel is returned when registering a kernel name
	// twice.
	ErrDuplicateKernel = errors.New("fantastic4: duplicate kernel")
)

// TypeError describes kernel operands that do not match the kernel
// signature. Type errors are detected before any communication.
type TypeError struct {
	Kernel string
	Reason string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("fantastic4: %s: type mismatch: %s", e.Kernel, e.Reason)
}

// Is implements errors.Is for ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeErrorf(kernel, format string, a ...interface{}) error {
	return &TypeError{
		Kernel: kernel,
		Reason: fmt.Sprintf(format, a...),
	}
}

// checkOperands verifies that the operands have the argument kinds,
// valid fields, and equal fields and shapes.
func checkOperands(kernel string, args Args, kinds ...value.Kind) error {
	if len(args.Operands) != len(kinds) {
		return typeErrorf(kernel, "expected %d operands, got %d",
			len(kinds), len(args.Operands))
	}
	first := args.Operands[0]
	for idx, op := range args.Operands {
		if op == nil {
			return typeErrorf(kernel, "operand %d is nil", idx)
		}
		if op.Kind() != kinds[idx] {
			return typeErrorf(kernel, "operand %d: expected %s, got %s",
				idx, kinds[idx], op.Type())
		}
		if !op.Field().Valid() {
			return typeErrorf(kernel, "operand %d: invalid field %s",
				idx, op.Field())
		}
		if op.Kind() != value.KindPrivate && op.IsPlaceholder() {
			return typeErrorf(kernel, "operand %d: %s has no data",
				idx, op.Type())
		}
		if !op.Shape().Valid() {
			return typeErrorf(kernel, "operand %d: invalid shape %s",
				idx, op.Shape())
		}
		if op.Field() != first.Field() {
			return typeErrorf(kernel, "field mismatch: %s != %s",
				first.Field(), op.Field())
		}
		if !op.Shape().Equal(first.Shape()) {
			return typeErrorf(kernel, "shape mismatch: %s != %s",
				first.Shape(), op.Shape())
		}
	}
	return nil
}
