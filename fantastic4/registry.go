//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"fmt"
)

// Registry maps kernel names to kernels. A registry is populated
// once and is read-only afterwards.
type Registry struct {
	kernels map[string]Kernel
	order   []Kernel
}

// NewRegistry creates an empty kernel registry.
func NewRegistry() *Registry {
	return &Registry{
		kernels: make(map[string]Kernel),
	}
}

// Register adds the kernel k to the registry.
func (r *Registry) Register(k Kernel) error {
	name := k.Name()
	if _, ok := r.kernels[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKernel, name)
	}
	r.kernels[name] = k
	r.order = append(r.order, k)
	return nil
}

// Lookup returns the kernel with the name.
func (r *Registry) Lookup(name string) (Kernel, error) {
	k, ok := r.kernels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKernel, name)
	}
	return k, nil
}

// Names returns the kernel names in registration order.
func (r *Registry) Names() []string {
	result := make([]string, len(r.order))
	for idx, k := range r.order {
		result[idx] = k.Name()
	}
	return result
}

// Kernels returns the kernels in registration order.
func (r *Registry) Kernels() []Kernel {
	result := make([]Kernel, len(r.order))
	copy(result, r.order)
	return result
}

// kernels lists all protocol kernels in registration order.
var kernels = []Kernel{
	a2pKernel{},
	p2aKernel{},
	a2vKernel{},
	v2aKernel{},
	negateAKernel{},
	addAPKernel{},
	addAAKernel{},
}

// RegisterKernels registers all protocol kernels to r.
func RegisterKernels(r *Registry) error {
	for _, k := range kernels {
		if err := r.Register(k); err != nil {
			return err
		}
	}
	return nil
}

// NewKernelRegistry creates a registry holding all protocol kernels.
func NewKernelRegistry() *Registry {
	r := NewRegistry()
	if err := RegisterKernels(r); err != nil {
		panic(err)
	}
	return r
}
