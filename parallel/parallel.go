//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package parallel implements data-parallel loops over tensor
// elements.
package parallel

import (
	"golang.org/x/sync/errgroup"
)

// GrainSize defines the minimum number of elements processed by one
// goroutine.
const GrainSize = 8192

// For calls fn for disjoint ranges [lo, hi) covering [0, n). The
// ranges are processed with at most workers goroutines. Callers must
// only write to output elements inside their range.
func For(workers, n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n <= GrainSize {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	if chunk < GrainSize {
		chunk = GrainSize
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	g.Wait()
}
