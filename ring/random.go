//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"fmt"
	"io"
)

// Random returns n uniformly random ring elements read from rand.
func Random[E comparable](r Ring[E], rand io.Reader, n int) ([]E, error) {
	buf := make([]byte, n*r.Field().Bytes())
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, err
	}
	return Unmarshal(r, buf, n)
}

// AdditiveSplits splits x into count uniformly random vectors whose
// element-wise sum is x.
func AdditiveSplits[E comparable](r Ring[E], rand io.Reader, x []E,
	count int) ([][]E, error) {

	if count < 2 {
		return nil, fmt.Errorf("ring: invalid split count %d", count)
	}
	splits := make([][]E, count)
	last := make([]E, len(x))
	copy(last, x)

	for i := 0; i < count-1; i++ {
		s, err := Random(r, rand, len(x))
		if err != nil {
			return nil, err
		}
		for j, v := range s {
			last[j] = r.Sub(last[j], v)
		}
		splits[i] = s
	}
	splits[count-1] = last

	return splits, nil
}
