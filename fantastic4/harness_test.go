//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package fantastic4

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/fantastic4/comm"
	"github.com/markkurossi/fantastic4/env"
	"github.com/markkurossi/fantastic4/p2p"
	"github.com/markkurossi/fantastic4/ring"
	"github.com/markkurossi/fantastic4/value"
)

type party struct {
	*Context
	link *comm.Communicator
}

func newParties(t *testing.T) []*party {
	t.Helper()

	mesh := p2p.Mesh(NumParties)
	parties := make([]*party, NumParties)
	for i := range parties {
		c, err := comm.New(i, mesh[i], nil, nil)
		require.NoError(t, err)
		ctx, err := NewContext(c, &env.Config{
			Workers: 2,
		})
		require.NoError(t, err)
		parties[i] = &party{
			Context: ctx,
			link:    c,
		}
	}
	t.Cleanup(func() {
		for _, p := range parties {
			p.link.Close()
		}
	})
	return parties
}

// evaluate runs fn at all parties concurrently and returns the
// results by rank.
func evaluate(t *testing.T, parties []*party,
	fn func(ctx context.Context, p *party) (*value.Value, error)) []*value.Value {

	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results := make([]*value.Value, len(parties))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range parties {
		g.Go(func() error {
			v, err := fn(ctx, p)
			results[i] = v
			return err
		})
	}
	require.NoError(t, g.Wait())
	return results
}

// forFields runs the test variants for all supported fields.
func forFields(t *testing.T, fm32, fm64, fm128 func(t *testing.T)) {
	t.Run("FM32", fm32)
	t.Run("FM64", fm64)
	t.Run("FM128", fm128)
}

// inputs returns random test elements including the edge values 0,
// 1, and -1.
func inputs[E comparable](t *testing.T, r ring.Ring[E], n int) []E {
	t.Helper()

	data, err := ring.Random(r, rand.Reader, n)
	require.NoError(t, err)
	return append([]E{r.Zero(), r.FromUint64(1), r.Neg(r.FromUint64(1))},
		data...)
}

func vectorShape[E any](data []E) value.Shape {
	return value.Shape{int64(len(data))}
}

func public[E comparable](t *testing.T, r ring.Ring[E], data []E) *value.Value {
	t.Helper()

	v, err := value.NewPublic(r, vectorShape(data), data)
	require.NoError(t, err)
	return v
}

// private returns the private value of data at the owner and a
// placeholder elsewhere.
func private[E comparable](t *testing.T, r ring.Ring[E], rank, owner int,
	data []E) *value.Value {

	t.Helper()

	if rank != owner {
		return value.NewPlaceholder(value.Private(r.Field(), owner),
			vectorShape(data))
	}
	v, err := value.NewPrivate(r, owner, vectorShape(data), data)
	require.NoError(t, err)
	return v
}

// requirePublic verifies that all results are public values equal
// to expected.
func requirePublic[E comparable](t *testing.T, results []*value.Value,
	expected []E) {

	t.Helper()

	for rank, v := range results {
		require.Equal(t, value.KindPublic, v.Kind(), "rank %d", rank)
		data, err := value.Elements[E](v)
		require.NoError(t, err)
		require.Equal(t, expected, data, "rank %d", rank)
	}
}
