//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package comm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/fantastic4/metrics"
	"github.com/markkurossi/fantastic4/p2p"
)

func newGroup(t *testing.T, n int, m *metrics.LinkMetrics) []*Communicator {
	t.Helper()

	mesh := p2p.Mesh(n)
	result := make([]*Communicator, n)
	for i := 0; i < n; i++ {
		c, err := New(i, mesh[i], nil, m)
		require.NoError(t, err)
		result[i] = c
	}
	t.Cleanup(func() {
		for _, c := range result {
			c.Close()
		}
	})
	return result
}

func run(t *testing.T, group []*Communicator,
	fn func(ctx context.Context, c *Communicator) error) {

	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range group {
		g.Go(func() error {
			return fn(ctx, c)
		})
	}
	require.NoError(t, g.Wait())
}

func TestNeighbours(t *testing.T) {
	group := newGroup(t, 4, nil)

	expected := [][2]int{{1, 3}, {2, 0}, {3, 1}, {0, 2}}
	for i, c := range group {
		require.Equal(t, i, c.Rank())
		require.Equal(t, 4, c.Size())
		require.Equal(t, expected[i][0], c.NextRank(), "next of %d", i)
		require.Equal(t, expected[i][1], c.PrevRank(), "prev of %d", i)
	}
}

func TestRotate(t *testing.T) {
	group := newGroup(t, 4, nil)

	run(t, group, func(ctx context.Context, c *Communicator) error {
		data, err := c.Rotate(ctx, "rotate", []byte{byte(c.Rank())})
		if err != nil {
			return err
		}
		if int(data[0]) != c.PrevRank() {
			return fmt.Errorf("rotate: got %d from %d", data[0], c.PrevRank())
		}
		data, err = c.RotateBack(ctx, "back", []byte{byte(c.Rank())})
		if err != nil {
			return err
		}
		if int(data[0]) != c.NextRank() {
			return fmt.Errorf("rotate back: got %d from %d", data[0],
				c.NextRank())
		}
		return nil
	})
}

func TestTagDemux(t *testing.T) {
	group := newGroup(t, 2, nil)

	run(t, group, func(ctx context.Context, c *Communicator) error {
		if c.Rank() == 0 {
			for i := 0; i < 3; i++ {
				if err := c.SendAsync(1, "a", []byte{byte(i)}); err != nil {
					return err
				}
			}
			return c.Send(ctx, 1, "b", []byte("b"))
		}
		// Receive in different order than sent.
		data, err := c.Recv(ctx, 0, "b")
		if err != nil {
			return err
		}
		if string(data) != "b" {
			return fmt.Errorf("unexpected data %q", data)
		}
		for i := 0; i < 3; i++ {
			data, err = c.Recv(ctx, 0, "a")
			if err != nil {
				return err
			}
			if int(data[0]) != i {
				return fmt.Errorf("FIFO violation: got %d, expected %d",
					data[0], i)
			}
		}
		return nil
	})
}

func TestExchange(t *testing.T) {
	group := newGroup(t, 4, nil)

	run(t, group, func(ctx context.Context, c *Communicator) error {
		var step Step
		for peer := 0; peer < c.Size(); peer++ {
			if peer == c.Rank() {
				continue
			}
			step.Sends = append(step.Sends, Outbound{
				To:      peer,
				Tag:     "all",
				Payload: []byte{byte(c.Rank()), byte(peer)},
			})
			step.Recvs = append(step.Recvs, Inbound{
				From: peer,
				Tag:  "all",
			})
		}
		result, err := c.Exchange(ctx, step)
		if err != nil {
			return err
		}
		if len(result) != len(step.Recvs) {
			return fmt.Errorf("got %d results", len(result))
		}
		for i, in := range step.Recvs {
			if int(result[i][0]) != in.From || int(result[i][1]) != c.Rank() {
				return fmt.Errorf("unexpected payload %v from %d",
					result[i], in.From)
			}
		}
		return nil
	})

	for _, c := range group {
		stats := c.Stats()
		require.Equal(t, uint64(6), stats.Sent)
		require.Equal(t, uint64(6), stats.Recvd)
	}
	require.True(t, Step{}.Empty())
}

func TestLinkMetrics(t *testing.T) {
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	group := newGroup(t, 2, &m.Link)

	run(t, group, func(ctx context.Context, c *Communicator) error {
		_, err := c.Rotate(ctx, "m", make([]byte, 100))
		return err
	})
	for _, peer := range []string{"0", "1"} {
		require.Equal(t, 100.0, testutil.ToFloat64(
			m.Link.Bytes.WithLabelValues(peer, "sent")))
		require.Equal(t, 100.0, testutil.ToFloat64(
			m.Link.Bytes.WithLabelValues(peer, "received")))
	}
}

func TestInvalidPeer(t *testing.T) {
	group := newGroup(t, 2, nil)

	err := group[0].SendAsync(0, "self", nil)
	require.ErrorIs(t, err, ErrInvalidPeer)

	_, err = group[0].Recv(context.Background(), 5, "x")
	require.ErrorIs(t, err, ErrInvalidPeer)

	_, err = New(3, make([]*p2p.Conn, 2), nil, nil)
	require.ErrorIs(t, err, ErrInvalidPeer)
}

func TestRecvCancel(t *testing.T) {
	group := newGroup(t, 2, nil)

	ctx, cancel := context.WithTimeout(context.Background(),
		50*time.Millisecond)
	defer cancel()

	_, err := group[0].Recv(ctx, 1, "never")
	require.True(t, errors.Is(err, context.DeadlineExceeded), "err=%v", err)
}

func TestPeerClosed(t *testing.T) {
	mesh := p2p.Mesh(2)
	c0, err := New(0, mesh[0], nil, nil)
	require.NoError(t, err)
	defer c0.Close()

	c1, err := New(1, mesh[1], nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c1.Send(ctx, 0, "last", []byte("bye")))
	require.NoError(t, c1.Close())
	require.ErrorIs(t, c1.Close(), ErrClosed)
	require.ErrorIs(t, c1.SendAsync(0, "late", nil), ErrClosed)

	// Queued data stays receivable after the peer has gone.
	data, err := c0.Recv(ctx, 1, "last")
	require.NoError(t, err)
	require.Equal(t, []byte("bye"), data)

	_, err = c0.Recv(ctx, 1, "more")
	require.Error(t, err)
}
