//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package comm implements the point-to-point communication primitive
// between the protocol parties.
package comm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/markkurossi/fantastic4/log"
	"github.com/markkurossi/fantastic4/metrics"
	"github.com/markkurossi/fantastic4/p2p"
)

const sendQueueSize = 64

var (
	// ErrClosed is returned when the communicator is closed.
	ErrClosed = errors.New("comm: closed")

	// ErrInvalidPeer is returned for ranks that do not identify a
	// peer.
	ErrInvalidPeer = errors.New("comm: invalid peer")
)

// Stats holds payload statistics. Frame headers are not counted.
type Stats struct {
	Sent  uint64
	Recvd uint64
}

// Communicator implements point-to-point messaging between parties
// identified by their ranks.
type Communicator struct {
	rank    int
	size    int
	peers   []*peer
	logger  *log.Logger
	metrics *metrics.LinkMetrics
	sent    atomic.Uint64
	recvd   atomic.Uint64

	m       sync.RWMutex
	closed  bool
	writers sync.WaitGroup
	readers sync.WaitGroup
}

type peer struct {
	rank  int
	conn  *p2p.Conn
	box   *mailbox
	queue chan *frame

	m   sync.Mutex
	err error
}

type frame struct {
	tag     string
	payload []byte
	done    chan error
}

// New creates a communicator for the party rank. The conns hold the
// connections to all peers, indexed by rank; conns[rank] must be nil.
// The metrics are optional.
func New(rank int, conns []*p2p.Conn, logger *log.Logger,
	m *metrics.LinkMetrics) (*Communicator, error) {

	if rank < 0 || rank >= len(conns) {
		return nil, fmt.Errorf("%w: rank %d of %d", ErrInvalidPeer, rank,
			len(conns))
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	c := &Communicator{
		rank:    rank,
		size:    len(conns),
		peers:   make([]*peer, len(conns)),
		logger:  logger.WithModule("comm").With("rank", rank),
		metrics: m,
	}
	for i, conn := range conns {
		if i == rank {
			if conn != nil {
				return nil, fmt.Errorf("comm: connection to self")
			}
			continue
		}
		if conn == nil {
			return nil, fmt.Errorf("%w: no connection to %d", ErrInvalidPeer, i)
		}
		p := &peer{
			rank:  i,
			conn:  conn,
			box:   newMailbox(),
			queue: make(chan *frame, sendQueueSize),
		}
		c.peers[i] = p

		c.writers.Add(1)
		go c.writer(p)
		c.readers.Add(1)
		go c.reader(p)
	}
	return c, nil
}

// Rank returns the rank of the local party.
func (c *Communicator) Rank() int {
	return c.rank
}

// Size returns the number of parties.
func (c *Communicator) Size() int {
	return c.size
}

// NextRank returns the rank of the next party.
func (c *Communicator) NextRank() int {
	return (c.rank + 1) % c.size
}

// PrevRank returns the rank of the previous party.
func (c *Communicator) PrevRank() int {
	return (c.rank + c.size - 1) % c.size
}

// Stats returns the payload statistics of the communicator.
func (c *Communicator) Stats() Stats {
	return Stats{
		Sent:  c.sent.Load(),
		Recvd: c.recvd.Load(),
	}
}

func (c *Communicator) peer(rank int) (*peer, error) {
	if rank < 0 || rank >= c.size || c.peers[rank] == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPeer, rank)
	}
	return c.peers[rank], nil
}

func (c *Communicator) enqueue(dst int, tag string, data []byte,
	done chan error) error {

	c.m.RLock()
	defer c.m.RUnlock()

	if c.closed {
		return ErrClosed
	}
	p, err := c.peer(dst)
	if err != nil {
		return err
	}
	if err := p.failure(); err != nil {
		return err
	}
	c.sent.Add(uint64(len(data)))
	if c.metrics != nil {
		c.metrics.Sent(dst, len(data))
	}
	p.queue <- &frame{
		tag:     tag,
		payload: data,
		done:    done,
	}
	return nil
}

// SendAsync sends data to the party dst without waiting for the
// transfer to complete. Messages to the same party are delivered in
// order. Transfer errors are reported by subsequent calls.
func (c *Communicator) SendAsync(dst int, tag string, data []byte) error {
	return c.enqueue(dst, tag, data, nil)
}

// Send sends data to the party dst and waits until the data is
// written to the connection.
func (c *Communicator) Send(ctx context.Context, dst int, tag string,
	data []byte) error {

	done := make(chan error, 1)
	if err := c.enqueue(dst, tag, data, done); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv receives the next message with tag from the party src.
func (c *Communicator) Recv(ctx context.Context, src int, tag string) (
	[]byte, error) {

	p, err := c.peer(src)
	if err != nil {
		return nil, err
	}
	data, err := p.box.receive(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("comm: recv %s from %d: %w", tag, src, err)
	}
	c.recvd.Add(uint64(len(data)))
	if c.metrics != nil {
		c.metrics.Received(src, len(data))
	}
	return data, nil
}

// Exchange runs one communication step: all sends are issued
// asynchronously and then the receives are awaited in order. The
// received payloads are returned in the order of step.Recvs.
func (c *Communicator) Exchange(ctx context.Context, step Step) (
	[][]byte, error) {

	for _, out := range step.Sends {
		if err := c.SendAsync(out.To, out.Tag, out.Payload); err != nil {
			return nil, err
		}
	}
	result := make([][]byte, len(step.Recvs))
	for i, in := range step.Recvs {
		data, err := c.Recv(ctx, in.From, in.Tag)
		if err != nil {
			return nil, err
		}
		result[i] = data
	}
	return result, nil
}

// Rotate sends data to the next party and receives the data of the
// previous party.
func (c *Communicator) Rotate(ctx context.Context, tag string,
	data []byte) ([]byte, error) {

	result, err := c.Exchange(ctx, Step{
		Sends: []Outbound{{To: c.NextRank(), Tag: tag, Payload: data}},
		Recvs: []Inbound{{From: c.PrevRank(), Tag: tag}},
	})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

// RotateBack sends data to the previous party and receives the data
// of the next party.
func (c *Communicator) RotateBack(ctx context.Context, tag string,
	data []byte) ([]byte, error) {

	result, err := c.Exchange(ctx, Step{
		Sends: []Outbound{{To: c.PrevRank(), Tag: tag, Payload: data}},
		Recvs: []Inbound{{From: c.NextRank(), Tag: tag}},
	})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

// Close flushes all pending messages and closes the peer
// connections.
func (c *Communicator) Close() error {
	c.m.Lock()
	if c.closed {
		c.m.Unlock()
		return ErrClosed
	}
	c.closed = true
	for _, p := range c.peers {
		if p != nil {
			close(p.queue)
		}
	}
	c.m.Unlock()

	c.writers.Wait()

	var result error
	for _, p := range c.peers {
		if p == nil {
			continue
		}
		if err := p.conn.Close(); err != nil && result == nil {
			result = err
		}
	}
	c.readers.Wait()
	return result
}

func (c *Communicator) isClosed() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.closed
}

func (c *Communicator) writer(p *peer) {
	defer c.writers.Done()
	for f := range p.queue {
		err := p.failure()
		if err == nil {
			err = p.conn.SendFrame(f.tag, f.payload)
			if err != nil {
				c.logger.Error("send failed", "peer", p.rank, "tag", f.tag,
					"err", err)
				p.setFailure(err)
			}
		}
		if f.done != nil {
			f.done <- err
		}
	}
}

func (c *Communicator) reader(p *peer) {
	defer c.readers.Done()
	for {
		tag, payload, err := p.conn.ReceiveFrame()
		if err != nil {
			if !c.isClosed() {
				c.logger.Debug("receive loop terminated", "peer", p.rank,
					"err", err)
			}
			p.box.fail(fmt.Errorf("peer %d: %w", p.rank, err))
			return
		}
		p.box.deliver(tag, payload)
	}
}

func (p *peer) failure() error {
	p.m.Lock()
	defer p.m.Unlock()
	return p.err
}

func (p *peer) setFailure(err error) {
	p.m.Lock()
	defer p.m.Unlock()
	if p.err == nil {
		p.err = err
	}
}
