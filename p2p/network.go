//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/fantastic4/log"
)

const (
	handshakeMagic = 0x46345031 // "F4P1"
	handshakeOK    = 0x01

	defaultRetryDelay = time.Second
)

// ErrHandshake is returned when a peer fails the connection
// handshake.
var ErrHandshake = errors.New("p2p: handshake failed")

// Network implements a fully connected TCP network between parties.
// A party dials all parties with a higher rank and accepts
// connections from all parties with a lower rank.
type Network struct {
	Rank       int
	Session    uuid.UUID
	RetryDelay time.Duration

	m        sync.Mutex
	peers    []*Conn
	listener net.Listener
	logger   *log.Logger
}

// Listen creates the network endpoint of the party rank listening
// for peer connections at addr.
func Listen(rank int, addr string, session uuid.UUID, logger *log.Logger) (
	*Network, error) {

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Network{
		Rank:       rank,
		Session:    session,
		RetryDelay: defaultRetryDelay,
		listener:   listener,
		logger:     logger.WithModule("p2p").With("rank", rank),
	}, nil
}

// Addr returns the listener address of the network.
func (nw *Network) Addr() net.Addr {
	return nw.listener.Addr()
}

// Connect connects the party to all peers. The addrs specify the
// listener addresses of all parties, indexed by rank. Connect
// returns the peer connections indexed by rank; the party's own
// entry is nil.
func (nw *Network) Connect(ctx context.Context, addrs []string) (
	[]*Conn, error) {

	if nw.Rank < 0 || nw.Rank >= len(addrs) {
		return nil, fmt.Errorf("p2p: invalid rank %d for %d parties",
			nw.Rank, len(addrs))
	}
	nw.m.Lock()
	nw.peers = make([]*Conn, len(addrs))
	nw.m.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	// Accept connections from lower ranks.
	g.Go(func() error {
		for i := 0; i < nw.Rank; i++ {
			if err := nw.accept(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	// Dial higher ranks.
	for peer := nw.Rank + 1; peer < len(addrs); peer++ {
		g.Go(func() error {
			return nw.dial(ctx, peer, addrs[peer])
		})
	}

	// The listener is closed once the group finishes or fails, which
	// also unblocks a pending Accept.
	context.AfterFunc(ctx, func() {
		nw.listener.Close()
	})
	err := g.Wait()

	if err != nil {
		nw.closePeers()
		return nil, err
	}
	nw.logger.Info("network connected", "parties", len(addrs))

	nw.m.Lock()
	defer nw.m.Unlock()
	return nw.peers, nil
}

func (nw *Network) dial(ctx context.Context, peer int, addr string) error {
	var dialer net.Dialer
	for {
		nw.logger.Debug("connecting", "peer", peer, "addr", addr)
		nc, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			nw.logger.Info("connect failed, retrying", "peer", peer,
				"addr", addr, "delay", nw.RetryDelay, "err", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(nw.RetryDelay):
				continue
			}
		}
		conn := NewConn(nc)
		if err := nw.clientHandshake(conn); err != nil {
			conn.Close()
			return fmt.Errorf("peer %d: %w", peer, err)
		}
		nw.logger.Info("connected", "peer", peer, "addr", addr)
		return nw.addPeer(peer, conn)
	}
}

func (nw *Network) accept(ctx context.Context) error {
	nc, err := nw.listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	conn := NewConn(nc)
	peer, err := nw.serverHandshake(conn)
	if err != nil {
		conn.Close()
		return err
	}
	nw.logger.Info("accepted", "peer", peer, "addr", nc.RemoteAddr())
	return nw.addPeer(peer, conn)
}

func (nw *Network) clientHandshake(conn *Conn) error {
	if err := conn.SendUint32(handshakeMagic); err != nil {
		return err
	}
	if err := conn.SendUint32(nw.Rank); err != nil {
		return err
	}
	if err := conn.SendData(nw.Session[:]); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	ack, err := conn.ReceiveByte()
	if err != nil {
		return err
	}
	if ack != handshakeOK {
		return fmt.Errorf("%w: rejected by peer", ErrHandshake)
	}
	return nil
}

func (nw *Network) serverHandshake(conn *Conn) (int, error) {
	magic, err := conn.ReceiveUint32()
	if err != nil {
		return 0, err
	}
	if magic != handshakeMagic {
		return 0, fmt.Errorf("%w: invalid magic %08x", ErrHandshake, magic)
	}
	rank, err := conn.ReceiveUint32()
	if err != nil {
		return 0, err
	}
	data, err := conn.ReceiveData()
	if err != nil {
		return 0, err
	}
	session, err := uuid.FromBytes(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if session != nw.Session {
		conn.SendByte(0)
		conn.Flush()
		return 0, fmt.Errorf("%w: session %s, expected %s", ErrHandshake,
			session, nw.Session)
	}
	if rank >= nw.Rank {
		conn.SendByte(0)
		conn.Flush()
		return 0, fmt.Errorf("%w: unexpected peer rank %d", ErrHandshake, rank)
	}
	if err := conn.SendByte(handshakeOK); err != nil {
		return 0, err
	}
	return rank, conn.Flush()
}

func (nw *Network) addPeer(rank int, conn *Conn) error {
	nw.m.Lock()
	defer nw.m.Unlock()

	if nw.peers[rank] != nil {
		conn.Close()
		return fmt.Errorf("p2p: peer %d already connected", rank)
	}
	nw.peers[rank] = conn
	return nil
}

func (nw *Network) closePeers() {
	nw.m.Lock()
	defer nw.m.Unlock()

	for i, conn := range nw.peers {
		if conn != nil {
			conn.Close()
			nw.peers[i] = nil
		}
	}
}

// Stats returns the I/O stats from the network.
func (nw *Network) Stats() IOStats {
	nw.m.Lock()
	defer nw.m.Unlock()

	result := NewIOStats()
	for _, conn := range nw.peers {
		if conn != nil {
			result = result.Add(conn.Stats)
		}
	}
	return result
}

// Close closes the network listener if it is still open. Peer
// connections are owned by the caller of Connect.
func (nw *Network) Close() error {
	err := nw.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
