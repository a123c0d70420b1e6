//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package comm

import (
	"context"
	"sync"
)

// mailbox queues payloads received from one peer by tag. Payloads of
// each tag are delivered in FIFO order.
type mailbox struct {
	m       sync.Mutex
	queues  map[string][][]byte
	waiters map[string]chan struct{}
	err     error
}

func newMailbox() *mailbox {
	return &mailbox{
		queues:  make(map[string][][]byte),
		waiters: make(map[string]chan struct{}),
	}
}

func (mb *mailbox) deliver(tag string, payload []byte) {
	mb.m.Lock()
	defer mb.m.Unlock()

	mb.queues[tag] = append(mb.queues[tag], payload)
	if ch, ok := mb.waiters[tag]; ok {
		close(ch)
		delete(mb.waiters, tag)
	}
}

// fail poisons the mailbox. Queued payloads remain receivable.
func (mb *mailbox) fail(err error) {
	mb.m.Lock()
	defer mb.m.Unlock()

	if mb.err == nil {
		mb.err = err
	}
	for tag, ch := range mb.waiters {
		close(ch)
		delete(mb.waiters, tag)
	}
}

func (mb *mailbox) receive(ctx context.Context, tag string) ([]byte, error) {
	for {
		mb.m.Lock()
		queue := mb.queues[tag]
		if len(queue) > 0 {
			payload := queue[0]
			if len(queue) == 1 {
				delete(mb.queues, tag)
			} else {
				mb.queues[tag] = queue[1:]
			}
			mb.m.Unlock()
			return payload, nil
		}
		if mb.err != nil {
			err := mb.err
			mb.m.Unlock()
			return nil, err
		}
		ch, ok := mb.waiters[tag]
		if !ok {
			ch = make(chan struct{})
			mb.waiters[tag] = ch
		}
		mb.m.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
