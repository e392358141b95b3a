package discordipc

import "sync"

// sendQueue is the bounded FIFO of serialized outbound frames shared by the
// façade, the subscription engine, and the I/O loop itself (for PONG
// replies). Go's native closed-channel idiom stands in for the source's
// `Option<bytes>` None sentinel: [sendQueue.shutdown] closes the quit
// channel once, and every producer/consumer selects on it alongside the
// data channel.
type sendQueue struct {
	ch   chan []byte
	quit chan struct{}
	once sync.Once
}

func newSendQueue(capacity int) *sendQueue {
	if capacity <= 0 {
		capacity = 100
	}
	return &sendQueue{
		ch:   make(chan []byte, capacity),
		quit: make(chan struct{}),
	}
}

// push enqueues a frame, blocking until there is room. It returns
// [ErrChannelDisconnected] if the queue has been shut down.
func (q *sendQueue) push(frame []byte) error {
	select {
	case <-q.quit:
		return ErrChannelDisconnected
	default:
	}
	select {
	case q.ch <- frame:
		return nil
	case <-q.quit:
		return ErrChannelDisconnected
	}
}

// tryPush enqueues a frame without blocking, dropping it if the queue is
// full or shut down. Used for PONG replies, where blocking the reader on a
// full send queue would stall frame dispatch.
func (q *sendQueue) tryPush(frame []byte) bool {
	select {
	case <-q.quit:
		return false
	default:
	}
	select {
	case q.ch <- frame:
		return true
	default:
		return false
	}
}

// shutdown closes the quit channel, unblocking every pending push and
// telling the writer loop to stop after draining nothing further.
func (q *sendQueue) shutdown() {
	q.once.Do(func() { close(q.quit) })
}
