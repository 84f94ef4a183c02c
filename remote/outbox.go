package remote

import (
	"context"
	"log/slog"
)

// Outbox delivers pad messages one at a time in the order they were
// queued, so a key-up can never overtake its key-down.
type Outbox struct {
	queue chan []byte
	send  func(data []byte)
}

func NewOutbox(size int, send func(data []byte)) *Outbox {
	return &Outbox{
		queue: make(chan []byte, size),
		send:  send,
	}
}

// Push queues data without blocking. It reports false when the queue is
// full and the message was dropped.
func (o *Outbox) Push(data []byte) bool {
	select {
	case o.queue <- data:
		return true
	default:
		slog.Warn("Outbox full, message dropped")
		return false
	}
}

// Run sends queued messages until ctx is done.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-o.queue:
			o.send(data)
		}
	}
}
