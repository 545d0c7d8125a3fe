package event

import (
	"context"

	"github.com/crewmatch/crewmatch/service/messaging"
)

// Publisher publishes typed events onto a queue.
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher creates a publisher over the supplied queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish enqueues the payload, blocking while the queue is full.
func (p *Publisher[T]) Publish(ctx context.Context, data T) error {
	return p.queue.Publish(ctx, NewEvent(data))
}

// TryPublish enqueues the payload without blocking; a full queue drops the
// event rather than stalling the caller.
func (p *Publisher[T]) TryPublish(ctx context.Context, data T) bool {
	return p.queue.TryPublish(ctx, NewEvent(data))
}

// Consume retrieves and acknowledges the next event.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
