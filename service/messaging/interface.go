package messaging

import (
	"context"
)

// Queue represents an abstract message queue for any payload type. The
// engine uses it to fan change events out to subscribers.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue.
	Publish(ctx context.Context, t *T) error

	// TryPublish adds a message without blocking; it reports false when the
	// queue is full. Store mutations use it so a slow consumer never stalls
	// the caller.
	TryPublish(ctx context.Context, t *T) bool

	// Consume retrieves a single message from the queue, blocking until one
	// is available or ctx is done.
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message.
	T() *T

	// Ack acknowledges successful processing of this message.
	Ack() error

	// Nack indicates failure in processing this message; the queue may
	// redeliver it up to its retry limit.
	Nack(err error) error
}
