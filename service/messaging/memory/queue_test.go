package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value string
}

func TestQueue_PublishConsume(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx := context.Background()

	require.NoError(t, queue.Publish(ctx, &payload{Value: "first"}))
	require.NoError(t, queue.Publish(ctx, &payload{Value: "second"}))
	assert.Equal(t, 2, queue.Size())

	msg, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", msg.T().Value)
	assert.NoError(t, msg.Ack())
	assert.Error(t, msg.Ack(), "double ack must fail")
}

func TestQueue_NackRedelivers(t *testing.T) {
	config := Config{MaxRetries: 1, RetryDelay: time.Millisecond, QueueBuffer: 4}
	queue := NewQueue[payload](config)
	ctx := context.Background()

	require.NoError(t, queue.Publish(ctx, &payload{Value: "flaky"}))
	msg, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, msg.Nack(assert.AnError))

	redelivered, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "flaky", redelivered.T().Value)

	// Retry budget exhausted: the message is dropped, not redelivered.
	require.NoError(t, redelivered.Nack(assert.AnError))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, uint64(1), queue.Dropped())
}

func TestQueue_TryPublishFull(t *testing.T) {
	queue := NewQueue[payload](Config{QueueBuffer: 1})
	ctx := context.Background()

	assert.True(t, queue.TryPublish(ctx, &payload{Value: "fits"}))
	assert.False(t, queue.TryPublish(ctx, &payload{Value: "overflow"}))
	assert.Equal(t, uint64(1), queue.Dropped())
}
