// Package event delivers engine change notifications to subscribers through
// a messaging queue. The presentation layer listens here and re-renders from
// store snapshots; the engine never pushes derived markup.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event wraps a payload with delivery metadata.
type Event[T any] struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Data      T         `json:"data"`
}

// NewEvent creates a new event for the supplied payload.
func NewEvent[T any](data T) *Event[T] {
	return &Event[T]{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Data:      data,
	}
}
