// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import "time"

// EventType labels what happened to the payload.
type EventType string

const (
	// CreatedEvent announces a new payload, e.g. a fresh log entry.
	CreatedEvent EventType = "created"
	// UpdatedEvent announces a payload that replaced an earlier one.
	UpdatedEvent EventType = "updated"
	// QueuedEvent announces work that was scheduled but has not run,
	// e.g. a statement waiting out its validation debounce.
	QueuedEvent EventType = "queued"
	// CompletedEvent announces finished work, e.g. a validation pass.
	CompletedEvent EventType = "completed"
)

// Event carries a typed payload to subscribers.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
