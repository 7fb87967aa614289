package port

import (
	"context"
)

// EventPublisher defines the interface for publishing health events to a
// message broker. Optional: the check cycle runs fine without one.
type EventPublisher interface {
	// PublishEvent publishes an event to the specified subject
	PublishEvent(ctx context.Context, subject string, event interface{}) error

	// Close closes the connection to the message broker
	Close() error
}
