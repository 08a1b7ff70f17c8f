package messaging

import (
	"context"

	"github.com/stridelab/wellness-challenges/internal/domain/event"
)

// EventPublisher defines the interface for publishing lifecycle domain events.
// These are fire-and-forget notifications, distinct from the durable progress
// queue.
type EventPublisher interface {
	// Publish publishes a single event.
	Publish(ctx context.Context, evt event.Event) error

	// PublishAll publishes multiple events.
	PublishAll(ctx context.Context, events []event.Event) error
}

// Topic names for lifecycle events. The transport adapter prefixes them with
// the configured subject prefix.
const (
	TopicChallengeEvents   = "challenge"
	TopicParticipantEvents = "participant"
)

// TopicForEvent returns the appropriate topic for an event type.
func TopicForEvent(evt event.Event) string {
	switch evt.AggregateType() {
	case event.AggregateTypeParticipant:
		return TopicParticipantEvents
	default:
		return TopicChallengeEvents
	}
}
