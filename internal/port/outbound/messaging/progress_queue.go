package messaging

import (
	"context"

	"github.com/stridelab/wellness-challenges/internal/domain/event"
)

// ProgressPublisher publishes progress submissions onto the durable queue.
// Publish returns once the queue has accepted the message; it never waits for
// consumer processing.
type ProgressPublisher interface {
	Publish(ctx context.Context, evt event.ProgressSubmitted) error
}

// DeadLetterReason classifies why a delivery was diverted to the dead-letter
// subject instead of being processed.
type DeadLetterReason string

const (
	// ReasonUnenrolled marks events whose (challenge, user) pair has no
	// participant record. Redelivery cannot fix enrollment, so these are
	// acknowledged and diverted.
	ReasonUnenrolled DeadLetterReason = "unenrolled"

	// ReasonMalformed marks payloads that failed decoding or validation.
	ReasonMalformed DeadLetterReason = "malformed"

	// ReasonExhausted marks events that kept failing until the delivery cap.
	ReasonExhausted DeadLetterReason = "retries_exhausted"
)

// DeadLetterPublisher diverts unprocessable deliveries to a side destination
// for inspection, so they are neither lost nor retried forever.
type DeadLetterPublisher interface {
	PublishDeadLetter(ctx context.Context, payload []byte, reason DeadLetterReason, cause error) error
}
