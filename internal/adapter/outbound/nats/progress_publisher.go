package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/messaging"
)

// ProgressPublisher publishes progress events and dead letters over
// JetStream. It implements messaging.ProgressPublisher and
// messaging.DeadLetterPublisher.
type ProgressPublisher struct {
	js nats.JetStreamContext
}

// NewProgressPublisher creates a publisher bound to the progress stream.
func NewProgressPublisher(js nats.JetStreamContext) *ProgressPublisher {
	return &ProgressPublisher{js: js}
}

func (p *ProgressPublisher) Publish(ctx context.Context, evt event.ProgressSubmitted) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal progress event: %w", err)
	}

	// The message id header lets JetStream drop duplicate publishes inside
	// its dedup window; the store-level idempotent insert covers the rest.
	msg := nats.NewMsg(SubjectProgressSubmitted)
	msg.Header.Set(nats.MsgIdHdr, evt.ID.String())
	msg.Data = data

	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish progress event: %w", err)
	}
	return nil
}

func (p *ProgressPublisher) PublishDeadLetter(ctx context.Context, payload []byte, reason messaging.DeadLetterReason, cause error) error {
	dl := deadLetter{
		Reason:     string(reason),
		DivertedAt: time.Now().UTC(),
		Payload:    json.RawMessage(payload),
	}
	if cause != nil {
		dl.Error = cause.Error()
	}

	data, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter: %w", err)
	}

	if _, err := p.js.Publish(SubjectProgressDeadLetter, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish dead letter: %w", err)
	}
	return nil
}

// deadLetter wraps an unprocessable payload with why it was diverted.
type deadLetter struct {
	Reason     string          `json:"reason"`
	Error      string          `json:"error,omitempty"`
	DivertedAt time.Time       `json:"diverted_at"`
	Payload    json.RawMessage `json:"payload"`
}
