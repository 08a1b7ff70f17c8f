package nats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/stridelab/wellness-challenges/internal/app/consumer"
	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/metrics"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/messaging"
)

const (
	fetchBatch     = 16
	retryBaseDelay = 2 * time.Second
	retryMaxDelay  = 2 * time.Minute
)

// ConsumerConfig tunes the durable subscription.
type ConsumerConfig struct {
	// MaxDeliver bounds redelivery; at the cap the message is dead-lettered
	// instead of retrying forever.
	MaxDeliver int

	// AckWait is how long JetStream waits for an ack before redelivering.
	AckWait time.Duration
}

// ProgressConsumer runs the durable subscription loop: fetch, process, then
// ack, nak-with-delay, or dead-letter. Processing is delegated to the app
// layer; this type only speaks transport.
type ProgressConsumer struct {
	sub        *nats.Subscription
	processor  *consumer.Processor
	deadLetter messaging.DeadLetterPublisher
	maxDeliver int
	logger     *zap.Logger
}

// NewProgressConsumer binds a durable pull subscription on the progress
// stream. Multiple processes binding the same durable share the work, each
// message going to exactly one of them.
func NewProgressConsumer(
	js nats.JetStreamContext,
	processor *consumer.Processor,
	deadLetter messaging.DeadLetterPublisher,
	cfg ConsumerConfig,
	logger *zap.Logger,
) (*ProgressConsumer, error) {
	if cfg.MaxDeliver <= 0 {
		cfg.MaxDeliver = 5
	}
	if cfg.AckWait <= 0 {
		cfg.AckWait = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sub, err := js.PullSubscribe(
		SubjectProgressSubmitted,
		DurableConsumer,
		nats.AckExplicit(),
		nats.AckWait(cfg.AckWait),
		nats.MaxDeliver(cfg.MaxDeliver),
	)
	if err != nil {
		return nil, err
	}

	return &ProgressConsumer{
		sub:        sub,
		processor:  processor,
		deadLetter: deadLetter,
		maxDeliver: cfg.MaxDeliver,
		logger:     logger,
	}, nil
}

// Run fetches and processes deliveries until ctx is cancelled. In-flight
// messages finish processing before Run returns; anything unacknowledged is
// redelivered by the stream.
func (c *ProgressConsumer) Run(ctx context.Context) error {
	metrics.ConsumerActive.Set(1)
	defer metrics.ConsumerActive.Set(0)

	c.logger.Info("progress consumer started",
		zap.String("subject", SubjectProgressSubmitted),
		zap.String("durable", DurableConsumer),
	)

	for {
		if ctx.Err() != nil {
			c.logger.Info("progress consumer stopping")
			return ctx.Err()
		}

		msgs, err := c.sub.Fetch(fetchBatch, nats.Context(ctx))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			c.logger.Error("failed to fetch progress events", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, msg := range msgs {
			c.handle(ctx, msg)
		}
	}
}

func (c *ProgressConsumer) handle(ctx context.Context, msg *nats.Msg) {
	var evt event.ProgressSubmitted
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		c.divert(ctx, msg, messaging.ReasonMalformed, err)
		return
	}

	outcome, err := c.processor.Process(ctx, evt)
	switch outcome {
	case consumer.OutcomeApplied, consumer.OutcomeDuplicate:
		c.ack(msg)

	case consumer.OutcomeUnenrolled:
		// Redelivery cannot fix enrollment, so the delivery is final: ack it,
		// but keep the event inspectable instead of dropping it silently.
		c.divert(ctx, msg, messaging.ReasonUnenrolled, nil)

	default:
		if errors.Is(err, domainerror.ErrEventMalformed) {
			c.divert(ctx, msg, messaging.ReasonMalformed, err)
			return
		}
		c.retryOrDivert(ctx, msg, err)
	}
}

// retryOrDivert naks with a growing delay until the delivery cap, then
// dead-letters and terminates the message.
func (c *ProgressConsumer) retryOrDivert(ctx context.Context, msg *nats.Msg, cause error) {
	deliveries := numDelivered(msg)

	if deliveries >= uint64(c.maxDeliver) {
		c.logger.Error("progress event exhausted retries",
			zap.Uint64("deliveries", deliveries),
			zap.Error(cause),
		)
		c.divert(ctx, msg, messaging.ReasonExhausted, cause)
		return
	}

	delay := retryDelay(deliveries)
	c.logger.Warn("progress event processing failed, requeueing",
		zap.Uint64("deliveries", deliveries),
		zap.Duration("delay", delay),
		zap.Error(cause),
	)
	if err := msg.NakWithDelay(delay); err != nil {
		c.logger.Error("failed to nak message", zap.Error(err))
	}
}

// divert publishes the payload to the dead-letter subject and removes the
// message from the work queue. If the dead-letter publish itself fails the
// message is nacked so nothing is lost.
func (c *ProgressConsumer) divert(ctx context.Context, msg *nats.Msg, reason messaging.DeadLetterReason, cause error) {
	if err := c.deadLetter.PublishDeadLetter(ctx, msg.Data, reason, cause); err != nil {
		c.logger.Error("failed to dead-letter message, requeueing",
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
		_ = msg.NakWithDelay(retryBaseDelay)
		return
	}

	metrics.EventsDeadLettered.WithLabelValues(string(reason)).Inc()

	if reason == messaging.ReasonUnenrolled {
		c.ack(msg)
		return
	}
	if err := msg.Term(); err != nil {
		c.logger.Error("failed to terminate message", zap.Error(err))
	}
}

func (c *ProgressConsumer) ack(msg *nats.Msg) {
	if err := msg.Ack(); err != nil {
		c.logger.Error("failed to ack message", zap.Error(err))
	}
}

func numDelivered(msg *nats.Msg) uint64 {
	meta, err := msg.Metadata()
	if err != nil {
		return 1
	}
	return meta.NumDelivered
}

// retryDelay doubles per delivery, capped at retryMaxDelay.
func retryDelay(deliveries uint64) time.Duration {
	if deliveries < 1 {
		deliveries = 1
	}
	delay := retryBaseDelay
	for i := uint64(1); i < deliveries && delay < retryMaxDelay; i++ {
		delay *= 2
	}
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
