package command

import (
	"context"

	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/metrics"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/command"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/messaging"
)

// submitProgressHandler implements command.SubmitProgressHandler.
//
// This is the producer side of the pipeline: it packages the submission as an
// event and hands it to the durable queue. It deliberately performs no store
// or cache access, so the only failure it can surface is the queue itself
// being unreachable.
type submitProgressHandler struct {
	queue messaging.ProgressPublisher
}

// NewSubmitProgressHandler creates a new SubmitProgressHandler.
func NewSubmitProgressHandler(queue messaging.ProgressPublisher) command.SubmitProgressHandler {
	return &submitProgressHandler{queue: queue}
}

func (h *submitProgressHandler) Handle(ctx context.Context, cmd command.SubmitProgress) (command.SubmitProgressResult, error) {
	if cmd.ChallengeID == uuid.Nil {
		return command.SubmitProgressResult{}, domainerror.ErrChallengeIDRequired
	}
	if cmd.UserID == uuid.Nil {
		return command.SubmitProgressResult{}, domainerror.ErrUserIDRequired
	}

	evt := event.NewProgressSubmitted(cmd.ChallengeID, cmd.UserID, cmd.Value)

	// A lost publish means a lost submission, so this error is fatal to the
	// request rather than silently accepted.
	if err := h.queue.Publish(ctx, evt); err != nil {
		return command.SubmitProgressResult{}, domainerror.Wrap(domainerror.ErrQueueUnavailable, err)
	}

	metrics.EventsPublished.Inc()

	return command.SubmitProgressResult{
		EventID:     evt.ID,
		SubmittedAt: evt.SubmittedAt,
	}, nil
}
