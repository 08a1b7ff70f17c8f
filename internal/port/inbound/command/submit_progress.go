package command

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubmitProgress accepts one reported unit of progress for asynchronous
// processing. The handler publishes to the durable queue and returns without
// touching the store, so acceptance only means the queue has the event.
type SubmitProgress struct {
	ChallengeID uuid.UUID
	UserID      uuid.UUID
	Value       int
}

func (c SubmitProgress) CommandName() string {
	return "wellness.submit_progress"
}

// SubmitProgressResult identifies the accepted submission.
type SubmitProgressResult struct {
	EventID     uuid.UUID
	SubmittedAt time.Time
}

// SubmitProgressHandler handles the SubmitProgress command.
type SubmitProgressHandler interface {
	Handle(ctx context.Context, cmd SubmitProgress) (SubmitProgressResult, error)
}
