package event

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
)

// ProgressSubmitted is the wire representation of one progress submission.
// Unlike the lifecycle events it round-trips through the durable queue, so
// its fields are exported and JSON-tagged. The event id doubles as the
// idempotency key: the consumer derives the progress entry's identity from
// it, which makes at-least-once redelivery a no-op at the store.
type ProgressSubmitted struct {
	ID          uuid.UUID `json:"event_id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	UserID      uuid.UUID `json:"user_id"`
	Value       int       `json:"value"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewProgressSubmitted creates a ProgressSubmitted event stamped with a fresh
// event id and the current UTC time.
func NewProgressSubmitted(challengeID, userID uuid.UUID, value int) ProgressSubmitted {
	return ProgressSubmitted{
		ID:          uuid.New(),
		ChallengeID: challengeID,
		UserID:      userID,
		Value:       value,
		SubmittedAt: time.Now().UTC(),
	}
}

// Validate checks the decoded payload before the consumer acts on it.
func (e ProgressSubmitted) Validate() error {
	if e.ID == uuid.Nil || e.ChallengeID == uuid.Nil || e.UserID == uuid.Nil {
		return domainerror.ErrEventMalformed
	}
	if e.SubmittedAt.IsZero() {
		return domainerror.ErrEventMalformed
	}
	return nil
}

func (e ProgressSubmitted) EventID() uuid.UUID     { return e.ID }
func (e ProgressSubmitted) EventType() string      { return "progress.submitted" }
func (e ProgressSubmitted) OccurredAt() time.Time  { return e.SubmittedAt }
func (e ProgressSubmitted) AggregateID() uuid.UUID { return e.ChallengeID }
func (e ProgressSubmitted) AggregateType() string  { return AggregateTypeChallenge }
