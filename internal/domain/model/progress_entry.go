package model

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
)

// ProgressEntry is one immutable unit of reported progress. Its identity is
// the id of the event it was created from, which is what makes redelivered
// events insert-idempotent at the store boundary.
type ProgressEntry struct {
	id          uuid.UUID
	challengeID uuid.UUID
	userID      uuid.UUID
	value       int
	recordedAt  time.Time
}

// NewProgressEntry creates a ProgressEntry with the given identity. The value
// may be negative; corrections arrive as negative units.
func NewProgressEntry(id, challengeID, userID uuid.UUID, value int, recordedAt time.Time) (*ProgressEntry, error) {
	if challengeID == uuid.Nil {
		return nil, domainerror.ErrChallengeIDRequired
	}
	if userID == uuid.Nil {
		return nil, domainerror.ErrUserIDRequired
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &ProgressEntry{
		id:          id,
		challengeID: challengeID,
		userID:      userID,
		value:       value,
		recordedAt:  recordedAt.UTC(),
	}, nil
}

// ReconstructProgressEntry creates a ProgressEntry from persisted data.
func ReconstructProgressEntry(id, challengeID, userID uuid.UUID, value int, recordedAt time.Time) *ProgressEntry {
	return &ProgressEntry{
		id:          id,
		challengeID: challengeID,
		userID:      userID,
		value:       value,
		recordedAt:  recordedAt.UTC(),
	}
}

// Getters

func (e *ProgressEntry) ID() uuid.UUID          { return e.id }
func (e *ProgressEntry) ChallengeID() uuid.UUID { return e.challengeID }
func (e *ProgressEntry) UserID() uuid.UUID      { return e.userID }
func (e *ProgressEntry) Value() int             { return e.value }
func (e *ProgressEntry) RecordedAt() time.Time  { return e.recordedAt }
