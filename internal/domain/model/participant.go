package model

import (
	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
)

// Participant is the enrollment record linking a user to a challenge.
// At most one participant exists per (challenge, user) pair.
type Participant struct {
	id          uuid.UUID
	challengeID uuid.UUID
	userID      uuid.UUID
}

// NewParticipant creates a new Participant enrollment.
func NewParticipant(challengeID, userID uuid.UUID) (*Participant, error) {
	if challengeID == uuid.Nil {
		return nil, domainerror.ErrChallengeIDRequired
	}
	if userID == uuid.Nil {
		return nil, domainerror.ErrUserIDRequired
	}

	return &Participant{
		id:          uuid.New(),
		challengeID: challengeID,
		userID:      userID,
	}, nil
}

// ReconstructParticipant creates a Participant from persisted data.
func ReconstructParticipant(id, challengeID, userID uuid.UUID) *Participant {
	return &Participant{
		id:          id,
		challengeID: challengeID,
		userID:      userID,
	}
}

// Getters

func (p *Participant) ID() uuid.UUID          { return p.id }
func (p *Participant) ChallengeID() uuid.UUID { return p.challengeID }
func (p *Participant) UserID() uuid.UUID      { return p.userID }
