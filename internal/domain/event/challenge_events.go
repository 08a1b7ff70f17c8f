package event

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeCreated is emitted when a new challenge is created.
type ChallengeCreated struct {
	BaseEvent
	ChallengeID uuid.UUID `json:"challenge_id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// NewChallengeCreated creates a new ChallengeCreated event.
func NewChallengeCreated(challengeID uuid.UUID, name string, startDate, endDate time.Time) ChallengeCreated {
	return ChallengeCreated{
		BaseEvent:   NewBaseEvent(EventTypeChallengeCreated, challengeID, AggregateTypeChallenge),
		ChallengeID: challengeID,
		Name:        name,
		StartDate:   startDate,
		EndDate:     endDate,
	}
}

// ParticipantJoined is emitted when a user enrolls in a challenge.
type ParticipantJoined struct {
	BaseEvent
	ParticipantID uuid.UUID `json:"participant_id"`
	ChallengeID   uuid.UUID `json:"challenge_id"`
	UserID        uuid.UUID `json:"user_id"`
}

// NewParticipantJoined creates a new ParticipantJoined event.
func NewParticipantJoined(participantID, challengeID, userID uuid.UUID) ParticipantJoined {
	return ParticipantJoined{
		BaseEvent:     NewBaseEvent(EventTypeParticipantJoined, participantID, AggregateTypeParticipant),
		ParticipantID: participantID,
		ChallengeID:   challengeID,
		UserID:        userID,
	}
}
