package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// ParticipantRepository defines the interface for enrollment persistence.
type ParticipantRepository interface {
	// Create persists a new participant.
	// Returns ErrDuplicate when the (challenge, user) pair is already enrolled.
	Create(ctx context.Context, participant *model.Participant) error

	// FindByChallengeAndUser retrieves the enrollment for a (challenge, user)
	// pair. Returns ErrNotFound when the user is not enrolled.
	FindByChallengeAndUser(ctx context.Context, challengeID, userID uuid.UUID) (*model.Participant, error)

	// ListByChallenge retrieves all participants of a challenge.
	ListByChallenge(ctx context.Context, challengeID uuid.UUID) ([]*model.Participant, error)
}
