package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// GetChallenge retrieves a challenge and its participants by ID.
type GetChallenge struct {
	ChallengeID uuid.UUID
}

func (q GetChallenge) QueryName() string {
	return "wellness.get_challenge"
}

// GetChallengeResult contains the challenge and its enrollments.
type GetChallengeResult struct {
	Challenge    *model.Challenge
	Participants []*model.Participant
}

// GetChallengeHandler handles the GetChallenge query.
type GetChallengeHandler interface {
	Handle(ctx context.Context, qry GetChallenge) (GetChallengeResult, error)
}
