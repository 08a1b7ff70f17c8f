package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// ListActiveChallenges retrieves the currently running challenges a user
// participates in.
type ListActiveChallenges struct {
	UserID uuid.UUID
}

func (q ListActiveChallenges) QueryName() string {
	return "wellness.list_active_challenges"
}

// ListActiveChallengesResult contains the matching challenges.
type ListActiveChallengesResult struct {
	Challenges []*model.Challenge
}

// ListActiveChallengesHandler handles the ListActiveChallenges query.
type ListActiveChallengesHandler interface {
	Handle(ctx context.Context, qry ListActiveChallenges) (ListActiveChallengesResult, error)
}
