package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/query"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// listActiveChallengesHandler implements query.ListActiveChallengesHandler.
type listActiveChallengesHandler struct {
	challengeRepo repository.ChallengeRepository
	now           func() time.Time
}

// NewListActiveChallengesHandler creates a new ListActiveChallengesHandler.
func NewListActiveChallengesHandler(challengeRepo repository.ChallengeRepository) query.ListActiveChallengesHandler {
	return &listActiveChallengesHandler{
		challengeRepo: challengeRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (h *listActiveChallengesHandler) Handle(ctx context.Context, qry query.ListActiveChallenges) (query.ListActiveChallengesResult, error) {
	if qry.UserID == uuid.Nil {
		return query.ListActiveChallengesResult{}, domainerror.ErrUserIDRequired
	}

	challenges, err := h.challengeRepo.ListActiveForUser(ctx, qry.UserID, h.now())
	if err != nil {
		return query.ListActiveChallengesResult{}, err
	}

	return query.ListActiveChallengesResult{Challenges: challenges}, nil
}
