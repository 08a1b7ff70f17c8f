package query

import (
	"context"
	"errors"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/query"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// getChallengeHandler implements query.GetChallengeHandler.
type getChallengeHandler struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
}

// NewGetChallengeHandler creates a new GetChallengeHandler.
func NewGetChallengeHandler(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
) query.GetChallengeHandler {
	return &getChallengeHandler{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
	}
}

func (h *getChallengeHandler) Handle(ctx context.Context, qry query.GetChallenge) (query.GetChallengeResult, error) {
	challenge, err := h.challengeRepo.FindByID(ctx, qry.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return query.GetChallengeResult{}, domainerror.ErrChallengeNotFound
		}
		return query.GetChallengeResult{}, err
	}

	participants, err := h.participantRepo.ListByChallenge(ctx, qry.ChallengeID)
	if err != nil {
		return query.GetChallengeResult{}, err
	}

	return query.GetChallengeResult{
		Challenge:    challenge,
		Participants: participants,
	}, nil
}
