package command

import (
	"context"
	"errors"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/command"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/messaging"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// addParticipantHandler implements command.AddParticipantHandler.
type addParticipantHandler struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
	publisher       messaging.EventPublisher
}

// NewAddParticipantHandler creates a new AddParticipantHandler.
func NewAddParticipantHandler(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
	publisher messaging.EventPublisher,
) command.AddParticipantHandler {
	return &addParticipantHandler{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		publisher:       publisher,
	}
}

func (h *addParticipantHandler) Handle(ctx context.Context, cmd command.AddParticipant) (command.AddParticipantResult, error) {
	if _, err := h.challengeRepo.FindByID(ctx, cmd.ChallengeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return command.AddParticipantResult{}, domainerror.ErrChallengeNotFound
		}
		return command.AddParticipantResult{}, err
	}

	// Lookup-before-insert gives the friendly conflict error; the unique
	// index underneath closes the race between concurrent joins.
	if _, err := h.participantRepo.FindByChallengeAndUser(ctx, cmd.ChallengeID, cmd.UserID); err == nil {
		return command.AddParticipantResult{}, domainerror.ErrParticipantExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return command.AddParticipantResult{}, err
	}

	participant, err := model.NewParticipant(cmd.ChallengeID, cmd.UserID)
	if err != nil {
		return command.AddParticipantResult{}, err
	}

	if err := h.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return command.AddParticipantResult{}, domainerror.ErrParticipantExists
		}
		return command.AddParticipantResult{}, err
	}

	_ = h.publisher.Publish(ctx, event.NewParticipantJoined(
		participant.ID(),
		participant.ChallengeID(),
		participant.UserID(),
	))

	return command.AddParticipantResult{Participant: participant}, nil
}
