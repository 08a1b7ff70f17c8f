package command

import (
	"context"

	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/command"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/messaging"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// createChallengeHandler implements command.CreateChallengeHandler.
type createChallengeHandler struct {
	challengeRepo repository.ChallengeRepository
	publisher     messaging.EventPublisher
}

// NewCreateChallengeHandler creates a new CreateChallengeHandler.
func NewCreateChallengeHandler(
	challengeRepo repository.ChallengeRepository,
	publisher messaging.EventPublisher,
) command.CreateChallengeHandler {
	return &createChallengeHandler{
		challengeRepo: challengeRepo,
		publisher:     publisher,
	}
}

func (h *createChallengeHandler) Handle(ctx context.Context, cmd command.CreateChallenge) (command.CreateChallengeResult, error) {
	challenge, err := model.NewChallenge(cmd.Name, cmd.StartDate, cmd.EndDate, cmd.Goal)
	if err != nil {
		return command.CreateChallengeResult{}, err
	}

	if err := h.challengeRepo.Create(ctx, challenge); err != nil {
		return command.CreateChallengeResult{}, err
	}

	// Lifecycle notification, best effort.
	_ = h.publisher.Publish(ctx, event.NewChallengeCreated(
		challenge.ID(),
		challenge.Name(),
		challenge.StartDate(),
		challenge.EndDate(),
	))

	return command.CreateChallengeResult{Challenge: challenge}, nil
}
