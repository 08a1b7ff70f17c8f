package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// AddParticipant enrolls a user in a challenge.
type AddParticipant struct {
	ChallengeID uuid.UUID
	UserID      uuid.UUID
}

func (c AddParticipant) CommandName() string {
	return "wellness.add_participant"
}

// AddParticipantResult contains the enrollment record.
type AddParticipantResult struct {
	Participant *model.Participant
}

// AddParticipantHandler handles the AddParticipant command.
type AddParticipantHandler interface {
	Handle(ctx context.Context, cmd AddParticipant) (AddParticipantResult, error)
}
