package command

import (
	"context"
	"time"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// CreateChallenge creates a new wellness challenge.
type CreateChallenge struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Goal      string
}

func (c CreateChallenge) CommandName() string {
	return "wellness.create_challenge"
}

// CreateChallengeResult contains the created challenge.
type CreateChallengeResult struct {
	Challenge *model.Challenge
}

// CreateChallengeHandler handles the CreateChallenge command.
type CreateChallengeHandler interface {
	Handle(ctx context.Context, cmd CreateChallenge) (CreateChallengeResult, error)
}
