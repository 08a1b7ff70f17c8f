package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// Row shapes scanned from the database. IDs travel as text and are parsed on
// the way out, matching how they are written.

type challengeRow struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Goal      string
}

func toChallengeModel(row challengeRow) (*model.Challenge, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge id %q: %w", row.ID, err)
	}
	return model.ReconstructChallenge(id, row.Name, row.StartDate, row.EndDate, row.Goal), nil
}

type participantRow struct {
	ID          string
	ChallengeID string
	UserID      string
}

func toParticipantModel(row participantRow) (*model.Participant, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid participant id %q: %w", row.ID, err)
	}
	challengeID, err := uuid.Parse(row.ChallengeID)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge id %q: %w", row.ChallengeID, err)
	}
	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", row.UserID, err)
	}
	return model.ReconstructParticipant(id, challengeID, userID), nil
}

type totalRow struct {
	UserID string
	Total  int64
}

func toLeaderboardEntry(row totalRow) (model.LeaderboardEntry, error) {
	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return model.LeaderboardEntry{}, fmt.Errorf("invalid user id %q: %w", row.UserID, err)
	}
	return model.LeaderboardEntry{UserID: userID, TotalValue: row.Total}, nil
}
