package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// GetLeaderboard retrieves the ranked top totals for a challenge. Reads are
// cache-aside: staleness is bounded by the cache TTL, correctness by the store.
type GetLeaderboard struct {
	ChallengeID uuid.UUID
}

func (q GetLeaderboard) QueryName() string {
	return "wellness.get_leaderboard"
}

// GetLeaderboardResult contains the ranking.
type GetLeaderboardResult struct {
	Leaderboard model.Leaderboard
}

// GetLeaderboardHandler handles the GetLeaderboard query.
type GetLeaderboardHandler interface {
	Handle(ctx context.Context, qry GetLeaderboard) (GetLeaderboardResult, error)
}
