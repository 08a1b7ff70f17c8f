package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// ProgressRepository defines the interface for progress entry persistence and
// leaderboard aggregation.
type ProgressRepository interface {
	// InsertAndRank persists the entry and recomputes the challenge's ranked
	// totals within a single transaction, so the returned ranking observes a
	// snapshot that includes the insert. The insert is idempotent on the entry
	// id: a redelivered event reports inserted=false and leaves totals
	// unchanged.
	InsertAndRank(ctx context.Context, entry *model.ProgressEntry, limit int) (inserted bool, entries []model.LeaderboardEntry, err error)

	// TopTotals aggregates per-user totals for a challenge, sorted by total
	// descending then user id ascending, truncated to limit.
	TopTotals(ctx context.Context, challengeID uuid.UUID, limit int) ([]model.LeaderboardEntry, error)
}
