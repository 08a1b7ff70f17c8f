package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// LeaderboardCache defines the interface for the derived, expiring leaderboard
// copy. The cache is never authoritative: an absent or stale entry is always
// recoverable from the store.
type LeaderboardCache interface {
	// Get retrieves a cached leaderboard.
	// Returns nil on a cache miss. An empty (but present) leaderboard is a hit.
	Get(ctx context.Context, challengeID uuid.UUID) (*model.Leaderboard, error)

	// Set stores a leaderboard with the given TTL, overwriting unconditionally.
	// A zero ttl uses the cache's default.
	Set(ctx context.Context, leaderboard model.Leaderboard, ttl time.Duration) error
}
