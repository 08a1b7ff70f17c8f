package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/cache"
)

const (
	leaderboardKeyPrefix = "leaderboard:"

	// defaultLeaderboardTTL bounds how stale a served ranking can be.
	defaultLeaderboardTTL = 10 * time.Second
)

// leaderboardCache implements cache.LeaderboardCache.
type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a new LeaderboardCache.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) cache.LeaderboardCache {
	if ttl == 0 {
		ttl = defaultLeaderboardTTL
	}
	return &leaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *leaderboardCache) Get(ctx context.Context, challengeID uuid.UUID) (*model.Leaderboard, error) {
	key := leaderboardKey(challengeID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get leaderboard from cache: %w", err)
	}

	var cached []cachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	return toLeaderboard(challengeID, cached)
}

func (c *leaderboardCache) Set(ctx context.Context, leaderboard model.Leaderboard, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(newCachedEntries(leaderboard))
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	key := leaderboardKey(leaderboard.ChallengeID)
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set leaderboard in cache: %w", err)
	}

	return nil
}

// Key helper

func leaderboardKey(challengeID uuid.UUID) string {
	return leaderboardKeyPrefix + challengeID.String()
}

// Cached entry structure for JSON serialization

type cachedEntry struct {
	UserID     string `json:"user_id"`
	TotalValue int64  `json:"total_value"`
}

func newCachedEntries(leaderboard model.Leaderboard) []cachedEntry {
	cached := make([]cachedEntry, 0, len(leaderboard.Entries))
	for _, entry := range leaderboard.Entries {
		cached = append(cached, cachedEntry{
			UserID:     entry.UserID.String(),
			TotalValue: entry.TotalValue,
		})
	}
	return cached
}

func toLeaderboard(challengeID uuid.UUID, cached []cachedEntry) (*model.Leaderboard, error) {
	entries := make([]model.LeaderboardEntry, 0, len(cached))
	for _, c := range cached {
		userID, err := uuid.Parse(c.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in cached leaderboard: %w", c.UserID, err)
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:     userID,
			TotalValue: c.TotalValue,
		})
	}
	leaderboard := model.NewLeaderboard(challengeID, entries)
	return &leaderboard, nil
}
