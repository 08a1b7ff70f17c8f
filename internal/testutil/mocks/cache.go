package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// --- LeaderboardCache Mock ---

// LeaderboardCache is a mock implementation of cache.LeaderboardCache.
type LeaderboardCache struct {
	mu sync.RWMutex

	// Storage
	boards map[uuid.UUID]model.Leaderboard

	// LastTTL records the ttl passed to the most recent Set.
	LastTTL time.Duration

	// Call tracking
	Calls struct {
		Get int
		Set int
	}

	// Error injection
	Errors struct {
		Get error
		Set error
	}
}

// NewLeaderboardCache creates a new mock LeaderboardCache.
func NewLeaderboardCache() *LeaderboardCache {
	return &LeaderboardCache{
		boards: make(map[uuid.UUID]model.Leaderboard),
	}
}

func (m *LeaderboardCache) Get(ctx context.Context, challengeID uuid.UUID) (*model.Leaderboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.Get++

	if m.Errors.Get != nil {
		return nil, m.Errors.Get
	}

	board, ok := m.boards[challengeID]
	if !ok {
		return nil, nil
	}
	return &board, nil
}

func (m *LeaderboardCache) Set(ctx context.Context, leaderboard model.Leaderboard, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Set++
	m.LastTTL = ttl

	if m.Errors.Set != nil {
		return m.Errors.Set
	}

	m.boards[leaderboard.ChallengeID] = leaderboard
	return nil
}

// Cached returns the stored leaderboard for assertions, or nil when absent.
func (m *LeaderboardCache) Cached(challengeID uuid.UUID) *model.Leaderboard {
	m.mu.RLock()
	defer m.mu.RUnlock()

	board, ok := m.boards[challengeID]
	if !ok {
		return nil
	}
	return &board
}

// Seed stores a leaderboard without counting the call.
func (m *LeaderboardCache) Seed(leaderboard model.Leaderboard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[leaderboard.ChallengeID] = leaderboard
}
