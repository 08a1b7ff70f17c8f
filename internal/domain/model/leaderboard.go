package model

import (
	"github.com/google/uuid"
)

// LeaderboardSize is the maximum number of ranked entries a leaderboard holds.
const LeaderboardSize = 10

// LeaderboardEntry is one user's cumulative progress for a challenge.
type LeaderboardEntry struct {
	UserID     uuid.UUID
	TotalValue int64
}

// Leaderboard is the ranked top-N of cumulative progress for a challenge,
// ordered by total descending, ties broken by user id ascending. It is a
// derived value: the store is authoritative, the cached copy expires.
type Leaderboard struct {
	ChallengeID uuid.UUID
	Entries     []LeaderboardEntry
}

// NewLeaderboard wraps ranked entries for a challenge, truncating to
// LeaderboardSize. Entries are expected to be pre-sorted by the aggregation.
func NewLeaderboard(challengeID uuid.UUID, entries []LeaderboardEntry) Leaderboard {
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	return Leaderboard{
		ChallengeID: challengeID,
		Entries:     entries,
	}
}

// IsEmpty reports whether the leaderboard has no ranked entries.
func (l Leaderboard) IsEmpty() bool { return len(l.Entries) == 0 }
