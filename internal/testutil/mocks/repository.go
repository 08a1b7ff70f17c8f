// Package mocks provides mock implementations of ports for testing.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// --- ChallengeRepository Mock ---

// ChallengeRepository is a mock implementation of repository.ChallengeRepository.
type ChallengeRepository struct {
	mu sync.RWMutex

	// Storage
	challenges map[uuid.UUID]*model.Challenge
	members    map[uuid.UUID][]uuid.UUID // challenge ID -> user IDs

	// Call tracking
	Calls struct {
		Create            int
		FindByID          int
		ListActiveForUser int
	}

	// Error injection
	Errors struct {
		Create            error
		FindByID          error
		ListActiveForUser error
	}
}

// NewChallengeRepository creates a new mock ChallengeRepository.
func NewChallengeRepository() *ChallengeRepository {
	return &ChallengeRepository{
		challenges: make(map[uuid.UUID]*model.Challenge),
		members:    make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *ChallengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	m.challenges[challenge.ID()] = challenge
	return nil
}

func (m *ChallengeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByID++

	if m.Errors.FindByID != nil {
		return nil, m.Errors.FindByID
	}

	challenge, ok := m.challenges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return challenge, nil
}

func (m *ChallengeRepository) ListActiveForUser(ctx context.Context, userID uuid.UUID, at time.Time) ([]*model.Challenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.ListActiveForUser++

	if m.Errors.ListActiveForUser != nil {
		return nil, m.Errors.ListActiveForUser
	}

	var active []*model.Challenge
	for challengeID, users := range m.members {
		challenge, ok := m.challenges[challengeID]
		if !ok || !challenge.IsActiveAt(at) {
			continue
		}
		for _, u := range users {
			if u == userID {
				active = append(active, challenge)
				break
			}
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].StartDate().Before(active[j].StartDate())
	})
	return active, nil
}

// Enroll records a user as a member of a challenge for ListActiveForUser.
func (m *ChallengeRepository) Enroll(challengeID, userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[challengeID] = append(m.members[challengeID], userID)
}

// --- ParticipantRepository Mock ---

type participantKey struct {
	challengeID uuid.UUID
	userID      uuid.UUID
}

// ParticipantRepository is a mock implementation of repository.ParticipantRepository.
type ParticipantRepository struct {
	mu sync.RWMutex

	// Storage
	participants map[participantKey]*model.Participant

	// Call tracking
	Calls struct {
		Create                 int
		FindByChallengeAndUser int
		ListByChallenge        int
	}

	// Error injection
	Errors struct {
		Create                 error
		FindByChallengeAndUser error
		ListByChallenge        error
	}
}

// NewParticipantRepository creates a new mock ParticipantRepository.
func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{
		participants: make(map[participantKey]*model.Participant),
	}
}

func (m *ParticipantRepository) Create(ctx context.Context, participant *model.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	key := participantKey{participant.ChallengeID(), participant.UserID()}
	if _, ok := m.participants[key]; ok {
		return repository.ErrDuplicate
	}
	m.participants[key] = participant
	return nil
}

func (m *ParticipantRepository) FindByChallengeAndUser(ctx context.Context, challengeID, userID uuid.UUID) (*model.Participant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByChallengeAndUser++

	if m.Errors.FindByChallengeAndUser != nil {
		return nil, m.Errors.FindByChallengeAndUser
	}

	participant, ok := m.participants[participantKey{challengeID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return participant, nil
}

func (m *ParticipantRepository) ListByChallenge(ctx context.Context, challengeID uuid.UUID) ([]*model.Participant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.ListByChallenge++

	if m.Errors.ListByChallenge != nil {
		return nil, m.Errors.ListByChallenge
	}

	var out []*model.Participant
	for key, p := range m.participants {
		if key.challengeID == challengeID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- ProgressRepository Mock ---

// ProgressRepository is a mock implementation of repository.ProgressRepository.
// It aggregates totals the way the store does, so tests can assert ranking
// behavior end to end.
type ProgressRepository struct {
	mu sync.RWMutex

	// Storage
	entries map[uuid.UUID]*model.ProgressEntry // by entry ID

	// Call tracking
	Calls struct {
		InsertAndRank int
		TopTotals     int
	}

	// Error injection
	Errors struct {
		InsertAndRank error
		TopTotals     error
	}
}

// NewProgressRepository creates a new mock ProgressRepository.
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{
		entries: make(map[uuid.UUID]*model.ProgressEntry),
	}
}

func (m *ProgressRepository) InsertAndRank(ctx context.Context, entry *model.ProgressEntry, limit int) (bool, []model.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.InsertAndRank++

	if m.Errors.InsertAndRank != nil {
		return false, nil, m.Errors.InsertAndRank
	}

	if _, ok := m.entries[entry.ID()]; ok {
		return false, m.rank(entry.ChallengeID(), limit), nil
	}
	m.entries[entry.ID()] = entry
	return true, m.rank(entry.ChallengeID(), limit), nil
}

func (m *ProgressRepository) TopTotals(ctx context.Context, challengeID uuid.UUID, limit int) ([]model.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.TopTotals++

	if m.Errors.TopTotals != nil {
		return nil, m.Errors.TopTotals
	}

	return m.rank(challengeID, limit), nil
}

// EntryCount reports how many entries are stored for a challenge.
func (m *ProgressRepository) EntryCount(challengeID uuid.UUID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, e := range m.entries {
		if e.ChallengeID() == challengeID {
			n++
		}
	}
	return n
}

func (m *ProgressRepository) rank(challengeID uuid.UUID, limit int) []model.LeaderboardEntry {
	totals := make(map[uuid.UUID]int64)
	for _, e := range m.entries {
		if e.ChallengeID() == challengeID {
			totals[e.UserID()] += int64(e.Value())
		}
	}

	ranked := make([]model.LeaderboardEntry, 0, len(totals))
	for userID, total := range totals {
		ranked = append(ranked, model.LeaderboardEntry{UserID: userID, TotalValue: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalValue != ranked[j].TotalValue {
			return ranked[i].TotalValue > ranked[j].TotalValue
		}
		return ranked[i].UserID.String() < ranked[j].UserID.String()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
