package consumer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/app/consumer"
	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/testutil/mocks"
)

type processorFixture struct {
	participantRepo *mocks.ParticipantRepository
	progressRepo    *mocks.ProgressRepository
	cache           *mocks.LeaderboardCache
	processor       *consumer.Processor
}

func newProcessorFixture(t *testing.T) *processorFixture {
	t.Helper()
	f := &processorFixture{
		participantRepo: mocks.NewParticipantRepository(),
		progressRepo:    mocks.NewProgressRepository(),
		cache:           mocks.NewLeaderboardCache(),
	}
	f.processor = consumer.NewProcessor(f.participantRepo, f.progressRepo, f.cache, 10*time.Second, nil)
	return f
}

func (f *processorFixture) enroll(t *testing.T, challengeID, userID uuid.UUID) {
	t.Helper()
	participant, err := model.NewParticipant(challengeID, userID)
	if err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}
	if err := f.participantRepo.Create(context.Background(), participant); err != nil {
		t.Fatalf("failed to enroll participant: %v", err)
	}
}

func (f *processorFixture) mustProcess(t *testing.T, evt event.ProgressSubmitted, want consumer.Outcome) {
	t.Helper()
	outcome, err := f.processor.Process(context.Background(), evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != want {
		t.Fatalf("outcome mismatch: got %v, want %v", outcome, want)
	}
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("applies entries and ranks totals descending", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()
		user1 := uuid.New()
		user2 := uuid.New()
		f.enroll(t, challengeID, user1)
		f.enroll(t, challengeID, user2)

		f.mustProcess(t, event.NewProgressSubmitted(challengeID, user1, 5), consumer.OutcomeApplied)
		f.mustProcess(t, event.NewProgressSubmitted(challengeID, user2, 7), consumer.OutcomeApplied)
		f.mustProcess(t, event.NewProgressSubmitted(challengeID, user1, 3), consumer.OutcomeApplied)

		board := f.cache.Cached(challengeID)
		if board == nil {
			t.Fatal("expected cached leaderboard")
		}
		if len(board.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(board.Entries))
		}
		if board.Entries[0].UserID != user1 || board.Entries[0].TotalValue != 8 {
			t.Errorf("expected user1 leading with 8, got %s=%d", board.Entries[0].UserID, board.Entries[0].TotalValue)
		}
		if board.Entries[1].UserID != user2 || board.Entries[1].TotalValue != 7 {
			t.Errorf("expected user2 second with 7, got %s=%d", board.Entries[1].UserID, board.Entries[1].TotalValue)
		}
		if f.cache.LastTTL != 10*time.Second {
			t.Errorf("expected 10s cache TTL, got %v", f.cache.LastTTL)
		}
	})

	t.Run("totals are independent of delivery order", func(t *testing.T) {
		challengeID := uuid.New()
		user1 := uuid.New()
		user2 := uuid.New()
		events := []event.ProgressSubmitted{
			event.NewProgressSubmitted(challengeID, user1, 5),
			event.NewProgressSubmitted(challengeID, user2, 7),
			event.NewProgressSubmitted(challengeID, user1, 3),
		}
		orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}}

		for _, order := range orders {
			f := newProcessorFixture(t)
			f.enroll(t, challengeID, user1)
			f.enroll(t, challengeID, user2)

			for _, i := range order {
				f.mustProcess(t, events[i], consumer.OutcomeApplied)
			}

			board := f.cache.Cached(challengeID)
			if board == nil {
				t.Fatal("expected cached leaderboard")
			}
			totals := make(map[uuid.UUID]int64)
			for _, e := range board.Entries {
				totals[e.UserID] = e.TotalValue
			}
			if totals[user1] != 8 || totals[user2] != 7 {
				t.Errorf("order %v: totals mismatch: %v", order, totals)
			}
		}
	})

	t.Run("redelivered event does not inflate totals", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()
		userID := uuid.New()
		f.enroll(t, challengeID, userID)

		evt := event.NewProgressSubmitted(challengeID, userID, 5)
		f.mustProcess(t, evt, consumer.OutcomeApplied)
		f.mustProcess(t, evt, consumer.OutcomeDuplicate)

		board := f.cache.Cached(challengeID)
		if board == nil {
			t.Fatal("expected cached leaderboard")
		}
		if board.Entries[0].TotalValue != 5 {
			t.Errorf("redelivery inflated the total: got %d, want 5", board.Entries[0].TotalValue)
		}
		if f.progressRepo.EntryCount(challengeID) != 1 {
			t.Errorf("expected a single stored entry, got %d", f.progressRepo.EntryCount(challengeID))
		}
	})

	t.Run("unenrolled user is reported without error", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()

		outcome, err := f.processor.Process(ctx, event.NewProgressSubmitted(challengeID, uuid.New(), 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != consumer.OutcomeUnenrolled {
			t.Fatalf("expected OutcomeUnenrolled, got %v", outcome)
		}
		if f.progressRepo.Calls.InsertAndRank != 0 {
			t.Error("nothing should be persisted for an unenrolled user")
		}
		if f.cache.Calls.Set != 0 {
			t.Error("the cache should not change for an unenrolled user")
		}
	})

	t.Run("failure after an unenrolled skip still processes later events", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()
		enrolled := uuid.New()
		f.enroll(t, challengeID, enrolled)

		f.mustProcess(t, event.NewProgressSubmitted(challengeID, uuid.New(), 9), consumer.OutcomeUnenrolled)
		f.mustProcess(t, event.NewProgressSubmitted(challengeID, enrolled, 4), consumer.OutcomeApplied)

		board := f.cache.Cached(challengeID)
		if board == nil || board.Entries[0].TotalValue != 4 {
			t.Error("the enrolled user's progress should land after the skip")
		}
	})

	t.Run("store failure is transient", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()
		userID := uuid.New()
		f.enroll(t, challengeID, userID)
		f.progressRepo.Errors.InsertAndRank = errors.New("connection refused")

		outcome, err := f.processor.Process(ctx, event.NewProgressSubmitted(challengeID, userID, 5))
		if err == nil {
			t.Fatal("expected an error")
		}
		if outcome != consumer.OutcomeFailed {
			t.Fatalf("expected OutcomeFailed, got %v", outcome)
		}
	})

	t.Run("negative values decrease the total", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()
		userID := uuid.New()
		f.enroll(t, challengeID, userID)

		f.mustProcess(t, event.NewProgressSubmitted(challengeID, userID, 10), consumer.OutcomeApplied)
		f.mustProcess(t, event.NewProgressSubmitted(challengeID, userID, -4), consumer.OutcomeApplied)

		board := f.cache.Cached(challengeID)
		if board == nil || board.Entries[0].TotalValue != 6 {
			t.Error("expected total 6 after a corrective negative entry")
		}
	})

	t.Run("malformed event fails validation", func(t *testing.T) {
		f := newProcessorFixture(t)

		outcome, err := f.processor.Process(ctx, event.ProgressSubmitted{})
		if err == nil {
			t.Fatal("expected an error")
		}
		if outcome != consumer.OutcomeFailed {
			t.Fatalf("expected OutcomeFailed, got %v", outcome)
		}
	})

	t.Run("leaderboard truncates to the top ten", func(t *testing.T) {
		f := newProcessorFixture(t)
		challengeID := uuid.New()

		for i := 0; i < model.LeaderboardSize+3; i++ {
			userID := uuid.New()
			f.enroll(t, challengeID, userID)
			f.mustProcess(t, event.NewProgressSubmitted(challengeID, userID, i+1), consumer.OutcomeApplied)
		}

		board := f.cache.Cached(challengeID)
		if board == nil {
			t.Fatal("expected cached leaderboard")
		}
		if len(board.Entries) != model.LeaderboardSize {
			t.Fatalf("expected %d entries, got %d", model.LeaderboardSize, len(board.Entries))
		}
		// The lowest totals fell off the board.
		for _, e := range board.Entries {
			if e.TotalValue <= 3 {
				t.Errorf("total %d should have been truncated", e.TotalValue)
			}
		}
	})
}
