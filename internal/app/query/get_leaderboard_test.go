package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	appquery "github.com/stridelab/wellness-challenges/internal/app/query"
	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/query"
	"github.com/stridelab/wellness-challenges/internal/testutil/mocks"
)

func seedProgress(t *testing.T, repo *mocks.ProgressRepository, challengeID, userID uuid.UUID, value int) {
	t.Helper()
	entry, err := model.NewProgressEntry(uuid.New(), challengeID, userID, value, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	if _, _, err := repo.InsertAndRank(context.Background(), entry, model.LeaderboardSize); err != nil {
		t.Fatalf("failed to insert entry: %v", err)
	}
}

func TestGetLeaderboardHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns cached leaderboard verbatim", func(t *testing.T) {
		challengeID := uuid.New()
		progressRepo := mocks.NewProgressRepository()
		leaderboardCache := mocks.NewLeaderboardCache()

		cached := model.NewLeaderboard(challengeID, []model.LeaderboardEntry{
			{UserID: uuid.New(), TotalValue: 99},
		})
		leaderboardCache.Seed(cached)

		handler := appquery.NewGetLeaderboardHandler(progressRepo, leaderboardCache)
		result, err := handler.Handle(ctx, query.GetLeaderboard{ChallengeID: challengeID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Leaderboard.Entries) != 1 || result.Leaderboard.Entries[0].TotalValue != 99 {
			t.Error("expected the cached ranking unchanged")
		}
		if progressRepo.Calls.TopTotals != 0 {
			t.Error("cache hit must not read the store")
		}
	})

	t.Run("recomputes on miss and repopulates the cache", func(t *testing.T) {
		challengeID := uuid.New()
		userID := uuid.New()
		progressRepo := mocks.NewProgressRepository()
		leaderboardCache := mocks.NewLeaderboardCache()
		seedProgress(t, progressRepo, challengeID, userID, 15)

		handler := appquery.NewGetLeaderboardHandler(progressRepo, leaderboardCache)
		result, err := handler.Handle(ctx, query.GetLeaderboard{ChallengeID: challengeID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Leaderboard.Entries) != 1 || result.Leaderboard.Entries[0].TotalValue != 15 {
			t.Fatalf("unexpected ranking: %+v", result.Leaderboard.Entries)
		}
		if progressRepo.Calls.TopTotals != 1 {
			t.Errorf("expected 1 store read, got %d", progressRepo.Calls.TopTotals)
		}
		repopulated := leaderboardCache.Cached(challengeID)
		if repopulated == nil {
			t.Fatal("expected the cache to be repopulated")
		}
		if len(repopulated.Entries) != 1 {
			t.Error("repopulated cache should hold the fresh ranking")
		}
	})

	t.Run("caches an empty board", func(t *testing.T) {
		challengeID := uuid.New()
		leaderboardCache := mocks.NewLeaderboardCache()
		handler := appquery.NewGetLeaderboardHandler(mocks.NewProgressRepository(), leaderboardCache)

		result, err := handler.Handle(ctx, query.GetLeaderboard{ChallengeID: challengeID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Leaderboard.IsEmpty() {
			t.Error("expected an empty leaderboard")
		}
		if leaderboardCache.Cached(challengeID) == nil {
			t.Error("an empty board should still be cached")
		}
	})

	t.Run("cache failure degrades to a store read", func(t *testing.T) {
		challengeID := uuid.New()
		userID := uuid.New()
		progressRepo := mocks.NewProgressRepository()
		leaderboardCache := mocks.NewLeaderboardCache()
		leaderboardCache.Errors.Get = errors.New("connection reset")
		seedProgress(t, progressRepo, challengeID, userID, 8)

		handler := appquery.NewGetLeaderboardHandler(progressRepo, leaderboardCache)
		result, err := handler.Handle(ctx, query.GetLeaderboard{ChallengeID: challengeID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Leaderboard.Entries) != 1 || result.Leaderboard.Entries[0].TotalValue != 8 {
			t.Error("expected the store ranking despite the cache failure")
		}
	})

	t.Run("surfaces store failure", func(t *testing.T) {
		progressRepo := mocks.NewProgressRepository()
		progressRepo.Errors.TopTotals = errors.New("connection refused")
		handler := appquery.NewGetLeaderboardHandler(progressRepo, mocks.NewLeaderboardCache())

		_, err := handler.Handle(ctx, query.GetLeaderboard{ChallengeID: uuid.New()})
		if !errors.Is(err, domainerror.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("rejects missing challenge id", func(t *testing.T) {
		handler := appquery.NewGetLeaderboardHandler(mocks.NewProgressRepository(), mocks.NewLeaderboardCache())

		_, err := handler.Handle(ctx, query.GetLeaderboard{})
		if !errors.Is(err, domainerror.ErrChallengeIDRequired) {
			t.Fatalf("expected ErrChallengeIDRequired, got %v", err)
		}
	})
}
