package query

import (
	"context"

	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/metrics"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/query"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/cache"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// getLeaderboardHandler implements query.GetLeaderboardHandler.
//
// The cache is a pure accelerator: a hit is returned verbatim (staleness
// bounded by the TTL), a miss recomputes from the store and repopulates. An
// empty ranking is cached too, so cold challenges don't hammer the store.
type getLeaderboardHandler struct {
	progressRepo     repository.ProgressRepository
	leaderboardCache cache.LeaderboardCache
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
func NewGetLeaderboardHandler(
	progressRepo repository.ProgressRepository,
	leaderboardCache cache.LeaderboardCache,
) query.GetLeaderboardHandler {
	return &getLeaderboardHandler{
		progressRepo:     progressRepo,
		leaderboardCache: leaderboardCache,
	}
}

func (h *getLeaderboardHandler) Handle(ctx context.Context, qry query.GetLeaderboard) (query.GetLeaderboardResult, error) {
	if qry.ChallengeID == uuid.Nil {
		return query.GetLeaderboardResult{}, domainerror.ErrChallengeIDRequired
	}

	// Try cache first. Cache errors degrade to a store read.
	if h.leaderboardCache != nil {
		cached, err := h.leaderboardCache.Get(ctx, qry.ChallengeID)
		if err == nil && cached != nil {
			metrics.LeaderboardReads.WithLabelValues(metrics.SourceCache).Inc()
			return query.GetLeaderboardResult{Leaderboard: *cached}, nil
		}
	}

	// Fallback to the store.
	entries, err := h.progressRepo.TopTotals(ctx, qry.ChallengeID, model.LeaderboardSize)
	if err != nil {
		return query.GetLeaderboardResult{}, domainerror.Wrap(domainerror.ErrStoreUnavailable, err)
	}
	leaderboard := model.NewLeaderboard(qry.ChallengeID, entries)
	metrics.LeaderboardReads.WithLabelValues(metrics.SourceStore).Inc()

	// Repopulate cache with the default TTL.
	if h.leaderboardCache != nil {
		_ = h.leaderboardCache.Set(ctx, leaderboard, 0)
	}

	return query.GetLeaderboardResult{Leaderboard: leaderboard}, nil
}
