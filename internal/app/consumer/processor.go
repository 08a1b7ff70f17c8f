// Package consumer holds the processing logic for delivered progress events.
// The transport loop (fetching, ack/nack, dead-lettering) lives in the NATS
// adapter; this package decides what a delivery means.
package consumer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/metrics"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/cache"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// Outcome classifies how a delivery was handled. The transport adapter turns
// it into an ack, a redelivery request, or a dead-letter.
type Outcome int

const (
	// OutcomeApplied means the entry was persisted and the cache refreshed.
	OutcomeApplied Outcome = iota

	// OutcomeDuplicate means the entry already existed (redelivery); the
	// cache was refreshed, totals are unchanged.
	OutcomeDuplicate

	// OutcomeUnenrolled means the (challenge, user) pair has no participant
	// record. The delivery is acknowledged and diverted to the dead letter.
	OutcomeUnenrolled

	// OutcomeFailed means a transient processing error; the delivery should
	// be redelivered.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return metrics.OutcomeApplied
	case OutcomeDuplicate:
		return metrics.OutcomeDuplicate
	case OutcomeUnenrolled:
		return metrics.OutcomeUnenrolled
	default:
		return metrics.OutcomeFailed
	}
}

// Processor applies one progress event to the store and the cache.
type Processor struct {
	participantRepo repository.ParticipantRepository
	progressRepo    repository.ProgressRepository
	cache           cache.LeaderboardCache
	cacheTTL        time.Duration
	logger          *zap.Logger
}

// NewProcessor creates a Processor. cacheTTL bounds leaderboard staleness;
// zero falls back to the cache adapter's default.
func NewProcessor(
	participantRepo repository.ParticipantRepository,
	progressRepo repository.ProgressRepository,
	leaderboardCache cache.LeaderboardCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		participantRepo: participantRepo,
		progressRepo:    progressRepo,
		cache:           leaderboardCache,
		cacheTTL:        cacheTTL,
		logger:          logger,
	}
}

// Process handles one delivered event:
//
//  1. gate on enrollment,
//  2. persist the entry and recompute the ranking in one transaction,
//  3. overwrite the cached leaderboard with a fresh TTL.
//
// Only OutcomeFailed carries a non-nil error; everything else is final from
// the queue's point of view and must be acknowledged.
func (p *Processor) Process(ctx context.Context, evt event.ProgressSubmitted) (Outcome, error) {
	start := time.Now()
	outcome, err := p.process(ctx, evt)
	metrics.EventsProcessed.WithLabelValues(outcome.String()).Inc()
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	return outcome, err
}

func (p *Processor) process(ctx context.Context, evt event.ProgressSubmitted) (Outcome, error) {
	if err := evt.Validate(); err != nil {
		return OutcomeFailed, err
	}

	_, err := p.participantRepo.FindByChallengeAndUser(ctx, evt.ChallengeID, evt.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			p.logger.Warn("dropping progress event from unenrolled user",
				zap.String("challenge_id", evt.ChallengeID.String()),
				zap.String("user_id", evt.UserID.String()),
			)
			return OutcomeUnenrolled, nil
		}
		return OutcomeFailed, err
	}

	entry, err := model.NewProgressEntry(evt.ID, evt.ChallengeID, evt.UserID, evt.Value, evt.SubmittedAt)
	if err != nil {
		return OutcomeFailed, err
	}

	inserted, ranked, err := p.progressRepo.InsertAndRank(ctx, entry, model.LeaderboardSize)
	if err != nil {
		return OutcomeFailed, domainerror.Wrap(domainerror.ErrStoreUnavailable, err)
	}

	// Last write wins on the cache; a concurrently committed entry missing
	// from this snapshot self-heals within the TTL via the read-side fill.
	leaderboard := model.NewLeaderboard(evt.ChallengeID, ranked)
	if err := p.cache.Set(ctx, leaderboard, p.cacheTTL); err != nil {
		return OutcomeFailed, err
	}

	if !inserted {
		p.logger.Info("redelivered progress event, entry already persisted",
			zap.String("event_id", evt.ID.String()),
		)
		return OutcomeDuplicate, nil
	}

	p.logger.Debug("progress entry applied",
		zap.String("event_id", evt.ID.String()),
		zap.String("challenge_id", evt.ChallengeID.String()),
		zap.Int("value", evt.Value),
	)
	return OutcomeApplied, nil
}
