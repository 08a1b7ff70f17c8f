package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

const topTotalsSQL = `
SELECT user_id, SUM(value)::bigint AS total
FROM progress_entries
WHERE challenge_id = $1
GROUP BY user_id
ORDER BY total DESC, user_id ASC
LIMIT $2`

// progressRepository implements repository.ProgressRepository.
type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) repository.ProgressRepository {
	return &progressRepository{pool: pool}
}

func (r *progressRepository) InsertAndRank(ctx context.Context, entry *model.ProgressEntry, limit int) (bool, []model.LeaderboardEntry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, nil, err
	}
	defer tx.Rollback(ctx)

	// The entry id is the event id; a redelivered event hits the primary key
	// and inserts nothing.
	tag, err := tx.Exec(ctx,
		`INSERT INTO progress_entries (id, challenge_id, user_id, value, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		entry.ID().String(),
		entry.ChallengeID().String(),
		entry.UserID().String(),
		entry.Value(),
		entry.RecordedAt(),
	)
	if err != nil {
		return false, nil, err
	}
	inserted := tag.RowsAffected() == 1

	entries, err := queryTotals(ctx, tx, entry.ChallengeID(), limit)
	if err != nil {
		return false, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, nil, err
	}
	return inserted, entries, nil
}

func (r *progressRepository) TopTotals(ctx context.Context, challengeID uuid.UUID, limit int) ([]model.LeaderboardEntry, error) {
	return queryTotals(ctx, r.pool, challengeID, limit)
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryTotals(ctx context.Context, q querier, challengeID uuid.UUID, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := q.Query(ctx, topTotalsSQL, challengeID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var row totalRow
		if err := rows.Scan(&row.UserID, &row.Total); err != nil {
			return nil, err
		}
		entry, err := toLeaderboardEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
