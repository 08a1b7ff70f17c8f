package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// challengeRepository implements repository.ChallengeRepository.
type challengeRepository struct {
	pool *pgxpool.Pool
}

// NewChallengeRepository creates a new ChallengeRepository.
func NewChallengeRepository(pool *pgxpool.Pool) repository.ChallengeRepository {
	return &challengeRepository{pool: pool}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO challenges (id, name, start_date, end_date, goal)
		 VALUES ($1, $2, $3, $4, $5)`,
		challenge.ID().String(),
		challenge.Name(),
		challenge.StartDate(),
		challenge.EndDate(),
		challenge.Goal(),
	)
	return err
}

func (r *challengeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Challenge, error) {
	var row challengeRow
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, start_date, end_date, goal
		 FROM challenges WHERE id = $1`,
		id.String(),
	).Scan(&row.ID, &row.Name, &row.StartDate, &row.EndDate, &row.Goal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return toChallengeModel(row)
}

func (r *challengeRepository) ListActiveForUser(ctx context.Context, userID uuid.UUID, at time.Time) ([]*model.Challenge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT c.id, c.name, c.start_date, c.end_date, c.goal
		 FROM challenges c
		 JOIN participants p ON p.challenge_id = c.id
		 WHERE p.user_id = $1 AND c.start_date <= $2 AND c.end_date >= $2
		 ORDER BY c.start_date, c.id`,
		userID.String(),
		at.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := make([]*model.Challenge, 0)
	for rows.Next() {
		var row challengeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.StartDate, &row.EndDate, &row.Goal); err != nil {
			return nil, err
		}
		challenge, err := toChallengeModel(row)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}
