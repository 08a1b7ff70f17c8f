package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// participantRepository implements repository.ParticipantRepository.
type participantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) repository.ParticipantRepository {
	return &participantRepository{pool: pool}
}

func (r *participantRepository) Create(ctx context.Context, participant *model.Participant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO participants (id, challenge_id, user_id)
		 VALUES ($1, $2, $3)`,
		participant.ID().String(),
		participant.ChallengeID().String(),
		participant.UserID().String(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *participantRepository) FindByChallengeAndUser(ctx context.Context, challengeID, userID uuid.UUID) (*model.Participant, error) {
	var row participantRow
	err := r.pool.QueryRow(ctx,
		`SELECT id, challenge_id, user_id
		 FROM participants WHERE challenge_id = $1 AND user_id = $2`,
		challengeID.String(),
		userID.String(),
	).Scan(&row.ID, &row.ChallengeID, &row.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return toParticipantModel(row)
}

func (r *participantRepository) ListByChallenge(ctx context.Context, challengeID uuid.UUID) ([]*model.Participant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, challenge_id, user_id
		 FROM participants WHERE challenge_id = $1
		 ORDER BY id`,
		challengeID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*model.Participant, 0)
	for rows.Next() {
		var row participantRow
		if err := rows.Scan(&row.ID, &row.ChallengeID, &row.UserID); err != nil {
			return nil, err
		}
		participant, err := toParticipantModel(row)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}
