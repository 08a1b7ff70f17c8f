package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// ChallengeRepository defines the interface for challenge persistence.
type ChallengeRepository interface {
	// Create persists a new challenge.
	Create(ctx context.Context, challenge *model.Challenge) error

	// FindByID retrieves a challenge by its ID.
	// Returns ErrNotFound when no such challenge exists.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Challenge, error)

	// ListActiveForUser retrieves the challenges a user participates in whose
	// window contains the given instant. Each challenge appears once.
	ListActiveForUser(ctx context.Context, userID uuid.UUID, at time.Time) ([]*model.Challenge, error)
}
