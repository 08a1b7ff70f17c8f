package model

import (
	"time"

	"github.com/google/uuid"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
)

// Challenge is a time-boxed wellness goal that users enroll in.
type Challenge struct {
	id        uuid.UUID
	name      string
	startDate time.Time
	endDate   time.Time
	goal      string
}

// NewChallenge creates a new Challenge. Dates are normalized to UTC and the
// start must not be after the end.
func NewChallenge(name string, startDate, endDate time.Time, goal string) (*Challenge, error) {
	if name == "" {
		return nil, domainerror.ErrChallengeNameRequired
	}

	startDate = startDate.UTC()
	endDate = endDate.UTC()
	if startDate.After(endDate) {
		return nil, domainerror.ErrChallengeDatesInvalid
	}

	return &Challenge{
		id:        uuid.New(),
		name:      name,
		startDate: startDate,
		endDate:   endDate,
		goal:      goal,
	}, nil
}

// ReconstructChallenge creates a Challenge from persisted data (bypasses validation).
// Used by repositories when loading from the database.
func ReconstructChallenge(id uuid.UUID, name string, startDate, endDate time.Time, goal string) *Challenge {
	return &Challenge{
		id:        id,
		name:      name,
		startDate: startDate.UTC(),
		endDate:   endDate.UTC(),
		goal:      goal,
	}
}

// Getters

func (c *Challenge) ID() uuid.UUID        { return c.id }
func (c *Challenge) Name() string         { return c.name }
func (c *Challenge) StartDate() time.Time { return c.startDate }
func (c *Challenge) EndDate() time.Time   { return c.endDate }
func (c *Challenge) Goal() string         { return c.goal }

// Queries

// IsActiveAt reports whether the challenge window contains the given instant.
func (c *Challenge) IsActiveAt(t time.Time) bool {
	t = t.UTC()
	return !t.Before(c.startDate) && !t.After(c.endDate)
}
