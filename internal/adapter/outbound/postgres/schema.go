package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Idempotent, so every process can run it.
//
// progress_entries.id is the originating event id: the primary key is what
// makes redelivered events insert-idempotent. The unique index on
// participants closes the enrollment race between concurrent joins.
const schema = `
CREATE TABLE IF NOT EXISTS challenges (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	start_date TIMESTAMPTZ NOT NULL,
	end_date   TIMESTAMPTZ NOT NULL,
	goal       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS participants (
	id           TEXT PRIMARY KEY,
	challenge_id TEXT NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
	user_id      TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS participants_challenge_user_idx
	ON participants (challenge_id, user_id);

CREATE TABLE IF NOT EXISTS progress_entries (
	id           TEXT PRIMARY KEY,
	challenge_id TEXT NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
	user_id      TEXT NOT NULL,
	value        INTEGER NOT NULL,
	recorded_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS progress_entries_challenge_idx
	ON progress_entries (challenge_id);
`

// Migrate creates the schema if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
