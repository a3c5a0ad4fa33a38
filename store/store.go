// Package store persists user registrations in Postgres. The bot runs fine
// without it; main only wires a Store when DB_DSN is set.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registered as 'pgx'
)

// Connect opens a Postgres connection for the given DSN and verifies it.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate applies idempotent schema changes.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS registered_users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			channel TEXT NOT NULL,
			role TEXT,
			first_seen TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (username, channel)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_registered_users_channel ON registered_users (channel)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Store wraps the handle with the queries the bot needs.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RegisterUser records a registration. Repeat registrations refresh the role and
// last_seen instead of erroring.
func (s *Store) RegisterUser(ctx context.Context, username, channel, role string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO registered_users (username, channel, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, channel) DO UPDATE SET role = EXCLUDED.role, last_seen = NOW()`,
		username, channel, role)
	if err != nil {
		return fmt.Errorf("register user %q: %w", username, err)
	}
	return nil
}

// CountRegistered reports how many users have registered in a channel.
func (s *Store) CountRegistered(ctx context.Context, channel string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registered_users WHERE channel = $1`, channel).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registered users: %w", err)
	}
	return n, nil
}
