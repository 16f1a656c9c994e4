// Package db provides PostgreSQL database access for curriculum storage.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the schema if it does not exist. Curricula are stored as
// JSONB documents; generation runs track per-section population work.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS curricula (
			id UUID PRIMARY KEY,
			grade_level INT NOT NULL,
			subject TEXT NOT NULL,
			topic TEXT NOT NULL,
			status TEXT NOT NULL,
			document JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS generation_runs (
			id UUID PRIMARY KEY,
			curriculum_id UUID NOT NULL REFERENCES curricula(id) ON DELETE CASCADE,
			section_index INT NOT NULL,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			result JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS generation_runs_curriculum_idx
			ON generation_runs (curriculum_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
