package migration

import (
	"context"

	"burnoutlab/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createObservationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create observations table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createObservationsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS observations (
		id UUID PRIMARY KEY,
		stress_level DOUBLE PRECISION NOT NULL CHECK (stress_level BETWEEN 1 AND 10),
		sleep_duration DOUBLE PRECISION NOT NULL CHECK (sleep_duration BETWEEN 3 AND 12),
		study_hours DOUBLE PRECISION NOT NULL CHECK (study_hours BETWEEN 0.5 AND 14),
		screen_time DOUBLE PRECISION NOT NULL CHECK (screen_time BETWEEN 1 AND 16),
		physical_activity DOUBLE PRECISION NOT NULL CHECK (physical_activity BETWEEN 0 AND 10),
		social_interaction DOUBLE PRECISION NOT NULL CHECK (social_interaction BETWEEN 0 AND 10),
		burnout_score DOUBLE PRECISION NOT NULL CHECK (burnout_score BETWEEN 0 AND 1),
		burnout_binary SMALLINT NOT NULL CHECK (burnout_binary IN (0, 1)),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_observations_created_at ON observations (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_observations_burnout_binary ON observations (burnout_binary)`,
	}
	for _, query := range indexes {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
