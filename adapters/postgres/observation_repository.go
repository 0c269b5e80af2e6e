package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	"burnoutlab/internal/errors"
	"burnoutlab/ports"

	"github.com/jmoiron/sqlx"
)

// dbError tags a storage failure with the database error code.
func dbError(err error, message string) error {
	return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, message))
}

// observationRepository implements the ObservationRepository interface
type observationRepository struct {
	db *sqlx.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *sqlx.DB) ports.ObservationRepository {
	return &observationRepository{db: db}
}

const observationColumns = `id, stress_level, sleep_duration, study_hours, screen_time,
	physical_activity, social_interaction, burnout_score, burnout_binary, created_at`

// observationRow is the database projection of a dataset.Observation.
type observationRow struct {
	ID                string    `db:"id"`
	Stress            float64   `db:"stress_level"`
	Sleep             float64   `db:"sleep_duration"`
	StudyHours        float64   `db:"study_hours"`
	ScreenTime        float64   `db:"screen_time"`
	PhysicalActivity  float64   `db:"physical_activity"`
	SocialInteraction float64   `db:"social_interaction"`
	BurnoutScore      float64   `db:"burnout_score"`
	BurnoutLabel      int       `db:"burnout_binary"`
	CreatedAt         time.Time `db:"created_at"`
}

func toRow(obs dataset.Observation) observationRow {
	return observationRow{
		ID:                obs.ID.String(),
		Stress:            obs.Stress,
		Sleep:             obs.Sleep,
		StudyHours:        obs.StudyHours,
		ScreenTime:        obs.ScreenTime,
		PhysicalActivity:  obs.PhysicalActivity,
		SocialInteraction: obs.SocialInteraction,
		BurnoutScore:      obs.BurnoutScore,
		BurnoutLabel:      obs.BurnoutLabel,
		CreatedAt:         obs.CreatedAt.Time(),
	}
}

func (r observationRow) toDomain() dataset.Observation {
	return dataset.Observation{
		ID:                core.RecordID(r.ID),
		Stress:            r.Stress,
		Sleep:             r.Sleep,
		StudyHours:        r.StudyHours,
		ScreenTime:        r.ScreenTime,
		PhysicalActivity:  r.PhysicalActivity,
		SocialInteraction: r.SocialInteraction,
		BurnoutScore:      r.BurnoutScore,
		BurnoutLabel:      r.BurnoutLabel,
		CreatedAt:         core.NewTimestamp(r.CreatedAt),
	}
}

// Save inserts a single observation
func (r *observationRepository) Save(ctx context.Context, obs dataset.Observation) error {
	query := `INSERT INTO observations (` + observationColumns + `) VALUES (
		:id, :stress_level, :sleep_duration, :study_hours, :screen_time,
		:physical_activity, :social_interaction, :burnout_score, :burnout_binary, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, toRow(obs)); err != nil {
		return dbError(err, "failed to save observation")
	}
	return nil
}

// SaveBatch inserts observations inside a single transaction so a partial
// cohort never lands in the table.
func (r *observationRepository) SaveBatch(ctx context.Context, observations []dataset.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `INSERT INTO observations (` + observationColumns + `) VALUES (
		:id, :stress_level, :sleep_duration, :study_hours, :screen_time,
		:physical_activity, :social_interaction, :burnout_score, :burnout_binary, :created_at
	)`

	for i, obs := range observations {
		if _, err := tx.NamedExecContext(ctx, query, toRow(obs)); err != nil {
			return errors.WithCode(errors.CodeDatabaseError,
				errors.Wrapf(err, "failed to save observation %d", i))
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit batch")
	}
	return nil
}

// GetByID retrieves a single observation
func (r *observationRepository) GetByID(ctx context.Context, id core.RecordID) (*dataset.Observation, error) {
	query := `SELECT ` + observationColumns + ` FROM observations WHERE id = $1`

	var row observationRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(fmt.Sprintf("observation %s", id))
		}
		return nil, dbError(err, "failed to get observation")
	}

	obs := row.toDomain()
	return &obs, nil
}

// List retrieves observations in insertion order with pagination
func (r *observationRepository) List(ctx context.Context, limit, offset int) ([]dataset.Observation, error) {
	query := `SELECT ` + observationColumns + ` FROM observations
	ORDER BY created_at, id
	LIMIT $1 OFFSET $2`

	var rows []observationRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, dbError(err, "failed to list observations")
	}

	observations := make([]dataset.Observation, len(rows))
	for i, row := range rows {
		observations[i] = row.toDomain()
	}
	return observations, nil
}

// ListAll retrieves the complete cohort in insertion order
func (r *observationRepository) ListAll(ctx context.Context) ([]dataset.Observation, error) {
	query := `SELECT ` + observationColumns + ` FROM observations ORDER BY created_at, id`

	var rows []observationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, dbError(err, "failed to list observations")
	}

	observations := make([]dataset.Observation, len(rows))
	for i, row := range rows {
		observations[i] = row.toDomain()
	}
	return observations, nil
}

// Count returns the number of stored observations
func (r *observationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM observations`); err != nil {
		return 0, dbError(err, "failed to count observations")
	}
	return count, nil
}
