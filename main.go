package main

import (
	"context"
	"log"

	"burnoutlab/adapters/ingest"
	"burnoutlab/adapters/postgres"
	statsengine "burnoutlab/adapters/stats/engine"
	"burnoutlab/app"
	"burnoutlab/domain/scoring"
	"burnoutlab/internal"
	"burnoutlab/internal/api"
	"burnoutlab/internal/config"
	"burnoutlab/internal/errors"
	"burnoutlab/internal/migration"
	"burnoutlab/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env file if present (ignore error if it doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := internal.NewDefaultLogger()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewObservationRepository(db)

	if appConfig.Data.File != "" {
		reader := ingest.NewDataReader(appConfig.Data.File, appConfig.Data.Sheet)
		if err := seedCohort(context.Background(), reader, repo, logger); err != nil {
			log.Fatalf("Failed to seed cohort: %v", err)
		}
	}

	assessments := app.NewAssessmentService(scoring.NewEngine(scoring.DefaultConfig()), repo)
	analysis := app.NewAnalysisService(repo, statsengine.NewWithAlpha(appConfig.Analysis.Alpha))

	server := api.NewServer(appConfig.Server, assessments, analysis, logger)
	if err := server.Run(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// seedCohort loads a cohort file into an empty observations table. A
// non-empty table is left alone so restarts don't duplicate rows.
func seedCohort(ctx context.Context, reader ports.CohortReader, repo ports.ObservationRepository, logger *internal.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("cohort already has %d observations, skipping configured seed file", count)
		return nil
	}

	observations, err := reader.ReadObservations()
	if err != nil {
		return errors.IngestError("failed to read cohort file", err)
	}
	if err := repo.SaveBatch(ctx, observations); err != nil {
		return err
	}
	logger.Info("seeded %d observations", len(observations))
	return nil
}
