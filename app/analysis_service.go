package app

import (
	"context"

	"burnoutlab/adapters/stats/engine"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"
	"burnoutlab/internal/errors"
	"burnoutlab/ports"
)

// AnalysisService builds cohort snapshots and runs the statistical engine
// over them.
type AnalysisService struct {
	repo   ports.ObservationRepository
	engine *engine.Engine
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(repo ports.ObservationRepository, eng *engine.Engine) *AnalysisService {
	return &AnalysisService{repo: repo, engine: eng}
}

// Snapshot loads the stored cohort into an immutable columnar dataset.
func (s *AnalysisService) Snapshot(ctx context.Context) (*dataset.Dataset, error) {
	observations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cohort")
	}
	ds, err := dataset.New(observations)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Report runs the full analysis battery over the current cohort snapshot.
func (s *AnalysisService) Report(ctx context.Context) (*domstats.AnalysisReport, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.Run(ctx, ds)
	if err != nil {
		return nil, errors.AnalysisError("analysis run failed", err)
	}
	return report, nil
}

// Statistics computes descriptive summaries only, for the lightweight
// statistics endpoint.
func (s *AnalysisService) Statistics(ctx context.Context) ([]domstats.DescriptiveSummary, error) {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Describe(ds)
}
