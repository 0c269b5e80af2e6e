package app

import (
	"context"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	"burnoutlab/domain/scoring"
	"burnoutlab/internal/errors"
	"burnoutlab/ports"
)

// AssessmentService scores individual screening submissions and optionally
// persists them into the cohort.
type AssessmentService struct {
	engine *scoring.Engine
	repo   ports.ObservationRepository
}

// AssessmentRequest defines one screening submission
type AssessmentRequest struct {
	Input   scoring.Input
	Persist bool
}

// AssessmentResult contains the scored submission and, when persisted, the
// stored record's identity.
type AssessmentResult struct {
	Assessment scoring.Assessment `json:"assessment"`
	RecordID   core.RecordID      `json:"record_id,omitempty"`
}

// NewAssessmentService creates an assessment service. The repository may be
// nil for score-only deployments.
func NewAssessmentService(engine *scoring.Engine, repo ports.ObservationRepository) *AssessmentService {
	return &AssessmentService{engine: engine, repo: repo}
}

// Assess validates and scores one submission. With Persist set, the scored
// record joins the cohort used by later analysis runs.
func (s *AssessmentService) Assess(ctx context.Context, req AssessmentRequest) (*AssessmentResult, error) {
	assessment, err := s.engine.Assess(req.Input)
	if err != nil {
		return nil, err
	}

	result := &AssessmentResult{Assessment: assessment}
	if !req.Persist {
		return result, nil
	}
	if s.repo == nil {
		return nil, errors.InternalError("persistence requested but no repository configured")
	}

	obs := observationFromInput(req.Input, assessment)
	if err := s.repo.Save(ctx, obs); err != nil {
		return nil, errors.Wrap(err, "failed to persist assessment")
	}
	result.RecordID = obs.ID
	return result, nil
}

// GetRecord loads one stored observation by its identifier.
func (s *AssessmentService) GetRecord(ctx context.Context, id core.RecordID) (*dataset.Observation, error) {
	if s.repo == nil {
		return nil, errors.InternalError("no repository configured")
	}
	return s.repo.GetByID(ctx, id)
}

// AddRecord stores a complete pre-scored observation, typically from an
// external screening instrument.
func (s *AssessmentService) AddRecord(ctx context.Context, obs dataset.Observation) (*dataset.Observation, error) {
	if s.repo == nil {
		return nil, errors.InternalError("no repository configured")
	}
	if obs.ID.String() == "" {
		obs.ID = core.RecordID(core.NewID())
	}
	if obs.CreatedAt.IsZero() {
		obs.CreatedAt = core.Now()
	}
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, obs); err != nil {
		return nil, errors.Wrap(err, "failed to store record")
	}
	return &obs, nil
}

// observationFromInput turns a scored submission into a cohort record. The
// binary label mirrors the cohort convention: scores above 0.5 count as
// burnout.
func observationFromInput(in scoring.Input, assessment scoring.Assessment) dataset.Observation {
	label := 0
	if assessment.Score > 0.5 {
		label = 1
	}
	return dataset.Observation{
		ID:                core.RecordID(core.NewID()),
		Stress:            in.Stress,
		Sleep:             in.Sleep,
		StudyHours:        in.StudyHours,
		ScreenTime:        in.ScreenTime,
		PhysicalActivity:  in.PhysicalActivity,
		SocialInteraction: in.SocialInteraction,
		BurnoutScore:      assessment.Score,
		BurnoutLabel:      label,
		CreatedAt:         core.Now(),
	}
}
