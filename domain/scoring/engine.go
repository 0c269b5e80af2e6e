package scoring

import (
	"burnoutlab/domain/dataset"
)

// RiskLevel is one of four ordered risk tiers.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Input carries the six named lifestyle fields for one assessment.
type Input struct {
	Stress            float64 `json:"stress_level"`
	Sleep             float64 `json:"sleep_duration"`
	StudyHours        float64 `json:"study_hours"`
	ScreenTime        float64 `json:"screen_time"`
	PhysicalActivity  float64 `json:"physical_activity"`
	SocialInteraction float64 `json:"social_interaction"`
}

// Assessment is the result of scoring a single record.
type Assessment struct {
	Score         float64            `json:"score"`
	Level         RiskLevel          `json:"label"`
	Contributions map[string]float64 `json:"component_contributions"`
}

// Engine computes the deterministic composite burnout score. It holds only
// immutable configuration: no state, no side effects, safe for unbounded
// concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Assess validates the input against the declared intervals, computes the
// weighted composite score, and classifies it into a risk tier.
//
// Each additive term is clamped to [0,1] before weighting, so the composite
// stays in [0,1] even for inputs at the edges of their valid ranges (sleep
// above the pivot would otherwise push its term negative).
func (e *Engine) Assess(in Input) (Assessment, error) {
	obs := dataset.Observation{
		Stress:            in.Stress,
		Sleep:             in.Sleep,
		StudyHours:        in.StudyHours,
		ScreenTime:        in.ScreenTime,
		PhysicalActivity:  in.PhysicalActivity,
		SocialInteraction: in.SocialInteraction,
	}
	if err := obs.Validate(); err != nil {
		return Assessment{}, err
	}

	cfg := e.cfg
	contributions := map[string]float64{
		"stress": cfg.Weights.Stress * clampUnit(in.Stress/cfg.StressScale),
		"sleep":  cfg.Weights.Sleep * clampUnit((cfg.SleepPivot-in.Sleep)/cfg.SleepScale),
		"study":  cfg.Weights.Study * clampUnit(in.StudyHours/cfg.StudyScale),
		"screen": cfg.Weights.Screen * clampUnit(in.ScreenTime/cfg.ScreenScale),
	}

	score := contributions["stress"] + contributions["sleep"] +
		contributions["study"] + contributions["screen"]

	return Assessment{
		Score:         score,
		Level:         e.Classify(score),
		Contributions: contributions,
	}, nil
}

// Classify maps a composite score onto the four ordered risk tiers. It is a
// pure step function over the configured cut points.
func (e *Engine) Classify(score float64) RiskLevel {
	switch {
	case score < e.cfg.CutPoints.Moderate:
		return RiskLow
	case score < e.cfg.CutPoints.High:
		return RiskModerate
	case score < e.cfg.CutPoints.Critical:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
