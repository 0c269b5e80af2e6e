package testkit

import (
	"math"
	"math/rand"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
)

// CohortConfig controls synthetic cohort generation. The defaults reproduce
// the study's data-generation process: stress drives sleep loss, study load,
// and screen time, and the composite score gets mild observation noise.
type CohortConfig struct {
	Rows       int
	Seed       int64
	ScoreNoise float64
}

// DefaultCohortConfig returns the canonical 500-subject seeded cohort.
func DefaultCohortConfig() CohortConfig {
	return CohortConfig{Rows: 500, Seed: 42, ScoreNoise: 0.05}
}

// GenerateObservations produces a deterministic synthetic cohort.
func GenerateObservations(cfg CohortConfig) []dataset.Observation {
	rng := rand.New(rand.NewSource(cfg.Seed))
	observations := make([]dataset.Observation, cfg.Rows)

	for i := range observations {
		stress := clip(rng.NormFloat64()*2.0+5.5, 1, 10)
		sleep := clip(8.5-stress*0.3+rng.NormFloat64(), 3, 12)
		study := clip(3+stress*0.4+rng.NormFloat64()*1.5, 0.5, 14)
		screen := clip(5+stress*0.25+study*0.15+rng.NormFloat64()*1.5, 1, 16)
		physical := clip(rng.Float64()*10-stress*0.15, 0, 10)
		social := clip(rng.Float64()*10-stress*0.2, 0, 10)

		score := (stress/10)*0.35 +
			((8.5-sleep)/9)*0.25 +
			(study/14)*0.20 +
			(screen/16)*0.20
		score = clip(score+rng.NormFloat64()*cfg.ScoreNoise, 0, 1)

		label := 0
		if score > 0.5 {
			label = 1
		}

		observations[i] = dataset.Observation{
			ID:                core.RecordID(core.NewID()),
			Stress:            round2(stress),
			Sleep:             round2(sleep),
			StudyHours:        round2(study),
			ScreenTime:        round2(screen),
			PhysicalActivity:  round2(physical),
			SocialInteraction: round2(social),
			BurnoutScore:      round3(score),
			BurnoutLabel:      label,
			CreatedAt:         core.Now(),
		}
	}
	return observations
}

// GenerateCohort produces the synthetic cohort as a ready Dataset snapshot.
func GenerateCohort(cfg CohortConfig) (*dataset.Dataset, error) {
	return dataset.New(GenerateObservations(cfg))
}

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
