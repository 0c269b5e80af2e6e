package scoring

// Weights holds the contribution weight of each scored lifestyle factor.
// They are expected to sum to 1 so the composite stays in [0,1].
type Weights struct {
	Stress float64 `json:"stress"`
	Sleep  float64 `json:"sleep"`
	Study  float64 `json:"study"`
	Screen float64 `json:"screen"`
}

// CutPoints are the ordered risk-tier boundaries applied to the composite
// score: LOW below Moderate, MODERATE below High, HIGH below Critical,
// CRITICAL at or above Critical.
type CutPoints struct {
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
	Critical float64 `json:"critical"`
}

// Config is the immutable configuration of the scoring engine: formula
// weights, term scales, and risk cut points. Passing it in explicitly keeps
// threshold tuning out of the scoring logic itself.
type Config struct {
	Weights Weights `json:"weights"`

	// Term scales. Each raw input maps to a [0,1] term:
	//   stress/StressScale, (SleepPivot-sleep)/SleepScale,
	//   study/StudyScale, screen/ScreenScale.
	StressScale float64 `json:"stress_scale"`
	SleepPivot  float64 `json:"sleep_pivot"`
	SleepScale  float64 `json:"sleep_scale"`
	StudyScale  float64 `json:"study_scale"`
	ScreenScale float64 `json:"screen_scale"`

	CutPoints CutPoints `json:"cut_points"`
}

// DefaultConfig returns the production formula: weights 0.35/0.25/0.20/0.20
// and tiers at 0.25/0.45/0.65. The documentation of the source model cites a
// second tier variant (0.20/0.40/0.60); the values embedded in the scoring
// formula are authoritative.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Stress: 0.35,
			Sleep:  0.25,
			Study:  0.20,
			Screen: 0.20,
		},
		StressScale: 10,
		SleepPivot:  8.5,
		SleepScale:  9,
		StudyScale:  14,
		ScreenScale: 16,
		CutPoints: CutPoints{
			Moderate: 0.25,
			High:     0.45,
			Critical: 0.65,
		},
	}
}
