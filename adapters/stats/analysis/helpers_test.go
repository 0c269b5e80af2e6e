package analysis

import (
	"math"
	"math/rand"
	"testing"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	"burnoutlab/internal/testkit"
)

// testColumns returns a full valid schema where every column is the given
// length, filled with mid-range values. Tests overwrite the columns they
// care about.
func testColumns(rows int) map[core.ColumnKey][]float64 {
	fill := func(base, step float64) []float64 {
		col := make([]float64, rows)
		for i := range col {
			col[i] = base + step*float64(i%5)
		}
		return col
	}
	return map[core.ColumnKey][]float64{
		dataset.ColStress:   fill(3, 1),
		dataset.ColSleep:    fill(6, 0.5),
		dataset.ColStudy:    fill(4, 0.7),
		dataset.ColScreen:   fill(5, 1.1),
		dataset.ColPhysical: fill(2, 0.9),
		dataset.ColSocial:   fill(1, 1.3),
		dataset.ColScore:    fill(0.2, 0.1),
		dataset.ColLabel:    fill(0, 0),
	}
}

func mustDataset(t *testing.T, columns map[core.ColumnKey][]float64) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromColumns(columns)
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}
	return ds
}

func syntheticCohort(t *testing.T, rows int, noise float64) *dataset.Dataset {
	t.Helper()
	ds, err := testkit.GenerateCohort(testkit.CohortConfig{Rows: rows, Seed: 7, ScoreNoise: noise})
	if err != nil {
		t.Fatalf("GenerateCohort: %v", err)
	}
	return ds
}

// logisticCohort builds observations whose labels are genuine Bernoulli
// draws from a logistic model on stress, so the fit has class overlap and
// converges well inside the iteration budget.
func logisticCohort(t *testing.T, rows int) *dataset.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(11))

	observations := make([]dataset.Observation, rows)
	for i := range observations {
		stress := 1 + rng.Float64()*9
		eta := -1.5 + 0.3*stress
		p := 1 / (1 + math.Exp(-eta))
		label := 0
		if rng.Float64() < p {
			label = 1
		}
		observations[i] = dataset.Observation{
			ID:                core.RecordID(core.NewID()),
			Stress:            stress,
			Sleep:             3 + rng.Float64()*9,
			StudyHours:        0.5 + rng.Float64()*13.5,
			ScreenTime:        1 + rng.Float64()*15,
			PhysicalActivity:  rng.Float64() * 10,
			SocialInteraction: rng.Float64() * 10,
			BurnoutScore:      p,
			BurnoutLabel:      label,
			CreatedAt:         core.Now(),
		}
	}

	ds, err := dataset.New(observations)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ds
}
