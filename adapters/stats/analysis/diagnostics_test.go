package analysis

import (
	"errors"
	"math"
	"testing"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
)

// twoGroupColumns builds a six-row dataset where the first three rows carry
// label 0 and the rest label 1, with hand-checkable stress groups {1,2,3}
// and {4,5,6}.
func twoGroupColumns() map[core.ColumnKey][]float64 {
	return map[core.ColumnKey][]float64{
		dataset.ColStress:   {1, 2, 3, 4, 5, 6},
		dataset.ColSleep:    {7, 8, 7.5, 6, 6.5, 7},
		dataset.ColStudy:    {3, 4, 3.5, 5, 6, 5.5},
		dataset.ColScreen:   {4, 6, 5, 7, 9, 8},
		dataset.ColPhysical: {5, 3, 4, 2, 1, 3},
		dataset.ColSocial:   {6, 4, 5, 3, 2, 4},
		dataset.ColScore:    {0.2, 0.3, 0.25, 0.6, 0.7, 0.65},
		dataset.ColLabel:    {0, 0, 0, 1, 1, 1},
	}
}

func TestAnova_HandChecked(t *testing.T) {
	ds := mustDataset(t, twoGroupColumns())

	results, err := Anova(ds, 0.05)
	if err != nil {
		t.Fatalf("Anova: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}

	// Stress groups {1,2,3} vs {4,5,6}: ssBetween = 13.5, ssWithin = 4,
	// df = (1, 4), so F = 13.5.
	stress := results[0]
	if stress.Predictor != dataset.ColStress {
		t.Fatalf("first result is %s, want stress_level", stress.Predictor)
	}
	if math.Abs(stress.FStatistic-13.5) > 1e-9 {
		t.Errorf("F = %v, want 13.5", stress.FStatistic)
	}
	if stress.DFBetween != 1 || stress.DFWithin != 4 {
		t.Errorf("df = (%d, %d), want (1, 4)", stress.DFBetween, stress.DFWithin)
	}
	if stress.PValue < 0 || stress.PValue > 1 {
		t.Errorf("p = %v, want in [0,1]", stress.PValue)
	}
	if stress.Alpha != 0.05 {
		t.Errorf("alpha = %v, want 0.05", stress.Alpha)
	}
	if stress.Significant != (stress.PValue < 0.05) {
		t.Errorf("significance flag %v inconsistent with p = %v at alpha 0.05",
			stress.Significant, stress.PValue)
	}
}

func TestAnova_AlphaChangesJudgment(t *testing.T) {
	ds := mustDataset(t, twoGroupColumns())

	strict, err := Anova(ds, 0.001)
	if err != nil {
		t.Fatalf("Anova: %v", err)
	}
	lax, err := Anova(ds, 0.999)
	if err != nil {
		t.Fatalf("Anova: %v", err)
	}

	for i := range strict {
		if strict[i].FStatistic != lax[i].FStatistic || strict[i].PValue != lax[i].PValue {
			t.Errorf("%s: alpha changed the test statistics", strict[i].Predictor)
		}
		if !lax[i].Significant {
			t.Errorf("%s: p = %v not significant even at alpha 0.999",
				lax[i].Predictor, lax[i].PValue)
		}
	}
}

func TestAnova_DegenerateGroup(t *testing.T) {
	cols := twoGroupColumns()
	cols[dataset.ColLabel] = []float64{0, 0, 0, 0, 0, 1} // one burnout subject
	ds := mustDataset(t, cols)

	_, err := Anova(ds, 0.05)
	if !errors.Is(err, core.ErrDegenerateGroup) {
		t.Fatalf("expected ErrDegenerateGroup, got %v", err)
	}
}

func TestEffectSizes_HandChecked(t *testing.T) {
	ds := mustDataset(t, twoGroupColumns())

	results, err := EffectSizes(ds)
	if err != nil {
		t.Fatalf("EffectSizes: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}

	// Stress means are 2 and 5 with unit variance in each group, so the
	// pooled SD is 1 and d = 3: higher stress under burnout.
	stress := results[0]
	if math.Abs(stress.CohensD-3) > 1e-9 {
		t.Errorf("d = %v, want 3", stress.CohensD)
	}
	if stress.Magnitude != "large" {
		t.Errorf("magnitude = %q, want large", stress.Magnitude)
	}

	// Sleep is lower under burnout, so its d must be negative.
	sleep := results[1]
	if sleep.Predictor != dataset.ColSleep {
		t.Fatalf("second result is %s, want sleep_duration", sleep.Predictor)
	}
	if sleep.CohensD >= 0 {
		t.Errorf("sleep d = %v, want negative", sleep.CohensD)
	}
}

func TestEffectMagnitudeBands(t *testing.T) {
	tests := []struct {
		d    float64
		want string
	}{
		{0, "negligible"},
		{0.19, "negligible"},
		{0.2, "small"},
		{-0.3, "small"},
		{0.5, "medium"},
		{-0.79, "medium"},
		{0.8, "large"},
		{-2.4, "large"},
	}
	for _, tt := range tests {
		if got := effectMagnitude(tt.d); got != tt.want {
			t.Errorf("effectMagnitude(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestVIF(t *testing.T) {
	ds := syntheticCohort(t, 200, 0.05)

	entries, err := VIF(ds)
	if err != nil {
		t.Fatalf("VIF: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("got %d entries, want 6", len(entries))
	}

	for i, key := range dataset.PredictorKeys() {
		e := entries[i]
		if e.Predictor != key {
			t.Errorf("entry %d is %s, want %s", i, e.Predictor, key)
		}
		// VIF = 1/(1-R^2) can never drop below 1.
		if e.VIF < 1 {
			t.Errorf("%s VIF = %v, want >= 1", key, e.VIF)
		}
		if e.Concern != (e.VIF >= 5) {
			t.Errorf("%s concern flag %v inconsistent with VIF %v", key, e.Concern, e.VIF)
		}
		if e.Severe != (e.VIF >= 10) {
			t.Errorf("%s severe flag %v inconsistent with VIF %v", key, e.Severe, e.VIF)
		}
		if e.Severe && !e.Concern {
			t.Errorf("%s flagged severe but not concerning", key)
		}
	}
}

func TestVIF_FlagsCollinearPredictor(t *testing.T) {
	cohort := syntheticCohort(t, 100, 0.05)
	cols := make(map[core.ColumnKey][]float64)
	for _, key := range dataset.SchemaKeys() {
		col, err := cohort.Column(key)
		if err != nil {
			t.Fatalf("Column(%s): %v", key, err)
		}
		cols[key] = col
	}
	// Make screen time almost a copy of stress: a tiny deterministic wobble
	// keeps the design technically full rank while inflating VIF far past
	// the severe threshold.
	screen := make([]float64, 100)
	for i, v := range cols[dataset.ColStress] {
		screen[i] = v + 2 + 0.0001*float64(i%7)
	}
	cols[dataset.ColScreen] = screen
	ds := mustDataset(t, cols)

	entries, err := VIF(ds)
	if err != nil {
		t.Fatalf("VIF: %v", err)
	}
	for _, e := range entries {
		if e.Predictor == dataset.ColScreen {
			if !e.Severe || !e.Concern {
				t.Errorf("near-duplicate predictor VIF = %v, want flagged severe", e.VIF)
			}
		}
	}
}
