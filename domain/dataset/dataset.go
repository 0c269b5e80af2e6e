package dataset

import (
	"fmt"
	"math"

	"burnoutlab/domain/core"
)

// Column keys for the canonical burnout schema. Names are exact-match and
// case-sensitive at every boundary.
const (
	ColStress   core.ColumnKey = "stress_level"
	ColSleep    core.ColumnKey = "sleep_duration"
	ColStudy    core.ColumnKey = "study_hours"
	ColScreen   core.ColumnKey = "screen_time"
	ColPhysical core.ColumnKey = "physical_activity"
	ColSocial   core.ColumnKey = "social_interaction"
	ColScore    core.ColumnKey = "burnout_score"
	ColLabel    core.ColumnKey = "burnout_binary"
)

// PredictorKeys returns the six lifestyle predictors in canonical order.
func PredictorKeys() []core.ColumnKey {
	return []core.ColumnKey{ColStress, ColSleep, ColStudy, ColScreen, ColPhysical, ColSocial}
}

// SchemaKeys returns the full fixed schema: predictors plus both outcomes.
func SchemaKeys() []core.ColumnKey {
	return append(PredictorKeys(), ColScore, ColLabel)
}

// Interval is a closed valid range for an input field.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the closed interval.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

// InputBounds declares the valid closed interval for each predictor.
// Values outside these are a validation error, not silently clamped.
var InputBounds = map[core.ColumnKey]Interval{
	ColStress:   {Min: 1, Max: 10},
	ColSleep:    {Min: 3, Max: 12},
	ColStudy:    {Min: 0.5, Max: 14},
	ColScreen:   {Min: 1, Max: 16},
	ColPhysical: {Min: 0, Max: 10},
	ColSocial:   {Min: 0, Max: 10},
}

// Observation is a single subject's record: six lifestyle inputs plus the
// continuous burnout score and the binary burnout label.
type Observation struct {
	ID                core.RecordID  `json:"id"`
	Stress            float64        `json:"stress_level"`
	Sleep             float64        `json:"sleep_duration"`
	StudyHours        float64        `json:"study_hours"`
	ScreenTime        float64        `json:"screen_time"`
	PhysicalActivity  float64        `json:"physical_activity"`
	SocialInteraction float64        `json:"social_interaction"`
	BurnoutScore      float64        `json:"burnout_score"`
	BurnoutLabel      int            `json:"burnout_binary"`
	CreatedAt         core.Timestamp `json:"created_at"`
}

// Value returns the observation's value for a schema column.
func (o Observation) Value(key core.ColumnKey) (float64, error) {
	switch key {
	case ColStress:
		return o.Stress, nil
	case ColSleep:
		return o.Sleep, nil
	case ColStudy:
		return o.StudyHours, nil
	case ColScreen:
		return o.ScreenTime, nil
	case ColPhysical:
		return o.PhysicalActivity, nil
	case ColSocial:
		return o.SocialInteraction, nil
	case ColScore:
		return o.BurnoutScore, nil
	case ColLabel:
		return float64(o.BurnoutLabel), nil
	default:
		return 0, core.NewUnknownColumnError(key.String())
	}
}

// Validate checks every input against its declared interval and both
// outcomes against their domains.
func (o Observation) Validate() error {
	for _, key := range PredictorKeys() {
		v, err := o.Value(key)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewValidationError(key.String(), "value is not finite")
		}
		bounds := InputBounds[key]
		if !bounds.Contains(v) {
			return core.NewValidationError(key.String(),
				fmt.Sprintf("%.2f outside [%.1f, %.1f]", v, bounds.Min, bounds.Max))
		}
	}
	if o.BurnoutScore < 0 || o.BurnoutScore > 1 || math.IsNaN(o.BurnoutScore) {
		return core.NewValidationError(ColScore.String(), "must lie in [0,1]")
	}
	if o.BurnoutLabel != 0 && o.BurnoutLabel != 1 {
		return core.NewValidationError(ColLabel.String(), "must be 0 or 1")
	}
	return nil
}

// Dataset is an in-memory columnar table with the fixed burnout schema.
// It is constructed once per analysis run and read-only thereafter; column
// accessors return copies so no analysis can mutate the snapshot.
type Dataset struct {
	columns map[core.ColumnKey][]float64
	rows    int
}

// New builds a Dataset from validated observations. Invalid observations
// fail construction; an empty input is ErrEmptyDataset.
func New(observations []Observation) (*Dataset, error) {
	if len(observations) == 0 {
		return nil, core.ErrEmptyDataset
	}

	columns := make(map[core.ColumnKey][]float64, len(SchemaKeys()))
	for _, key := range SchemaKeys() {
		columns[key] = make([]float64, 0, len(observations))
	}

	for i, obs := range observations {
		if err := obs.Validate(); err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
		for _, key := range SchemaKeys() {
			v, _ := obs.Value(key)
			columns[key] = append(columns[key], v)
		}
	}

	return &Dataset{columns: columns, rows: len(observations)}, nil
}

// FromColumns builds a Dataset from pre-assembled columns. Every schema
// column must be present, fully populated, of equal length, and within its
// declared domain, the same contract the row path enforces per observation.
func FromColumns(columns map[core.ColumnKey][]float64) (*Dataset, error) {
	rows := -1
	copied := make(map[core.ColumnKey][]float64, len(SchemaKeys()))

	for _, key := range SchemaKeys() {
		col, ok := columns[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", core.ErrSchemaMismatch, key)
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				core.ErrSchemaMismatch, key, len(col), rows)
		}
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, core.NewValidationError(key.String(),
					fmt.Sprintf("row %d is not finite", i))
			}
			if err := validateColumnValue(key, v); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		copied[key] = append([]float64(nil), col...)
	}

	if rows == 0 {
		return nil, core.ErrEmptyDataset
	}
	return &Dataset{columns: copied, rows: rows}, nil
}

// validateColumnValue checks one finite value against its column's domain:
// the declared interval for predictors, [0,1] for the score, {0,1} for the
// label.
func validateColumnValue(key core.ColumnKey, v float64) error {
	switch key {
	case ColScore:
		if v < 0 || v > 1 {
			return core.NewValidationError(key.String(), "must lie in [0,1]")
		}
	case ColLabel:
		if v != 0 && v != 1 {
			return core.NewValidationError(key.String(), "must be 0 or 1")
		}
	default:
		bounds := InputBounds[key]
		if !bounds.Contains(v) {
			return core.NewValidationError(key.String(),
				fmt.Sprintf("%.2f outside [%.1f, %.1f]", v, bounds.Min, bounds.Max))
		}
	}
	return nil
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int {
	return d.rows
}

// Column returns a copy of the named column.
func (d *Dataset) Column(key core.ColumnKey) ([]float64, error) {
	col, ok := d.columns[key]
	if !ok {
		return nil, core.NewUnknownColumnError(key.String())
	}
	return append([]float64(nil), col...), nil
}

// Labels returns the binary outcome column as ints.
func (d *Dataset) Labels() []int {
	col := d.columns[ColLabel]
	labels := make([]int, len(col))
	for i, v := range col {
		if v >= 0.5 {
			labels[i] = 1
		}
	}
	return labels
}

// SplitByLabel partitions a column into the label==0 and label==1 groups.
func (d *Dataset) SplitByLabel(key core.ColumnKey) (group0, group1 []float64, err error) {
	col, ok := d.columns[key]
	if !ok {
		return nil, nil, core.NewUnknownColumnError(key.String())
	}
	labels := d.columns[ColLabel]
	for i, v := range col {
		if labels[i] >= 0.5 {
			group1 = append(group1, v)
		} else {
			group0 = append(group0, v)
		}
	}
	return group0, group1, nil
}

// PredictorMatrix returns the predictor columns as rows×p data in canonical
// predictor order, alongside the keys.
func (d *Dataset) PredictorMatrix() ([]core.ColumnKey, [][]float64) {
	keys := PredictorKeys()
	data := make([][]float64, d.rows)
	for i := range data {
		data[i] = make([]float64, len(keys))
	}
	for j, key := range keys {
		for i, v := range d.columns[key] {
			data[i][j] = v
		}
	}
	return keys, data
}
