package analysis

import (
	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"
)

// thresholdGridSteps fixes the scan grid: 0.01 steps across [0,1].
const thresholdGridSteps = 100

// OptimizeThreshold scans candidate decision thresholds over (score, label)
// pairs and picks the one maximizing Youden's J = sensitivity +
// specificity - 1, treating "score >= threshold" as a positive prediction.
// Ties prefer the lower threshold, which catches more true positives at
// equal J. Both classes must be present or sensitivity/specificity is
// undefined.
func OptimizeThreshold(scores []float64, labels []int) (*domstats.ThresholdDecision, error) {
	if len(scores) != len(labels) {
		return nil, core.NewValidationError("threshold",
			"scores and labels have different lengths")
	}

	positives, negatives := 0, 0
	for _, l := range labels {
		if l == 1 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 {
		return nil, core.NewEmptyLabelSetError(1)
	}
	if negatives == 0 {
		return nil, core.NewEmptyLabelSetError(0)
	}

	var best *domstats.ThresholdDecision
	for step := 0; step <= thresholdGridSteps; step++ {
		threshold := float64(step) / thresholdGridSteps

		tp, tn, fp, fn := 0, 0, 0, 0
		for i, score := range scores {
			predicted := score >= threshold
			switch {
			case predicted && labels[i] == 1:
				tp++
			case predicted && labels[i] == 0:
				fp++
			case !predicted && labels[i] == 1:
				fn++
			default:
				tn++
			}
		}

		sensitivity := float64(tp) / float64(tp+fn)
		specificity := float64(tn) / float64(tn+fp)
		j := sensitivity + specificity - 1

		// Strict > keeps the earliest (lowest) threshold on ties.
		if best == nil || j > best.YoudenJ {
			best = &domstats.ThresholdDecision{
				Threshold:   threshold,
				Sensitivity: sensitivity,
				Specificity: specificity,
				Accuracy:    float64(tp+tn) / float64(len(scores)),
				YoudenJ:     j,
			}
		}
	}
	return best, nil
}

// OptimizeDatasetThreshold runs the threshold scan over a Dataset's
// continuous burnout score against its binary label.
func OptimizeDatasetThreshold(ds *dataset.Dataset) (*domstats.ThresholdDecision, error) {
	scores, err := ds.Column(dataset.ColScore)
	if err != nil {
		return nil, err
	}
	return OptimizeThreshold(scores, ds.Labels())
}
