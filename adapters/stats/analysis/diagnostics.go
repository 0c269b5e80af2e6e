package analysis

import (
	"math"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// VIF thresholds: concerning and severe multicollinearity. These flag the
// report; they are never a hard failure.
const (
	vifConcernThreshold = 5.0
	vifSevereThreshold  = 10.0
)

// VIF computes the variance inflation factor of every predictor by
// regressing it on the remaining predictors: VIF = 1/(1-R^2).
func VIF(ds *dataset.Dataset) ([]domstats.VIFEntry, error) {
	keys := dataset.PredictorKeys()
	columns := make([][]float64, len(keys))
	for j, key := range keys {
		col, err := ds.Column(key)
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}

	entries := make([]domstats.VIFEntry, 0, len(keys))
	for j, key := range keys {
		otherKeys := make([]core.ColumnKey, 0, len(keys)-1)
		otherCols := make([][]float64, 0, len(keys)-1)
		for a := range keys {
			if a == j {
				continue
			}
			otherKeys = append(otherKeys, keys[a])
			otherCols = append(otherCols, columns[a])
		}

		fit, err := fitOLS(otherKeys, otherCols, columns[j], key)
		if err != nil {
			return nil, err
		}

		vif := math.Inf(1)
		if unexplained := 1 - fit.RSquared; unexplained > 1e-12 {
			vif = 1 / unexplained
		}
		entries = append(entries, domstats.VIFEntry{
			Predictor: key,
			VIF:       vif,
			Concern:   vif >= vifConcernThreshold,
			Severe:    vif >= vifSevereThreshold,
		})
	}
	return entries, nil
}

// Anova runs a one-way F-test of each predictor's means across the two
// outcome classes, df = (1, n-2). alpha is the significance level the
// report is judged against.
func Anova(ds *dataset.Dataset, alpha float64) ([]domstats.AnovaResult, error) {
	results := make([]domstats.AnovaResult, 0, 6)
	for _, key := range dataset.PredictorKeys() {
		group0, group1, err := ds.SplitByLabel(key)
		if err != nil {
			return nil, err
		}
		result, err := oneWayF(key, group0, group1, alpha)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func oneWayF(key core.ColumnKey, group0, group1 []float64, alpha float64) (domstats.AnovaResult, error) {
	n0, n1 := len(group0), len(group1)
	if n0 < 2 {
		return domstats.AnovaResult{}, core.NewDegenerateGroupError(key.String(), 0, n0)
	}
	if n1 < 2 {
		return domstats.AnovaResult{}, core.NewDegenerateGroupError(key.String(), 1, n1)
	}

	mean0 := mean(group0)
	mean1 := mean(group1)
	n := float64(n0 + n1)
	grand := (mean0*float64(n0) + mean1*float64(n1)) / n

	ssBetween := float64(n0)*(mean0-grand)*(mean0-grand) + float64(n1)*(mean1-grand)*(mean1-grand)
	ssWithin := 0.0
	for _, v := range group0 {
		ssWithin += (v - mean0) * (v - mean0)
	}
	for _, v := range group1 {
		ssWithin += (v - mean1) * (v - mean1)
	}
	if ssWithin <= 0 {
		return domstats.AnovaResult{}, core.NewDegenerateInputError(key.String())
	}

	dfWithin := n0 + n1 - 2
	f := ssBetween / (ssWithin / float64(dfWithin))
	fDist := distuv.F{D1: 1, D2: float64(dfWithin)}
	p := 1 - fDist.CDF(f)

	return domstats.AnovaResult{
		Predictor:   key,
		FStatistic:  f,
		PValue:      p,
		DFBetween:   1,
		DFWithin:    dfWithin,
		Significant: p < alpha,
		Alpha:       alpha,
	}, nil
}

// EffectSizes computes Cohen's d between the outcome classes for every
// predictor, with the pooled standard deviation weighted by (n-1) per group.
func EffectSizes(ds *dataset.Dataset) ([]domstats.EffectSize, error) {
	results := make([]domstats.EffectSize, 0, 6)
	for _, key := range dataset.PredictorKeys() {
		group0, group1, err := ds.SplitByLabel(key)
		if err != nil {
			return nil, err
		}
		d, err := cohensD(key, group1, group0)
		if err != nil {
			return nil, err
		}
		results = append(results, domstats.EffectSize{
			Predictor: key,
			CohensD:   d,
			Magnitude: effectMagnitude(d),
		})
	}
	return results, nil
}

// cohensD is (mean1 - mean2) / pooledSD. Group order matters only for sign;
// callers pass (burnout, non-burnout) so positive d means higher under
// burnout.
func cohensD(key core.ColumnKey, group1, group2 []float64) (float64, error) {
	n1, n2 := len(group1), len(group2)
	if n1 < 2 {
		return 0, core.NewDegenerateGroupError(key.String(), 1, n1)
	}
	if n2 < 2 {
		return 0, core.NewDegenerateGroupError(key.String(), 0, n2)
	}

	mean1, mean2 := mean(group1), mean(group2)
	var1, var2 := sampleVariance(group1, mean1), sampleVariance(group2, mean2)

	pooled := math.Sqrt((float64(n1-1)*var1 + float64(n2-1)*var2) / float64(n1+n2-2))
	if pooled <= 0 {
		return 0, core.NewDegenerateInputError(key.String())
	}
	return (mean1 - mean2) / pooled, nil
}

func effectMagnitude(d float64) string {
	switch abs := math.Abs(d); {
	case abs < 0.2:
		return "negligible"
	case abs < 0.5:
		return "small"
	case abs < 0.8:
		return "medium"
	default:
		return "large"
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleVariance(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(values)-1)
}
