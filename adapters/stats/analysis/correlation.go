package analysis

import (
	"fmt"
	"math"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson computes the Pearson correlation coefficient of two equal-length
// sequences and its two-sided p-value via the t-distribution transform of r.
// Either sequence having zero variance makes the correlation undefined.
func Pearson(x, y []float64, varX, varY core.ColumnKey) (domstats.Correlation, error) {
	if len(x) != len(y) {
		return domstats.Correlation{}, core.NewValidationError("correlation",
			fmt.Sprintf("sequence lengths differ: %d vs %d", len(x), len(y)))
	}
	if len(x) < 3 {
		return domstats.Correlation{}, core.NewValidationError("correlation",
			"need at least 3 paired observations")
	}

	n := float64(len(x))
	sumX, sumY := 0.0, 0.0
	sumXY, sumX2, sumY2 := 0.0, 0.0, 0.0
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	varTermX := n*sumX2 - sumX*sumX
	varTermY := n*sumY2 - sumY*sumY
	if varTermX <= 0 {
		return domstats.Correlation{}, core.NewDegenerateInputError(varX.String())
	}
	if varTermY <= 0 {
		return domstats.Correlation{}, core.NewDegenerateInputError(varY.String())
	}

	r := (n*sumXY - sumX*sumY) / math.Sqrt(varTermX*varTermY)
	// Floating-point accumulation can push |r| just past 1.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	return domstats.Correlation{
		VariableX: varX,
		VariableY: varY,
		R:         r,
		PValue:    pearsonPValue(r, len(x)),
		N:         len(x),
	}, nil
}

// pearsonPValue is the two-sided p-value for r under bivariate normality:
// t = r*sqrt((n-2)/(1-r^2)) against Student's t with n-2 degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	df := float64(n - 2)
	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}
	t := r * math.Sqrt(df/denom)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))
	if p > 1 {
		p = 1
	}
	return p
}

// Matrix computes the full predictor x predictor and predictor x outcome
// Pearson matrix over the six predictors plus the continuous burnout score.
// The result is symmetric with an exact 1.0 diagonal.
func Matrix(ds *dataset.Dataset) (domstats.CorrelationMatrix, error) {
	variables := append(dataset.PredictorKeys(), dataset.ColScore)

	columns := make([][]float64, len(variables))
	for i, key := range variables {
		col, err := ds.Column(key)
		if err != nil {
			return domstats.CorrelationMatrix{}, err
		}
		columns[i] = col
	}

	values := make([][]float64, len(variables))
	for i := range values {
		values[i] = make([]float64, len(variables))
		values[i][i] = 1.0
	}

	for i := 0; i < len(variables); i++ {
		for j := i + 1; j < len(variables); j++ {
			corr, err := Pearson(columns[i], columns[j], variables[i], variables[j])
			if err != nil {
				return domstats.CorrelationMatrix{}, err
			}
			values[i][j] = corr.R
			values[j][i] = corr.R
		}
	}

	return domstats.CorrelationMatrix{Variables: variables, Values: values}, nil
}

// OutcomeCorrelations computes each predictor's correlation with the
// continuous burnout score.
func OutcomeCorrelations(ds *dataset.Dataset) ([]domstats.Correlation, error) {
	score, err := ds.Column(dataset.ColScore)
	if err != nil {
		return nil, err
	}

	results := make([]domstats.Correlation, 0, 6)
	for _, key := range dataset.PredictorKeys() {
		col, err := ds.Column(key)
		if err != nil {
			return nil, err
		}
		corr, err := Pearson(col, score, key, dataset.ColScore)
		if err != nil {
			return nil, err
		}
		results = append(results, corr)
	}
	return results, nil
}
