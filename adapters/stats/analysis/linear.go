package analysis

import (
	"math"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// interceptKey names the constant term in coefficient reports.
const interceptKey core.ColumnKey = "intercept"

// FitLinear runs ordinary least squares of the continuous burnout score on
// the six predictors, with intercept. The solve goes through a QR
// decomposition so rank deficiency is detected up front rather than leaking
// numerically unstable coefficients.
func FitLinear(ds *dataset.Dataset) (*domstats.LinearFit, error) {
	keys := dataset.PredictorKeys()
	columns := make([][]float64, len(keys))
	for j, key := range keys {
		col, err := ds.Column(key)
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}
	y, err := ds.Column(dataset.ColScore)
	if err != nil {
		return nil, err
	}
	return fitOLS(keys, columns, y, dataset.ColScore)
}

// fitOLS is the shared least-squares core, also used by the VIF auxiliary
// regressions in diagnostics.
func fitOLS(keys []core.ColumnKey, columns [][]float64, y []float64, outcome core.ColumnKey) (*domstats.LinearFit, error) {
	x, err := designMatrix(columns)
	if err != nil {
		return nil, err
	}
	qr, err := factorize(x)
	if err != nil {
		return nil, err
	}

	n, k := x.Dims()
	p := k - 1 // predictors excluding intercept
	dfResidual := n - k

	yVec := mat.NewDense(n, 1, append([]float64(nil), y...))
	var betaMat mat.Dense
	if err := qr.SolveTo(&betaMat, false, yVec); err != nil {
		return nil, core.NewSingularDesignError(err.Error())
	}
	beta := make([]float64, k)
	for j := 0; j < k; j++ {
		beta[j] = betaMat.At(j, 0)
	}

	// Residuals and sums of squares
	yMean := 0.0
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)

	residuals := make([]float64, n)
	rss, tss := 0.0, 0.0
	for i := 0; i < n; i++ {
		fitted := 0.0
		for j := 0; j < k; j++ {
			fitted += x.At(i, j) * beta[j]
		}
		residuals[i] = y[i] - fitted
		rss += residuals[i] * residuals[i]
		dev := y[i] - yMean
		tss += dev * dev
	}
	if tss <= 0 {
		return nil, core.NewDegenerateInputError(outcome.String())
	}

	r2 := 1 - rss/tss
	adjR2 := 1 - (1-r2)*float64(n-1)/float64(dfResidual)
	sigma2 := rss / float64(dfResidual)
	residualSE := math.Sqrt(sigma2)

	// Per-coefficient inference from sigma^2 * (X'X)^-1
	xtxInv, err := invertInformation(x, nil)
	if err != nil {
		return nil, err
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResidual)}
	tCrit := tDist.Quantile(0.975)

	coefficients := make([]domstats.Coefficient, k)
	for j := 0; j < k; j++ {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		tStat := beta[j] / se
		pVal := 2 * (1 - tDist.CDF(math.Abs(tStat)))
		name := interceptKey
		if j > 0 {
			name = keys[j-1]
		}
		coefficients[j] = domstats.Coefficient{
			Name:      name,
			Estimate:  beta[j],
			StdError:  se,
			Statistic: tStat,
			PValue:    pVal,
			CILow:     beta[j] - tCrit*se,
			CIHigh:    beta[j] + tCrit*se,
		}
	}

	// Overall F-test on the p slope terms
	fStat := (r2 / float64(p)) / ((1 - r2) / float64(dfResidual))
	fDist := distuv.F{D1: float64(p), D2: float64(dfResidual)}
	fPValue := 1 - fDist.CDF(fStat)

	return &domstats.LinearFit{
		Outcome:      outcome,
		Coefficients: coefficients,
		RSquared:     r2,
		AdjRSquared:  adjR2,
		FStatistic:   fStat,
		FPValue:      fPValue,
		ResidualSE:   residualSE,
		Residuals:    residuals,
		N:            n,
		PredictorsDF: p,
	}, nil
}
