package analysis

import (
	"fmt"
	"math"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// irlsTolerance is the minimum log-likelihood improvement that still
	// counts as progress.
	irlsTolerance = 1e-8
	// irlsMaxIterations caps the Newton-Raphson loop; hitting it without
	// meeting the tolerance is surfaced as non-convergence, which in
	// practice means quasi-complete separation.
	irlsMaxIterations = 25

	// probFloor keeps fitted probabilities away from exact 0/1 so weights
	// and log terms stay finite during iteration.
	probFloor = 1e-10

	// separationEpsilon: when every fitted probability sits this close to
	// its own label the data are (quasi-)completely separated and the
	// likelihood creeps toward its supremum without ever meeting the
	// tolerance.
	separationEpsilon = 1e-6
)

// NonConvergenceError carries the last iterate when the IRLS loop exhausts
// its iteration budget. The partial estimate is for diagnostic inspection
// only; callers must not treat it as a valid fit.
type NonConvergenceError struct {
	Iterations    int
	LogLikelihood float64
	Partial       []float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("logistic fit did not converge after %d iterations (loglik=%.6f)",
		e.Iterations, e.LogLikelihood)
}

func (e *NonConvergenceError) Unwrap() error {
	return core.ErrNonConvergence
}

// FitLogistic fits the log-odds of the binary burnout label as a linear
// combination of the six predictors via iteratively reweighted least
// squares (Newton-Raphson on the binomial log-likelihood).
func FitLogistic(ds *dataset.Dataset) (*domstats.LogisticFit, error) {
	keys := dataset.PredictorKeys()
	columns := make([][]float64, len(keys))
	for j, key := range keys {
		col, err := ds.Column(key)
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}

	labels := ds.Labels()
	y := make([]float64, len(labels))
	ones := 0
	for i, l := range labels {
		y[i] = float64(l)
		ones += l
	}
	if ones == 0 {
		return nil, core.NewEmptyLabelSetError(1)
	}
	if ones == len(labels) {
		return nil, core.NewEmptyLabelSetError(0)
	}

	x, err := designMatrix(columns)
	if err != nil {
		return nil, err
	}
	if _, err := factorize(x); err != nil {
		return nil, err
	}

	n, k := x.Dims()
	beta := make([]float64, k)
	logLik := logLikelihood(x, y, beta)
	iterations := 0

	for iterations < irlsMaxIterations {
		iterations++

		// Fitted probabilities and IRLS weights at the current iterate
		mu := make([]float64, n)
		weights := make([]float64, n)
		for i := 0; i < n; i++ {
			eta := 0.0
			for j := 0; j < k; j++ {
				eta += x.At(i, j) * beta[j]
			}
			mu[i] = sigmoid(eta)
			weights[i] = mu[i] * (1 - mu[i])
		}

		if isSeparated(y, mu) {
			return nil, &NonConvergenceError{
				Iterations:    iterations,
				LogLikelihood: logLik,
				Partial:       append([]float64(nil), beta...),
			}
		}

		// Newton step: (X'WX) delta = X'(y - mu)
		info, err := invertInformation(x, weights)
		if err != nil {
			return nil, err
		}
		grad := make([]float64, k)
		for j := 0; j < k; j++ {
			for i := 0; i < n; i++ {
				grad[j] += x.At(i, j) * (y[i] - mu[i])
			}
		}
		for j := 0; j < k; j++ {
			step := 0.0
			for a := 0; a < k; a++ {
				step += info.At(j, a) * grad[a]
			}
			beta[j] += step
		}

		next := logLikelihood(x, y, beta)
		if math.Abs(next-logLik) < irlsTolerance {
			logLik = next
			return assembleLogisticFit(keys, x, y, beta, logLik, iterations)
		}
		logLik = next
	}

	return nil, &NonConvergenceError{
		Iterations:    iterations,
		LogLikelihood: logLik,
		Partial:       append([]float64(nil), beta...),
	}
}

func assembleLogisticFit(keys []core.ColumnKey, x *mat.Dense, y, beta []float64, logLik float64, iterations int) (*domstats.LogisticFit, error) {
	n, k := x.Dims()

	// Standard errors from the inverse information matrix at the optimum
	mu := make([]float64, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		eta := 0.0
		for j := 0; j < k; j++ {
			eta += x.At(i, j) * beta[j]
		}
		mu[i] = sigmoid(eta)
		weights[i] = mu[i] * (1 - mu[i])
	}
	info, err := invertInformation(x, weights)
	if err != nil {
		return nil, err
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	zCrit := normal.Quantile(0.975)

	coefficients := make([]domstats.Coefficient, k)
	oddsRatios := make([]domstats.OddsRatio, 0, k-1)
	for j := 0; j < k; j++ {
		se := math.Sqrt(info.At(j, j))
		zStat := beta[j] / se
		pVal := 2 * (1 - normal.CDF(math.Abs(zStat)))
		name := interceptKey
		if j > 0 {
			name = keys[j-1]
		}
		coefficients[j] = domstats.Coefficient{
			Name:      name,
			Estimate:  beta[j],
			StdError:  se,
			Statistic: zStat,
			PValue:    pVal,
			CILow:     beta[j] - zCrit*se,
			CIHigh:    beta[j] + zCrit*se,
		}
		if j > 0 {
			oddsRatios = append(oddsRatios, domstats.OddsRatio{
				Name:   name,
				Value:  math.Exp(beta[j]),
				CILow:  math.Exp(beta[j] - zCrit*se),
				CIHigh: math.Exp(beta[j] + zCrit*se),
			})
		}
	}

	// Null model: intercept only, fitted probability = observed base rate
	base := 0.0
	for _, v := range y {
		base += v
	}
	base /= float64(n)
	nullLogLik := 0.0
	for _, v := range y {
		nullLogLik += v*math.Log(base) + (1-v)*math.Log(1-base)
	}

	return &domstats.LogisticFit{
		Outcome:       dataset.ColLabel,
		Coefficients:  coefficients,
		OddsRatios:    oddsRatios,
		LogLikelihood: logLik,
		NullLogLik:    nullLogLik,
		McFaddenR2:    1 - logLik/nullLogLik,
		AIC:           -2*logLik + 2*float64(k),
		BIC:           -2*logLik + float64(k)*math.Log(float64(n)),
		Iterations:    iterations,
		Probabilities: mu,
		N:             n,
	}, nil
}

// isSeparated reports complete separation: every fitted probability has
// collapsed onto its own label.
func isSeparated(y, mu []float64) bool {
	for i := range y {
		if y[i] == 1 {
			if mu[i] < 1-separationEpsilon {
				return false
			}
		} else if mu[i] > separationEpsilon {
			return false
		}
	}
	return true
}

func sigmoid(eta float64) float64 {
	p := 1 / (1 + math.Exp(-eta))
	if p < probFloor {
		return probFloor
	}
	if p > 1-probFloor {
		return 1 - probFloor
	}
	return p
}

func logLikelihood(x *mat.Dense, y, beta []float64) float64 {
	n, k := x.Dims()
	ll := 0.0
	for i := 0; i < n; i++ {
		eta := 0.0
		for j := 0; j < k; j++ {
			eta += x.At(i, j) * beta[j]
		}
		p := sigmoid(eta)
		ll += y[i]*math.Log(p) + (1-y[i])*math.Log(1-p)
	}
	return ll
}
