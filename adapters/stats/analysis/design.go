package analysis

import (
	"fmt"
	"math"

	"burnoutlab/domain/core"

	"gonum.org/v1/gonum/mat"
)

// rankTolerance scales the singularity cutoff on the R factor's diagonal.
const rankTolerance = 1e-10

// designMatrix assembles an n x (p+1) design matrix with a leading intercept
// column from the given predictor columns.
func designMatrix(columns [][]float64) (*mat.Dense, error) {
	if len(columns) == 0 {
		return nil, core.NewValidationError("design", "no predictor columns")
	}
	n := len(columns[0])
	for _, col := range columns {
		if len(col) != n {
			return nil, core.NewValidationError("design", "predictor columns have unequal lengths")
		}
	}

	p := len(columns)
	if n <= p+1 {
		return nil, core.NewSingularDesignError(
			fmt.Sprintf("need more observations than parameters: n=%d, p+1=%d", n, p+1))
	}

	x := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range columns {
			x.Set(i, j+1, col[i])
		}
	}
	return x, nil
}

// factorize QR-decomposes the design matrix and rejects rank deficiency by
// inspecting the diagonal of R: a near-zero pivot relative to the largest
// one means a column is (numerically) a linear combination of the others.
func factorize(x *mat.Dense) (*mat.QR, error) {
	var qr mat.QR
	qr.Factorize(x)

	var r mat.Dense
	qr.RTo(&r)

	_, cols := x.Dims()
	maxPivot := 0.0
	for j := 0; j < cols; j++ {
		if abs := math.Abs(r.At(j, j)); abs > maxPivot {
			maxPivot = abs
		}
	}
	if maxPivot == 0 {
		return nil, core.NewSingularDesignError("design matrix is zero")
	}
	for j := 0; j < cols; j++ {
		if math.Abs(r.At(j, j)) < rankTolerance*maxPivot {
			return nil, core.NewSingularDesignError(
				fmt.Sprintf("column %d is collinear with the others", j))
		}
	}
	return &qr, nil
}

// invertInformation computes (X'WX)^-1, rejecting a singular information
// matrix. W is given as per-row weights; pass nil for unweighted.
func invertInformation(x *mat.Dense, weights []float64) (*mat.Dense, error) {
	n, p := x.Dims()

	xtwx := mat.NewDense(p, p, nil)
	for a := 0; a < p; a++ {
		for b := a; b < p; b++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				w := 1.0
				if weights != nil {
					w = weights[i]
				}
				sum += w * x.At(i, a) * x.At(i, b)
			}
			xtwx.Set(a, b, sum)
			xtwx.Set(b, a, sum)
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(xtwx); err != nil {
		return nil, core.NewSingularDesignError("information matrix is not invertible")
	}
	return &inv, nil
}
