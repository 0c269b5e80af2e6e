package stats

import (
	"burnoutlab/domain/core"
)

// DescriptiveSummary contains per-column central tendency, dispersion, and
// distribution measures.
type DescriptiveSummary struct {
	Column core.ColumnKey `json:"column"`
	Count  int            `json:"count"`
	Mean   float64        `json:"mean"`
	StdDev float64        `json:"std_dev"` // sample (n-1) divisor; 0 when n==1
	Median float64        `json:"median"`
	IQR    float64        `json:"iqr"`
	Min    float64        `json:"min"`
	Max    float64        `json:"max"`
}

// Correlation is the Pearson r of one variable pair with its two-sided
// p-value under the t-distribution transform of r.
type Correlation struct {
	VariableX core.ColumnKey `json:"variable_x"`
	VariableY core.ColumnKey `json:"variable_y"`
	R         float64        `json:"r"`
	PValue    float64        `json:"p_value"`
	N         int            `json:"n"`
}

// CorrelationMatrix is a symmetric matrix over a fixed variable ordering.
// The diagonal is exactly 1.0.
type CorrelationMatrix struct {
	Variables []core.ColumnKey `json:"variables"`
	Values    [][]float64      `json:"values"`
}

// At returns the correlation between the i-th and j-th variables.
func (m CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Coefficient is one fitted model term: estimate, uncertainty, and the
// derived test statistic, p-value, and 95% confidence interval.
type Coefficient struct {
	Name      core.ColumnKey `json:"name"` // "intercept" for the constant term
	Estimate  float64        `json:"estimate"`
	StdError  float64        `json:"std_error"`
	Statistic float64        `json:"statistic"` // t for OLS, z for logistic
	PValue    float64        `json:"p_value"`
	CILow     float64        `json:"ci_low"`
	CIHigh    float64        `json:"ci_high"`
}

// LinearFit is the full output of an ordinary least squares fit.
type LinearFit struct {
	Outcome       core.ColumnKey `json:"outcome"`
	Coefficients  []Coefficient  `json:"coefficients"`
	RSquared      float64        `json:"r_squared"`
	AdjRSquared   float64        `json:"adj_r_squared"`
	FStatistic    float64        `json:"f_statistic"`
	FPValue       float64        `json:"f_p_value"`
	ResidualSE    float64        `json:"residual_se"`
	Residuals     []float64      `json:"-"` // kept for diagnostics, not serialized
	N             int            `json:"n"`
	PredictorsDF  int            `json:"predictors_df"`
}

// OddsRatio is an exponentiated logistic coefficient with its 95% CI.
type OddsRatio struct {
	Name   core.ColumnKey `json:"name"`
	Value  float64        `json:"value"`
	CILow  float64        `json:"ci_low"`
	CIHigh float64        `json:"ci_high"`
}

// LogisticFit is the full output of a logistic regression fit via IRLS.
type LogisticFit struct {
	Outcome       core.ColumnKey `json:"outcome"`
	Coefficients  []Coefficient  `json:"coefficients"`
	OddsRatios    []OddsRatio    `json:"odds_ratios"`
	LogLikelihood float64        `json:"log_likelihood"`
	NullLogLik    float64        `json:"null_log_likelihood"`
	McFaddenR2    float64        `json:"mcfadden_r2"`
	AIC           float64        `json:"aic"`
	BIC           float64        `json:"bic"`
	Iterations    int            `json:"iterations"`
	Probabilities []float64      `json:"-"` // fitted P(label=1) per row
	N             int            `json:"n"`
}

// VIFEntry reports one predictor's variance inflation factor.
// Concern and Severe are reporting flags, not failures.
type VIFEntry struct {
	Predictor core.ColumnKey `json:"predictor"`
	VIF       float64        `json:"vif"`
	Concern   bool           `json:"concern"` // VIF >= 5
	Severe    bool           `json:"severe"`  // VIF >= 10
}

// AnovaResult is a one-way F-test of a predictor's means across the two
// outcome classes (df = 1, n-2).
type AnovaResult struct {
	Predictor   core.ColumnKey `json:"predictor"`
	FStatistic  float64        `json:"f_statistic"`
	PValue      float64        `json:"p_value"`
	DFBetween   int            `json:"df_between"`
	DFWithin    int            `json:"df_within"`
	Significant bool           `json:"significant"`
	Alpha       float64        `json:"alpha"`
}

// EffectSize is Cohen's d between the two outcome classes with its
// conventional magnitude reading.
type EffectSize struct {
	Predictor core.ColumnKey `json:"predictor"`
	CohensD   float64        `json:"cohens_d"`
	Magnitude string         `json:"magnitude"` // negligible, small, medium, large
}

// ThresholdDecision is the optimizer's chosen decision threshold with the
// confusion-matrix metrics observed at it. Immutable once produced.
type ThresholdDecision struct {
	Threshold   float64 `json:"threshold"`
	Sensitivity float64 `json:"sensitivity"`
	Specificity float64 `json:"specificity"`
	Accuracy    float64 `json:"accuracy"`
	YoudenJ     float64 `json:"youden_j"`
}

// AnalysisReport aggregates one run of every analysis module over a single
// Dataset snapshot. Each section is produced independently; rendering is a
// caller concern.
type AnalysisReport struct {
	GeneratedAt  core.Timestamp       `json:"generated_at"`
	SampleSize   int                  `json:"sample_size"`
	Descriptives []DescriptiveSummary `json:"descriptives"`
	Correlations []Correlation        `json:"correlations"` // each predictor vs burnout_score
	Matrix       CorrelationMatrix    `json:"correlation_matrix"`
	Linear       *LinearFit           `json:"linear_fit"`
	Logistic     *LogisticFit         `json:"logistic_fit"`
	VIF          []VIFEntry           `json:"vif"`
	Anova        []AnovaResult        `json:"anova"`
	EffectSizes  []EffectSize         `json:"effect_sizes"`
	Threshold    *ThresholdDecision   `json:"threshold"`
}
