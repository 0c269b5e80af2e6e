package engine

import (
	"context"

	"burnoutlab/adapters/stats/analysis"
	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"

	"golang.org/x/sync/errgroup"
)

// DefaultAlpha is the significance level ANOVA results are judged against
// unless configured otherwise.
const DefaultAlpha = 0.05

// Engine fans the analysis modules out over one read-only Dataset snapshot
// and aggregates their reports. The modules share nothing but the snapshot,
// so they run concurrently without locking.
type Engine struct {
	alpha float64
}

// New creates an analysis engine with the default significance level.
func New() *Engine {
	return NewWithAlpha(DefaultAlpha)
}

// NewWithAlpha creates an analysis engine with a custom significance level.
func NewWithAlpha(alpha float64) *Engine {
	return &Engine{alpha: alpha}
}

// Describe computes the descriptive summaries alone, without the full
// battery.
func (e *Engine) Describe(ds *dataset.Dataset) ([]domstats.DescriptiveSummary, error) {
	return analysis.DescribeAll(ds)
}

// Run executes every analysis module over the Dataset and aggregates one
// report. Any module failing fails the run; no error is downgraded to a
// warning.
func (e *Engine) Run(ctx context.Context, ds *dataset.Dataset) (*domstats.AnalysisReport, error) {
	report := &domstats.AnalysisReport{
		GeneratedAt: core.Now(),
		SampleSize:  ds.Rows(),
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		descriptives, err := analysis.DescribeAll(ds)
		if err != nil {
			return err
		}
		report.Descriptives = descriptives
		return nil
	})

	g.Go(func() error {
		correlations, err := analysis.OutcomeCorrelations(ds)
		if err != nil {
			return err
		}
		matrix, err := analysis.Matrix(ds)
		if err != nil {
			return err
		}
		report.Correlations = correlations
		report.Matrix = matrix
		return nil
	})

	g.Go(func() error {
		fit, err := analysis.FitLinear(ds)
		if err != nil {
			return err
		}
		report.Linear = fit
		return nil
	})

	g.Go(func() error {
		fit, err := analysis.FitLogistic(ds)
		if err != nil {
			return err
		}
		report.Logistic = fit
		return nil
	})

	g.Go(func() error {
		vif, err := analysis.VIF(ds)
		if err != nil {
			return err
		}
		anova, err := analysis.Anova(ds, e.alpha)
		if err != nil {
			return err
		}
		effects, err := analysis.EffectSizes(ds)
		if err != nil {
			return err
		}
		report.VIF = vif
		report.Anova = anova
		report.EffectSizes = effects
		return nil
	})

	g.Go(func() error {
		decision, err := analysis.OptimizeDatasetThreshold(ds)
		if err != nil {
			return err
		}
		report.Threshold = decision
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
